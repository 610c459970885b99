package models

// DownloadLogEntry — append-only факт одной успешной выдачи артефакта.
// Записи никогда не изменяются и не удаляются; повторные скачивания дают новые строки.
type DownloadLogEntry struct {
	RequesterID     string  `json:"requester_id"`
	ArtifactName    string  `json:"artifact_name"`
	Project         string  `json:"project"`
	SizeBytes       int64   `json:"size_bytes"`
	DurationSeconds float64 `json:"duration_seconds"`
	TimestampUnix   int64   `json:"timestamp_unix"`
}
