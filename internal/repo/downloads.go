package repo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/sir_venger/registry_lite/internal/models"
)

// AppendDownload добавляет строку в журнал скачиваний. Журнал append-only:
// строки никогда не обновляются, уникальных ключей по содержимому нет.
func (s *PGStore) AppendDownload(ctx context.Context, e models.DownloadLogEntry) error {
	sqlStr, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert(downloadLogTable).
		Columns("requester_id", "artifact_name", "project", "size_bytes", "duration_seconds", "ts").
		Values(e.RequesterID, e.ArtifactName, e.Project, e.SizeBytes, e.DurationSeconds, e.TimestampUnix).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert sql: %w", err)
	}

	if _, err := s.pool.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("exec insert: %w", err)
	}

	return nil
}
