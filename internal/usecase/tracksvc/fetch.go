package tracksvc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sir_venger/registry_lite/internal/models"
)

// Fetch выполняет одно скачивание от начала до конца: поиск в реестре, выгрузка
// блоба в staging-файл, замер, запись в журнал, инкремент метрик. Staging-путь
// уникален на каждую попытку, поэтому параллельные скачивания одного артефакта
// друг другу не мешают. Журнальная запись и метрики появляются только после
// успешной выгрузки; при любой ошибке staging-файл удаляется до возврата.
func (t *Tracker) Fetch(ctx context.Context, name, requesterID string) (*Download, error) {
	if requesterID == "" {
		requesterID = DefaultRequester
	}

	rec, err := t.Artifacts.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	loc, err := rec.Locator()
	if err != nil {
		return nil, err
	}

	staging := filepath.Join(t.StagingDir, uuid.NewString()+".part")

	start := time.Now()
	size, err := t.StorageCli.Fetch(ctx, loc, staging)
	if err != nil {
		t.removeStaging(staging)
		return nil, err
	}
	elapsed := time.Since(start).Seconds()

	entry := models.DownloadLogEntry{
		RequesterID:     requesterID,
		ArtifactName:    rec.Name,
		Project:         rec.Project,
		SizeBytes:       size,
		DurationSeconds: elapsed,
		TimestampUnix:   time.Now().Unix(),
	}
	if err := t.Log.AppendDownload(ctx, entry); err != nil {
		t.removeStaging(staging)
		return nil, fmt.Errorf("append download log: %w", err)
	}

	// Счётчик двигаем только после записи в журнал: downloads_total всегда
	// совпадает с числом журнальных строк.
	t.Metrics.IncDownloads()
	t.Metrics.ObserveDownloadDuration(elapsed)

	f, err := os.Open(staging)
	if err != nil {
		t.removeStaging(staging)
		return nil, fmt.Errorf("%w: open %s: %w", models.ErrStagingIO, staging, err)
	}

	t.Logger.Info("download completed",
		"artifact", rec.Name,
		"requester", requesterID,
		"size_bytes", size,
		"duration_seconds", elapsed,
	)

	return &Download{
		Entry:  entry,
		file:   f,
		path:   staging,
		logger: t.Logger,
	}, nil
}

// removeStaging убирает staging-файл; уже отсутствующий файл ошибкой не считается,
// прочие сбои удаления логируются и не подменяют исходную ошибку.
func (t *Tracker) removeStaging(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		t.Logger.Warn("staging cleanup failed", "path", path, "error", err)
	}
}
