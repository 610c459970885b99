// Package tracksvc обслуживает выдачу артефактов: достаёт блоб из хранилища во
// временный staging-файл, замеряет размер и длительность, пишет запись в журнал
// скачиваний и отдаёт поток вызывающему. Staging-файл удаляется на любом исходе.
package tracksvc

import (
	"context"
	"log/slog"

	"github.com/sir_venger/registry_lite/internal/models"
	"github.com/sir_venger/registry_lite/pkg/storageclient"
)

// DefaultRequester подставляется, когда клиент не представился.
const DefaultRequester = "Unknown"

type (
	// ArtifactGetter — контракт реестра; трекеру нужен только поиск по имени,
	// доступа к хранилищу записей у него нет.
	ArtifactGetter interface {
		Get(ctx context.Context, name string) (models.ArtifactRecord, error)
	}

	// DownloadLog — append-only журнал скачиваний.
	DownloadLog interface {
		AppendDownload(ctx context.Context, e models.DownloadLogEntry) error
	}

	// Metrics — счётчики завершённых скачиваний.
	Metrics interface {
		IncDownloads()
		ObserveDownloadDuration(seconds float64)
	}

	// Service выдаёт артефакт по имени с учётом запросившего.
	Service interface {
		Fetch(ctx context.Context, name, requesterID string) (*Download, error)
	}
)

type Deps struct {
	Artifacts  ArtifactGetter
	StorageCli storageclient.Client
	Log        DownloadLog
	Metrics    Metrics
	StagingDir string
	Logger     *slog.Logger
}

type Tracker struct {
	Deps
}

// New конструирует трекер с заданными зависимостями.
func New(deps Deps) *Tracker {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Tracker{Deps: deps}
}

var _ Service = (*Tracker)(nil)
