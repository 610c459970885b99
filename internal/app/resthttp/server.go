package resthttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sir_venger/registry_lite/internal/config"
	"github.com/sir_venger/registry_lite/internal/metrics"
	"github.com/sir_venger/registry_lite/internal/repo"
	"github.com/sir_venger/registry_lite/internal/usecase/registrysvc"
	"github.com/sir_venger/registry_lite/internal/usecase/tracksvc"
	"github.com/sir_venger/registry_lite/pkg/storageclient"
)

const memoryDSNPrefix = "memory://"

type Server struct {
	Registry registrysvc.Service
	Tracker  tracksvc.Service
	Metrics  *metrics.Collector
	Cfg      *config.Config
	Logger   *slog.Logger
}

// NewServer конструктор
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, storageCli storageclient.Client) (http.Handler, *Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry, tracker, collector, err := buildServices(ctx, cfg, logger, storageCli)
	if err != nil {
		return nil, nil, err
	}

	srv := &Server{
		Registry: registry,
		Tracker:  tracker,
		Metrics:  collector,
		Cfg:      cfg,
		Logger:   logger,
	}

	rtr := chi.NewRouter()
	rtr.Post("/artifacts", srv.postArtifact)
	rtr.Get("/artifacts", srv.listArtifacts)
	rtr.Get("/artifacts/{name}", srv.getArtifact)
	rtr.Get("/artifacts/{name}/download", srv.downloadArtifact)
	rtr.Method(http.MethodGet, "/metrics", collector.Handler())
	rtr.Get("/admin/config", func(w http.ResponseWriter, r *http.Request) { _ = json.NewEncoder(w).Encode(cfg) })

	return rtr, srv, nil
}

// buildServices собирает хранилище, реестр и трекер. DSN с префиксом memory://
// включает in-memory хранилище, любой другой трактуется как Postgres.
func buildServices(ctx context.Context, cfg *config.Config, logger *slog.Logger, storageCli storageclient.Client) (registrysvc.Service, tracksvc.Service, *metrics.Collector, error) {
	var store interface {
		registrysvc.ArtifactStore
		tracksvc.DownloadLog
	}

	if strings.HasPrefix(cfg.MetaDSN, memoryDSNPrefix) {
		store = repo.NewMemoryStore()
	} else {
		pg, err := repo.NewPGStore(ctx, cfg.MetaDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		store = pg
	}

	collector := metrics.NewCollector()

	registry := registrysvc.New(registrysvc.Deps{
		Store:   store,
		Metrics: collector,
	})

	tracker := tracksvc.New(tracksvc.Deps{
		Artifacts:  registry,
		StorageCli: storageCli,
		Log:        store,
		Metrics:    collector,
		StagingDir: cfg.StagingDir,
		Logger:     logger,
	})

	return registry, tracker, collector, nil
}
