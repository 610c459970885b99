package registrysvc

import (
	"context"

	"github.com/sir_venger/registry_lite/internal/models"
)

type (
	// ArtifactStore — хранилище записей об артефактах
	ArtifactStore interface {
		CreateArtifact(ctx context.Context, rec models.ArtifactRecord) (string, error)
		GetArtifact(ctx context.Context, name string) (models.ArtifactRecord, error)
		ListArtifacts(ctx context.Context) ([]models.ArtifactRecord, error)
	}

	// Metrics — счётчик успешных регистраций.
	Metrics interface {
		IncRegistrations()
	}

	// Service объединяет операции реестра артефактов.
	Service interface {
		Register(ctx context.Context, rec models.ArtifactRecord) (string, error)
		Get(ctx context.Context, name string) (models.ArtifactRecord, error)
		List(ctx context.Context) ([]models.ArtifactRecord, error)
	}
)

type Deps struct {
	Store   ArtifactStore
	Metrics Metrics
}

// Registry — stateless-фасад над хранилищем: собственного изменяемого
// состояния не держит, уникальность имён обеспечивает хранилище.
type Registry struct {
	Deps
}

// New конструирует реестр с заданными зависимостями.
func New(deps Deps) *Registry {
	return &Registry{Deps: deps}
}

var _ Service = (*Registry)(nil)
