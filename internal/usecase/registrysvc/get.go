package registrysvc

import (
	"context"

	"github.com/sir_venger/registry_lite/internal/models"
)

// Get возвращает запись по имени; отсутствие артефакта — models.ErrNotFound.
func (r *Registry) Get(ctx context.Context, name string) (models.ArtifactRecord, error) {
	return r.Store.GetArtifact(ctx, name)
}

// List возвращает все записи; порядок не гарантируется.
func (r *Registry) List(ctx context.Context) ([]models.ArtifactRecord, error) {
	return r.Store.ListArtifacts(ctx)
}
