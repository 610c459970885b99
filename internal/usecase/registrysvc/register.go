package registrysvc

import (
	"context"
	"fmt"
	"strings"

	"github.com/sir_venger/registry_lite/internal/models"
)

// Register валидирует запись и вставляет её в хранилище. При занятом имени
// возвращается models.ErrDuplicateName, состояние хранилища не меняется.
func (r *Registry) Register(ctx context.Context, rec models.ArtifactRecord) (string, error) {
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return "", fmt.Errorf("artifact name is required")
	}
	if _, err := models.ParseLocator(rec.StorageURI); err != nil {
		return "", err
	}

	id, err := r.Store.CreateArtifact(ctx, rec)
	if err != nil {
		return "", err
	}

	r.Metrics.IncRegistrations()
	return id, nil
}
