package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/sir_venger/registry_lite/internal/models"
)

// GetArtifact возвращает запись по уникальному имени.
func (s *PGStore) GetArtifact(ctx context.Context, name string) (models.ArtifactRecord, error) {
	if strings.TrimSpace(name) == "" {
		return models.ArtifactRecord{}, fmt.Errorf("artifact name is empty")
	}

	// COALESCE(metadata, '{}') — чтобы гарантированно получить валидный JSON для Unmarshal.
	sqlStr, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(
			"id",
			"owner",
			"project",
			"storage_uri",
			"COALESCE(metadata, '{}'::jsonb) AS metadata",
		).
		From(artifactsTable).
		Where(sq.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return models.ArtifactRecord{}, fmt.Errorf("build select: %w", err)
	}

	var (
		id          string
		owner       string
		project     string
		storageURI  string
		metadataRaw []byte
	)

	if err = s.pool.QueryRow(ctx, sqlStr, args...).Scan(&id, &owner, &project, &storageURI, &metadataRaw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ArtifactRecord{}, models.ErrNotFound
		}
		return models.ArtifactRecord{}, fmt.Errorf("scan artifact row: %w", err)
	}

	var metadata map[string]any
	if err := json.Unmarshal(metadataRaw, &metadata); err != nil {
		return models.ArtifactRecord{}, fmt.Errorf("unmarshal metadata: %w", err)
	}

	return models.ArtifactRecord{
		ID:         id,
		Name:       name,
		Owner:      owner,
		Project:    project,
		StorageURI: storageURI,
		Metadata:   metadata,
	}.Clone(), nil
}

// ListArtifacts возвращает все записи; порядок не гарантируется.
func (s *PGStore) ListArtifacts(ctx context.Context) ([]models.ArtifactRecord, error) {
	sqlStr, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(
			"id",
			"name",
			"owner",
			"project",
			"storage_uri",
			"COALESCE(metadata, '{}'::jsonb) AS metadata",
		).
		From(artifactsTable).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	var out []models.ArtifactRecord
	for rows.Next() {
		var (
			rec         models.ArtifactRecord
			metadataRaw []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Owner, &rec.Project, &rec.StorageURI, &metadataRaw); err != nil {
			return nil, fmt.Errorf("scan artifact row: %w", err)
		}
		if err := json.Unmarshal(metadataRaw, &rec.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifacts: %w", err)
	}

	return out, nil
}
