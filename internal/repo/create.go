package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sir_venger/registry_lite/internal/models"
)

// Код ошибки unique_violation в Postgres.
const pgUniqueViolation = "23505"

// CreateArtifact вставляет новую запись и возвращает присвоенный идентификатор.
// Уникальность имени обеспечивает constraint таблицы: проверка атомарна со вставкой,
// при конфликте запись не появляется и возвращается models.ErrDuplicateName.
func (s *PGStore) CreateArtifact(ctx context.Context, rec models.ArtifactRecord) (string, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return "", fmt.Errorf("artifact name is empty")
	}
	if rec.Metadata == nil {
		rec.Metadata = map[string]any{}
	}

	metadataJSON, err := json.Marshal(rec.Metadata)
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}

	id := uuid.NewString()
	sqlStr, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert(artifactsTable).
		Columns("id", "name", "owner", "project", "storage_uri", "metadata").
		Values(id, rec.Name, rec.Owner, rec.Project, rec.StorageURI, metadataJSON).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert sql: %w", err)
	}

	if _, err := s.pool.Exec(ctx, sqlStr, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return "", fmt.Errorf("%w: %s", models.ErrDuplicateName, rec.Name)
		}
		return "", fmt.Errorf("exec insert: %w", err)
	}

	return id, nil
}
