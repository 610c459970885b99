package repo

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sir_venger/registry_lite/internal/models"
)

// MemoryStore хранит метаданные только в оперативной памяти; удобно для тестов.
type MemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]models.ArtifactRecord
	downloads []models.DownloadLogEntry
}

// NewMemoryStore создаёт пустое in-memory хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{artifacts: map[string]models.ArtifactRecord{}}
}

// CreateArtifact вставляет запись, если имя ещё не занято. Проверка и вставка
// выполняются под одной блокировкой, поэтому гонки между регистрациями исключены.
func (s *MemoryStore) CreateArtifact(ctx context.Context, rec models.ArtifactRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.artifacts[rec.Name]; exists {
		return "", models.ErrDuplicateName
	}

	rec.ID = uuid.NewString()
	s.artifacts[rec.Name] = rec.Clone()
	return rec.ID, nil
}

// GetArtifact возвращает запись по имени или models.ErrNotFound.
func (s *MemoryStore) GetArtifact(ctx context.Context, name string) (models.ArtifactRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.artifacts[name]
	if !ok {
		return models.ArtifactRecord{}, models.ErrNotFound
	}
	return rec.Clone(), nil
}

// ListArtifacts возвращает снапшот всех записей.
func (s *MemoryStore) ListArtifacts(ctx context.Context) ([]models.ArtifactRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ArtifactRecord, 0, len(s.artifacts))
	for _, rec := range s.artifacts {
		out = append(out, rec.Clone())
	}
	return out, nil
}

// AppendDownload добавляет строку в журнал скачиваний.
func (s *MemoryStore) AppendDownload(ctx context.Context, e models.DownloadLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloads = append(s.downloads, e)
	return nil
}

// Downloads возвращает копию журнала; используется тестами для проверок.
func (s *MemoryStore) Downloads() []models.DownloadLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.DownloadLogEntry{}, s.downloads...)
}
