package tracksvc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/sir_venger/registry_lite/internal/models"
	"github.com/sir_venger/registry_lite/internal/repo"
	"github.com/sir_venger/registry_lite/internal/usecase/registrysvc"
)

// fakeStorage пишет заранее заданный блоб в dst либо имитирует сбой хранилища.
type fakeStorage struct {
	payload []byte
	err     error
	partial bool
}

func (f *fakeStorage) Fetch(ctx context.Context, loc models.Locator, dst string) (int64, error) {
	if f.err != nil {
		if f.partial {
			_ = os.WriteFile(dst, f.payload[:len(f.payload)/2], 0o644)
		}
		return 0, fmt.Errorf("%w: %w", models.ErrStorageFetch, f.err)
	}

	// Небольшая задержка, чтобы измеренная длительность была строго положительной.
	time.Sleep(time.Millisecond)
	if err := os.WriteFile(dst, f.payload, 0o644); err != nil {
		return 0, err
	}
	return int64(len(f.payload)), nil
}

type fakeMetrics struct {
	mu        sync.Mutex
	downloads int
	durations []float64
}

func (m *fakeMetrics) IncDownloads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloads++
}

func (m *fakeMetrics) ObserveDownloadDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = append(m.durations, seconds)
}

func (m *fakeMetrics) snapshot() (int, []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.downloads, append([]float64{}, m.durations...)
}

type noRegMetrics struct{}

func (noRegMetrics) IncRegistrations() {}

func newTestTracker(t *testing.T, storage *fakeStorage) (*Tracker, *repo.MemoryStore, *fakeMetrics, string) {
	t.Helper()

	store := repo.NewMemoryStore()
	registry := registrysvc.New(registrysvc.Deps{Store: store, Metrics: noRegMetrics{}})
	m := &fakeMetrics{}
	stagingDir := t.TempDir()

	tracker := New(Deps{
		Artifacts:  registry,
		StorageCli: storage,
		Log:        store,
		Metrics:    m,
		StagingDir: stagingDir,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return tracker, store, m, stagingDir
}

func registerArtifact(t *testing.T, store *repo.MemoryStore) {
	t.Helper()
	_, err := store.CreateArtifact(context.Background(), models.ArtifactRecord{
		Name:       "resnet50",
		Owner:      "alice",
		Project:    "vision",
		StorageURI: "s3://models-bucket/resnet50.bin",
		Metadata:   map[string]any{"framework": "onnx"},
	})
	require.NoError(t, err)
}

func stagingFiles(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestTracker_FetchSuccess(t *testing.T) {
	payload := bytes.Repeat([]byte{0xA1}, 1024)
	tracker, store, m, stagingDir := newTestTracker(t, &fakeStorage{payload: payload})
	registerArtifact(t, store)

	dl, err := tracker.Fetch(context.Background(), "resnet50", "bob")
	require.NoError(t, err)

	assert.Equal(t, "bob", dl.Entry.RequesterID)
	assert.Equal(t, "resnet50", dl.Entry.ArtifactName)
	assert.Equal(t, "vision", dl.Entry.Project)
	assert.Equal(t, int64(1024), dl.Entry.SizeBytes)
	assert.Greater(t, dl.Entry.DurationSeconds, 0.0)
	assert.Greater(t, dl.Entry.TimestampUnix, int64(0))

	got, err := io.ReadAll(dl)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	assert.Len(t, stagingFiles(t, stagingDir), 1, "staging file lives until the caller is done")
	require.NoError(t, dl.Close())
	assert.Empty(t, stagingFiles(t, stagingDir), "staging file removed on release")
	require.NoError(t, dl.Close(), "second Close is a no-op")

	downloads, durations := m.snapshot()
	assert.Equal(t, 1, downloads)
	require.Len(t, durations, 1)
	assert.Equal(t, dl.Entry.DurationSeconds, durations[0])

	log := store.Downloads()
	require.Len(t, log, 1)
	assert.Equal(t, dl.Entry, log[0])
}

func TestTracker_DefaultRequester(t *testing.T) {
	tracker, store, _, _ := newTestTracker(t, &fakeStorage{payload: []byte("blob")})
	registerArtifact(t, store)

	dl, err := tracker.Fetch(context.Background(), "resnet50", "")
	require.NoError(t, err)
	defer dl.Close()

	assert.Equal(t, DefaultRequester, dl.Entry.RequesterID)
}

func TestTracker_UnknownArtifact(t *testing.T) {
	tracker, store, m, stagingDir := newTestTracker(t, &fakeStorage{payload: []byte("blob")})

	_, err := tracker.Fetch(context.Background(), "ghost", "bob")
	require.ErrorIs(t, err, models.ErrNotFound)

	assert.Empty(t, stagingFiles(t, stagingDir), "no staging file is created for an unknown name")
	downloads, _ := m.snapshot()
	assert.Zero(t, downloads)
	assert.Empty(t, store.Downloads())
}

func TestTracker_StorageFailure(t *testing.T) {
	storage := &fakeStorage{payload: []byte("half-written blob"), err: io.ErrUnexpectedEOF, partial: true}
	tracker, store, m, stagingDir := newTestTracker(t, storage)
	registerArtifact(t, store)

	_, err := tracker.Fetch(context.Background(), "resnet50", "bob")
	require.ErrorIs(t, err, models.ErrStorageFetch)

	assert.Empty(t, stagingFiles(t, stagingDir), "partial staging file removed on fetch failure")
	downloads, durations := m.snapshot()
	assert.Zero(t, downloads, "failed fetch must not count as a download")
	assert.Empty(t, durations)
	assert.Empty(t, store.Downloads(), "failed fetch must not produce a log entry")
}

func TestTracker_ConcurrentDownloadsAreIndependent(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, 4096)
	tracker, store, m, stagingDir := newTestTracker(t, &fakeStorage{payload: payload})
	registerArtifact(t, store)

	const parallel = 8
	var eg errgroup.Group
	for i := 0; i < parallel; i++ {
		eg.Go(func() error {
			dl, err := tracker.Fetch(context.Background(), "resnet50", "bob")
			if err != nil {
				return err
			}
			defer dl.Close()

			got, err := io.ReadAll(dl)
			if err != nil {
				return err
			}
			if !bytes.Equal(payload, got) {
				return fmt.Errorf("payload corrupted under concurrency")
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	assert.Empty(t, stagingFiles(t, stagingDir))
	downloads, _ := m.snapshot()
	assert.Equal(t, parallel, downloads)
	assert.Len(t, store.Downloads(), parallel, "each download gets its own log entry")
}
