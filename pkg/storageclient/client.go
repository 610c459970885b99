// Package storageclient скачивает блобы из объектного хранилища по локатору
// scheme://bucket/key. Конкретный бэкенд выбирается схемой URL (s3, file и т.д.),
// драйверы подключаются blank-импортами на стороне бинаря.
package storageclient

import (
	"context"
	"fmt"
	"io"
	"os"

	"gocloud.dev/blob"

	"github.com/sir_venger/registry_lite/internal/models"
)

// BucketOpener открывает бакет по URL вида scheme://bucket.
type BucketOpener func(ctx context.Context, url string) (*blob.Bucket, error)

type Client interface {
	// Fetch скачивает объект по локатору в локальный файл dst
	// и возвращает число записанных байт.
	Fetch(ctx context.Context, loc models.Locator, dst string) (int64, error)
}

type blobClient struct {
	open BucketOpener
}

// New создаёт клиент поверх стандартного реестра драйверов gocloud.
func New() Client {
	return &blobClient{open: blob.OpenBucket}
}

// NewWithOpener создаёт клиент с заданным способом открытия бакетов; нужен тестам.
func NewWithOpener(open BucketOpener) Client {
	return &blobClient{open: open}
}

// Fetch копирует объект из хранилища в dst. Ошибки хранилища (нет бакета, нет ключа,
// обрыв передачи) оборачиваются в models.ErrStorageFetch, ошибки локального файла —
// в models.ErrStagingIO. Частично записанный dst при ошибке не удаляется: владение
// файлом и его очистка остаются за вызывающей стороной.
func (c *blobClient) Fetch(ctx context.Context, loc models.Locator, dst string) (int64, error) {
	bucket, err := c.open(ctx, loc.BucketURL())
	if err != nil {
		return 0, fmt.Errorf("%w: open bucket %s: %w", models.ErrStorageFetch, loc.BucketURL(), err)
	}
	defer bucket.Close()

	r, err := bucket.NewReader(ctx, loc.Key, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %w", models.ErrStorageFetch, loc, err)
	}
	defer r.Close()

	f, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("%w: create %s: %w", models.ErrStagingIO, dst, err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		return n, fmt.Errorf("%w: copy %s: %w", models.ErrStorageFetch, loc, err)
	}

	if err := f.Close(); err != nil {
		return n, fmt.Errorf("%w: close %s: %w", models.ErrStagingIO, dst, err)
	}

	return n, nil
}
