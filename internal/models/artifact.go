package models

import (
	"fmt"
	"strings"
)

// Locator описывает адрес байтов артефакта в объектном хранилище.
type Locator struct {
	Scheme string `json:"scheme"`
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// ParseLocator разбирает строку вида scheme://bucket/key... на составные части.
// Бакет — первый сегмент пути, ключ — всё остальное.
func ParseLocator(raw string) (Locator, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok || scheme == "" {
		return Locator{}, fmt.Errorf("%w: %q", ErrInvalidLocator, raw)
	}

	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return Locator{}, fmt.Errorf("%w: %q", ErrInvalidLocator, raw)
	}

	return Locator{Scheme: scheme, Bucket: bucket, Key: key}, nil
}

// String собирает локатор обратно в каноническую строку.
func (l Locator) String() string {
	return l.Scheme + "://" + l.Bucket + "/" + l.Key
}

// BucketURL возвращает адрес бакета без ключа — в таком виде его открывает storage-клиент.
func (l Locator) BucketURL() string {
	return l.Scheme + "://" + l.Bucket
}

// ArtifactRecord содержит метаданные зарегистрированного артефакта.
// Имя уникально и неизменяемо после регистрации.
type ArtifactRecord struct {
	ID         string         `json:"artifact_id,omitempty"`
	Name       string         `json:"name"`
	Owner      string         `json:"owner"`
	Project    string         `json:"project"`
	StorageURI string         `json:"storage_uri"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Locator разбирает StorageURI записи.
func (a ArtifactRecord) Locator() (Locator, error) {
	return ParseLocator(a.StorageURI)
}

// Clone возвращает копию структуры, чтобы не делиться внутренними картами.
func (a ArtifactRecord) Clone() ArtifactRecord {
	out := a
	if a.Metadata != nil {
		out.Metadata = make(map[string]any, len(a.Metadata))
		for k, v := range a.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
