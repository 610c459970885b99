package tracksvc

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/sir_venger/registry_lite/internal/models"
)

// Download — результат успешной выдачи: открытый staging-файл плюс записанный
// журнальный факт. Вызывающий обязан закрыть Download после передачи байтов.
type Download struct {
	Entry models.DownloadLogEntry

	file   *os.File
	path   string
	logger *slog.Logger
	once   sync.Once
}

// Read отдаёт содержимое staging-файла.
func (d *Download) Read(p []byte) (int, error) {
	return d.file.Read(p)
}

// Size возвращает размер блоба в байтах.
func (d *Download) Size() int64 {
	return d.Entry.SizeBytes
}

// Close закрывает и удаляет staging-файл ровно один раз. Повторные вызовы
// безопасны. Сбои очистки логируются, но наружу не возвращаются: скачивание
// уже состоялось, и ошибка уборки не должна его перечеркнуть.
func (d *Download) Close() error {
	d.once.Do(func() {
		if err := d.file.Close(); err != nil {
			d.logger.Warn("staging close failed", "path", d.path, "error", err)
		}
		if err := os.Remove(d.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			d.logger.Warn("staging cleanup failed", "path", d.path, "error", err)
		}
	})
	return nil
}
