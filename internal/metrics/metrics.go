// Package metrics содержит счётчики процесса: регистрации, скачивания и их длительность.
// Коллектор создаётся один раз при старте и живёт до завершения процесса.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector — потокобезопасный набор метрик реестра. Все инкременты идут через
// атомарные примитивы prometheus, читать-модифицировать-писать снаружи нельзя.
type Collector struct {
	reg *prometheus.Registry

	registrations prometheus.Counter
	downloads     prometheus.Counter
	downloadSecs  prometheus.Histogram
}

// NewCollector создаёт коллектор с собственным prometheus-реестром.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	return &Collector{
		reg: reg,
		registrations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "registry_registrations_total",
			Help: "Total number of successfully registered artifacts.",
		}),
		downloads: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "registry_downloads_total",
			Help: "Total number of completed artifact downloads.",
		}),
		downloadSecs: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "registry_download_duration_seconds",
			Help:    "Elapsed time of completed artifact downloads.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncRegistrations учитывает одну успешную регистрацию.
func (c *Collector) IncRegistrations() {
	c.registrations.Inc()
}

// IncDownloads учитывает одно завершённое скачивание.
func (c *Collector) IncDownloads() {
	c.downloads.Inc()
}

// ObserveDownloadDuration фиксирует длительность завершённого скачивания.
func (c *Collector) ObserveDownloadDuration(seconds float64) {
	c.downloadSecs.Observe(seconds)
}

// Handler отдаёт снапшот метрик в pull-формате prometheus.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
