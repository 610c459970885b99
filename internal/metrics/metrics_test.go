package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ConcurrentIncrements(t *testing.T) {
	c := NewCollector()

	const workers = 50
	const perWorker = 200

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.IncRegistrations()
				c.IncDownloads()
				c.ObserveDownloadDuration(0.01)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, float64(workers*perWorker), testutil.ToFloat64(c.registrations))
	assert.Equal(t, float64(workers*perWorker), testutil.ToFloat64(c.downloads))

	mfs, err := c.reg.Gather()
	require.NoError(t, err)

	var sampleCount uint64
	for _, mf := range mfs {
		if mf.GetName() == "registry_download_duration_seconds" {
			sampleCount = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(workers*perWorker), sampleCount, "every observed duration counted exactly once")
}

func TestCollector_HandlerExposesCounters(t *testing.T) {
	c := NewCollector()
	c.IncDownloads()

	count, err := testutil.GatherAndCount(c.reg, "registry_downloads_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotNil(t, c.Handler())
}
