package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordRequest(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/leads", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/api/leads", "GET", 200, 7*time.Millisecond)
	m.RecordRequest("/api/leads", "GET", 401, time.Millisecond)

	assert.Equal(t, int64(2), m.RequestTotal("/api/leads", "GET", 200))
	assert.Equal(t, int64(1), m.RequestTotal("/api/leads", "GET", 401))
	assert.Equal(t, int64(0), m.RequestTotal("/api/leads", "POST", 200))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	m.RecordRequest("/api/health", "GET", 200, 0)
	m.RecordError("/api/health", "GET", "INTERNAL_ERROR")
	assert.Equal(t, int64(0), m.RequestTotal("/api/health", "GET", 200))
}

func TestMetrics_ConcurrentAccess(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest("/api/leads", "POST", 200, time.Millisecond)
			m.RecordError("/api/leads", "POST", "VALIDATION_FAILED")
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), m.RequestTotal("/api/leads", "POST", 200))
}
