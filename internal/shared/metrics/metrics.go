package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	registrationStartedTotal   atomic.Uint64
	registrationCompletedTotal atomic.Uint64
	registrationFailedTotal    atomic.Uint64
	emailFailedTotal           atomic.Uint64

	registrationDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncRegistrationStarted increments the started counter.
func IncRegistrationStarted() {
	registrationStartedTotal.Add(1)
}

// IncRegistrationCompleted increments the completed counter.
func IncRegistrationCompleted() {
	registrationCompletedTotal.Add(1)
}

// IncRegistrationFailed increments the failed counter.
func IncRegistrationFailed() {
	registrationFailedTotal.Add(1)
}

// IncEmailFailed increments the failed-email counter. Email failures do not
// fail requests, so this counter is the main signal that delivery is broken.
func IncEmailFailed() {
	emailFailedTotal.Add(1)
}

// ObserveRegistrationDurationMs records a registration duration in milliseconds.
func ObserveRegistrationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	registrationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "registration_started_total", "Total registrations started", registrationStartedTotal.Load())
	writeCounter(&buf, "registration_completed_total", "Total registrations completed", registrationCompletedTotal.Load())
	writeCounter(&buf, "registration_failed_total", "Total registrations failed", registrationFailedTotal.Load())
	writeCounter(&buf, "email_failed_total", "Total transactional emails that failed to send", emailFailedTotal.Load())
	writeHistogram(&buf, "registration_duration_ms", "Registration duration in milliseconds", registrationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
