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
	ordersCreatedTotal    atomic.Uint64
	mixerAssignmentsTotal atomic.Uint64
	reordersAppliedTotal  atomic.Uint64
	reordersRejectedTotal atomic.Uint64
	liveEditsTotal        atomic.Uint64
	liveUndosTotal        atomic.Uint64
	livePublishesTotal    atomic.Uint64
	versionConflictsTotal atomic.Uint64

	reorderDuration = newHistogram([]float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250})
)

// IncOrdersCreated increments the created-orders counter.
func IncOrdersCreated() {
	ordersCreatedTotal.Add(1)
}

// IncMixerAssignments increments the mixer-assignments counter.
func IncMixerAssignments() {
	mixerAssignmentsTotal.Add(1)
}

// IncReordersApplied increments the committed-reorders counter.
func IncReordersApplied() {
	reordersAppliedTotal.Add(1)
}

// IncReordersRejected increments the rolled-back-reorders counter.
func IncReordersRejected() {
	reordersRejectedTotal.Add(1)
}

// IncLiveEdits increments the live-edit-mutations counter.
func IncLiveEdits() {
	liveEditsTotal.Add(1)
}

// IncLiveUndos increments the live-edit-undo counter.
func IncLiveUndos() {
	liveUndosTotal.Add(1)
}

// IncLivePublishes increments the live-edit-publish counter.
func IncLivePublishes() {
	livePublishesTotal.Add(1)
}

// IncVersionConflicts increments the stale-version-rejection counter.
func IncVersionConflicts() {
	versionConflictsTotal.Add(1)
}

// ObserveReorderDurationMs records a reorder duration in milliseconds.
func ObserveReorderDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	reorderDuration.Observe(value)
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
	writeCounter(&buf, "orders_created_total", "Total fill orders created", ordersCreatedTotal.Load())
	writeCounter(&buf, "mixer_assignments_total", "Total mixer assignments committed", mixerAssignmentsTotal.Load())
	writeCounter(&buf, "reorders_applied_total", "Total line reorders committed", reordersAppliedTotal.Load())
	writeCounter(&buf, "reorders_rejected_total", "Total line reorders rolled back", reordersRejectedTotal.Load())
	writeCounter(&buf, "live_edits_total", "Total live-edit session mutations", liveEditsTotal.Load())
	writeCounter(&buf, "live_undos_total", "Total live-edit undos", liveUndosTotal.Load())
	writeCounter(&buf, "live_publishes_total", "Total live-edit publishes", livePublishesTotal.Load())
	writeCounter(&buf, "version_conflicts_total", "Total stale-version rejections", versionConflictsTotal.Load())
	writeHistogram(&buf, "reorder_duration_ms", "Line reorder duration in milliseconds", reorderDuration.Snapshot())
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
