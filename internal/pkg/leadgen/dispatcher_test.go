package leadgen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propnest/PropNest/internal/pkg/metrics/counter"
)

// gateFetcher reports when a fetch starts and then blocks it until the gate
// closes, which lets tests fill the queue deterministically.
type gateFetcher struct {
	inner   *fakeFetcher
	started chan string
	gate    chan struct{}
}

func newGateFetcher(inner *fakeFetcher) *gateFetcher {
	return &gateFetcher{
		inner:   inner,
		started: make(chan string, 8),
		gate:    make(chan struct{}),
	}
}

func (g *gateFetcher) FetchLead(ctx context.Context, leadEventID string) (*LeadDetail, error) {
	g.started <- leadEventID
	<-g.gate
	return g.inner.FetchLead(ctx, leadEventID)
}

func TestNewDispatcher_Defaults(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantWorkers int
		wantQueue   int
	}{
		{"explicit sizes", Config{Workers: 2, QueueSize: 8}, 2, 8},
		{"zero falls back", Config{}, defaultWorkers, defaultQueueSize},
		{"negative falls back", Config{Workers: -1, QueueSize: -1}, defaultWorkers, defaultQueueSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(NewService(newFakeStore(), newFakeFetcher(), nil), tt.cfg)
			assert.Equal(t, tt.wantWorkers, d.workers)
			assert.Equal(t, tt.wantQueue, cap(d.tasks))
			assert.False(t, d.running)
		})
	}
}

func TestDispatcher_ProcessesEnqueuedDelivery(t *testing.T) {
	setupTestRedis(t)

	store := newFakeStore()
	fetcher := newFakeFetcher()
	fetcher.details["L1"] = detailWithFields(field("full_name", "Asha Rao"))

	d := NewDispatcher(NewService(store, fetcher, nil), Config{Workers: 2, QueueSize: 8})
	d.Start()
	defer d.Stop()

	require.True(t, d.Enqueue(pageEnvelope(leadgenChange("L1", ""))))
	require.Eventually(t, func() bool { return store.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestDispatcher_StopDrainsQueue(t *testing.T) {
	setupTestRedis(t)

	store := newFakeStore()
	fetcher := newFakeFetcher()
	ids := []string{"L1", "L2", "L3"}
	for _, id := range ids {
		fetcher.details[id] = detailWithFields(field("full_name", "Lead "+id))
	}

	d := NewDispatcher(NewService(store, fetcher, nil), Config{Workers: 1, QueueSize: 8})
	d.Start()
	for _, id := range ids {
		require.True(t, d.Enqueue(pageEnvelope(leadgenChange(id, ""))))
	}

	d.Stop()
	assert.Equal(t, len(ids), store.count(), "queued deliveries must still drain on stop")
}

func TestDispatcher_EnqueueRequiresRunning(t *testing.T) {
	setupTestRedis(t)

	d := NewDispatcher(NewService(newFakeStore(), newFakeFetcher(), nil), Config{Workers: 1, QueueSize: 1})
	assert.False(t, d.Enqueue(nil))
	assert.False(t, d.Enqueue(pageEnvelope(leadgenChange("L1", ""))))

	d.Start()
	d.Start() // second start is a no-op
	d.Stop()
	d.Stop() // as is a second stop

	assert.False(t, d.Enqueue(pageEnvelope(leadgenChange("L1", ""))))
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	setupTestRedis(t)

	store := newFakeStore()
	inner := newFakeFetcher()
	inner.details["L1"] = detailWithFields(field("full_name", "Lead L1"))
	inner.details["L2"] = detailWithFields(field("full_name", "Lead L2"))
	gate := newGateFetcher(inner)

	d := NewDispatcher(NewService(store, gate, nil), Config{Workers: 1, QueueSize: 1})
	d.Start()

	// The first delivery occupies the single worker...
	require.True(t, d.Enqueue(pageEnvelope(leadgenChange("L1", ""))))
	<-gate.started

	// ...the second fills the queue, the third has nowhere to go.
	require.True(t, d.Enqueue(pageEnvelope(leadgenChange("L2", ""))))
	assert.False(t, d.Enqueue(pageEnvelope(leadgenChange("L3", ""))))

	close(gate.gate)
	d.Stop()

	assert.Equal(t, 2, store.count())
	assert.Nil(t, store.get("L3"), "the dropped delivery is gone for good")

	snap, err := counter.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap[counter.FieldQueueDrops])
}
