package leadgen

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/propnest/PropNest/internal/pkg/metrics/counter"
)

// Dispatcher runs delivery processing off the request path. Envelopes are
// fire and forget: the HTTP handler never learns how processing went, and a
// full queue drops the delivery rather than block the handler.
type Dispatcher struct {
	service *Service
	tasks   chan *WebhookEnvelope
	workers int

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

// NewDispatcher sizes the task queue and worker pool from cfg.
func NewDispatcher(service *Service, cfg Config) *Dispatcher {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	queue := cfg.QueueSize
	if queue <= 0 {
		queue = defaultQueueSize
	}

	return &Dispatcher{
		service: service,
		tasks:   make(chan *WebhookEnvelope, queue),
		workers: workers,
	}
}

// Start launches the workers. Calling Start on a running dispatcher is a
// no-op.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return
	}
	d.running = true

	log.Infof("[Leadgen] starting %d workers (queue=%d)", d.workers, cap(d.tasks))
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Stop closes intake and waits for the workers to drain the queue.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	close(d.tasks)
	d.mu.Unlock()

	log.Info("[Leadgen] stopping workers...")
	d.wg.Wait()
	log.Info("[Leadgen] all workers stopped")
}

// Enqueue hands a delivery to the workers without ever blocking the caller.
// When the queue is full the envelope is dropped and counted; the provider
// already received its acknowledgment and is never told.
func (d *Dispatcher) Enqueue(envelope *WebhookEnvelope) bool {
	if envelope == nil {
		return false
	}

	// The lock orders this send against Stop closing the channel.
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		log.Warn("[Leadgen] dispatcher not running, delivery dropped")
		counter.Bump(counter.FieldQueueDrops)
		return false
	}

	select {
	case d.tasks <- envelope:
		return true
	default:
		log.Warnf("[Leadgen] queue full, delivery with %d entries dropped", len(envelope.Entries))
		counter.Bump(counter.FieldQueueDrops)
		return false
	}
}

// worker processes deliveries until intake closes. No timeout or
// cancellation is threaded through a task; the Graph client's HTTP timeout
// is the only bound.
func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	log.Infof("[Leadgen] worker %d started", id)

	ctx := context.Background()
	for envelope := range d.tasks {
		res := d.service.ProcessEnvelope(ctx, envelope)
		log.Debugf("[Leadgen] worker %d finished delivery: created=%d duplicates=%d skipped=%d failures=%d",
			id, res.Created, res.Duplicates, res.Skipped, res.Failures)
	}

	log.Infof("[Leadgen] worker %d stopped", id)
}
