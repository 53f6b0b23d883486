package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/pressroom/pressroom-api/internal/api/metrics"
	"github.com/pressroom/pressroom-api/internal/core/domain"
	"github.com/pressroom/pressroom-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes user mutation events to a fixed set of audit writers
// using consistent hashing on the user id, guaranteeing per-user ordering in
// the audit trail. Enqueue is the post-persist notification hook: it never
// propagates failures back to the request that produced the event.
type Dispatcher struct {
	workers []chan domain.UserEvent
	audit   ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded writers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, audit ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.UserEvent, numWorkers),
		audit:   audit,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.UserEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its user id. When the
// worker's buffer is full the event is dropped and counted rather than
// blocking the originating request.
func (d *Dispatcher) Enqueue(event domain.UserEvent) {
	idx := d.shardIndex(event.UserID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditWriteFailuresTotal.Inc()
		d.log.Warn().Int64("user_id", event.UserID).Str("action", string(event.Action)).Msg("audit queue full, event dropped")
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch chan domain.UserEvent) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.audit.InsertEvent(ctx, &event); err != nil {
				metrics.AuditWriteFailuresTotal.Inc()
				d.log.Warn().Err(err).Int64("user_id", event.UserID).Str("action", string(event.Action)).Msg("failed to write audit event")
				continue
			}
			d.log.Debug().Int64("user_id", event.UserID).Str("action", string(event.Action)).Int64("actor_id", event.ActorID).Msg("audit event written")
		}
	}
}

// shardIndex maps a user id to a worker, keeping all events for one user on
// the same writer.
func (d *Dispatcher) shardIndex(userID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(userID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}
