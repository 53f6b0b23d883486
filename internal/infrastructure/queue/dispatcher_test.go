package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pressroom/pressroom-api/internal/core/domain"
)

type recordingAuditRepo struct {
	mu     sync.Mutex
	events []domain.UserEvent
}

func (r *recordingAuditRepo) InsertEvent(_ context.Context, e *domain.UserEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	return nil
}

func (r *recordingAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestDispatcher_WritesEvents(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := int64(1); i <= 5; i++ {
		d.Enqueue(domain.UserEvent{UserID: i, Action: domain.UserCreated, Timestamp: time.Now()})
	}

	deadline := time.After(2 * time.Second)
	for repo.count() < 5 {
		select {
		case <-deadline:
			t.Fatalf("expected 5 audit events, got %d", repo.count())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingAuditRepo{}, zerolog.Nop())

	for _, id := range []int64{1, 42, 7777} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if d.shardIndex(id) != first {
				t.Fatalf("shard for user %d must be deterministic", id)
			}
		}
		if first < 0 || first >= len(d.workers) {
			t.Fatalf("shard out of range: %d", first)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingAuditRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
