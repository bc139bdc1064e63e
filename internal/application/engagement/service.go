package engagement

import (
	"sync"
	"time"
)

// Engine keeps the per-location visit counters consistent with the events
// that reference them. It owns no state of its own beyond the reconcile lock;
// it only translates event lifecycle changes into CounterStore mutations.
type Engine struct {
	store  CounterStore
	events EventSource
	cache  Cache
	pub    NotificationPublisher
	clock  Clock

	ttlCounter time.Duration

	// Serializes ReconcileAll against itself. A second invocation while one
	// runs is rejected, not queued, to avoid double resets.
	reconcileMu sync.Mutex
}

func New(
	store CounterStore,
	events EventSource,
	clock Clock,
	pub NotificationPublisher,
	cache Cache,
	ttlCounter time.Duration,
) *Engine {
	if ttlCounter == 0 {
		ttlCounter = 1 * time.Minute
	}
	if pub == nil {
		pub = NoopPublisher{}
	}

	return &Engine{
		store:      store,
		events:     events,
		cache:      cache,
		pub:        pub,
		clock:      clock,
		ttlCounter: ttlCounter,
	}
}
