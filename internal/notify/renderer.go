package notify

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/naveenspark/nudge/internal/clock"
	"github.com/naveenspark/nudge/pkg/domain"
)

// Renderer presents the store's notifications and owns one dismiss timer per
// auto-dismissing notification. A timer never outlives its notification.
type Renderer struct {
	store *Store
	clock clock.Clock
	log   zerolog.Logger

	mu      sync.Mutex
	timers  map[uuid.UUID]clock.Timer
	armed   map[uuid.UUID]struct{} // ids whose timer was armed while present
	rev     uint64
	unsub   func()
	stopped bool
}

// NewRenderer returns a renderer for store. Call Start to begin managing timers.
func NewRenderer(store *Store, c clock.Clock, log zerolog.Logger) *Renderer {
	return &Renderer{
		store:  store,
		clock:  c,
		log:    log.With().Str("component", "renderer").Logger(),
		timers: make(map[uuid.UUID]clock.Timer),
		armed:  make(map[uuid.UUID]struct{}),
	}
}

// Start subscribes to the store and arms timers for notifications already
// present. Calling Start on a running renderer is a no-op.
func (r *Renderer) Start() {
	r.mu.Lock()
	if r.unsub != nil {
		r.mu.Unlock()
		return
	}
	r.stopped = false
	r.mu.Unlock()

	unsub := r.store.Subscribe(func(ev Event) { r.reconcile(ev.Revision, ev.Snapshot) })

	r.mu.Lock()
	r.unsub = unsub
	r.mu.Unlock()

	rev, snap := r.store.snapshot()
	r.reconcile(rev, snap)
}

// Stop unsubscribes and cancels every pending dismiss timer.
func (r *Renderer) Stop() {
	r.mu.Lock()
	unsub := r.unsub
	r.unsub = nil
	r.stopped = true
	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
	clear(r.armed)
	r.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// Close removes the notification immediately, regardless of its timer.
func (r *Renderer) Close(id uuid.UUID) {
	r.cancel(id)
	r.store.Remove(id)
}

// Activate runs the notification's action. The notification stays in the
// store and keeps its own dismiss schedule.
func (r *Renderer) Activate(id uuid.UUID) bool {
	n, ok := r.store.Get(id)
	if !ok || !n.HasAction() {
		return false
	}
	r.log.Debug().Str("id", id.String()).Str("action", n.Action.Label).Msg("action invoked")
	n.Action.Invoke()
	return true
}

// Pending returns the number of armed dismiss timers.
func (r *Renderer) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Notifications returns what the renderer currently presents.
func (r *Renderer) Notifications() []domain.Notification {
	return r.store.List()
}

func (r *Renderer) reconcile(rev uint64, snap []domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || rev < r.rev {
		return
	}
	r.rev = rev

	present := make(map[uuid.UUID]struct{}, len(snap))
	for _, n := range snap {
		present[n.ID] = struct{}{}
		if !n.AutoDismiss() {
			continue
		}
		if _, done := r.armed[n.ID]; done {
			continue
		}
		r.armed[n.ID] = struct{}{}
		id := n.ID
		r.timers[id] = r.clock.AfterFunc(n.Duration, func() { r.expire(id) })
	}

	for id, t := range r.timers {
		if _, ok := present[id]; !ok {
			t.Stop()
			delete(r.timers, id)
		}
	}
	for id := range r.armed {
		if _, ok := present[id]; !ok {
			delete(r.armed, id)
		}
	}
}

func (r *Renderer) expire(id uuid.UUID) {
	r.mu.Lock()
	_, live := r.timers[id]
	delete(r.timers, id)
	r.mu.Unlock()
	if !live {
		return
	}
	r.log.Debug().Str("id", id.String()).Msg("auto-dismissed")
	r.store.Remove(id)
}

func (r *Renderer) cancel(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.timers[id]; ok {
		t.Stop()
		delete(r.timers, id)
	}
}
