package survey

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/naveenspark/nudge/internal/clock"
	"github.com/naveenspark/nudge/internal/notify"
	"github.com/naveenspark/nudge/pkg/domain"
)

type schedulerHarness struct {
	sched  *Scheduler
	state  *State
	store  *notify.Store
	clock  *clock.Fake
	opened int
}

func newSchedulerHarness(t *testing.T, delay time.Duration) *schedulerHarness {
	t.Helper()
	state, _, c := newTestState(t)
	h := &schedulerHarness{
		state: state,
		store: notify.NewStore(notify.WithClock(c)),
		clock: c,
	}
	cfg := DefaultSchedulerConfig()
	cfg.Delay = delay
	cfg.Tick = time.Second
	h.sched = NewScheduler(cfg, state, h.store, func() { h.opened++ }, c, zerolog.Nop())
	t.Cleanup(h.sched.Stop)
	return h
}

func (h *schedulerHarness) tick(n int) {
	for i := 0; i < n; i++ {
		h.clock.Advance(time.Second)
	}
}

func TestSchedulerFiresOnceAfterDelay(t *testing.T) {
	h := newSchedulerHarness(t, 5*time.Second)
	h.sched.Start()
	if got := h.sched.State(); got != Counting {
		t.Fatalf("expected Counting after Start, got %s", got)
	}

	h.tick(4)
	if h.store.Len() != 0 {
		t.Fatalf("prompt fired early after 4 ticks")
	}
	if got := h.sched.Remaining(); got != time.Second {
		t.Errorf("Remaining after 4 ticks = %v, want 1s", got)
	}

	h.tick(1)
	if h.store.Len() != 1 {
		t.Fatalf("expected exactly one prompt after 5 ticks, got %d", h.store.Len())
	}
	if got := h.sched.State(); got != Fired {
		t.Errorf("expected Fired, got %s", got)
	}
	rec := h.state.Read()
	if !rec.HasShownNotification || rec.LastShownDate != testToday {
		t.Errorf("record not updated on fire: %+v", rec)
	}

	h.tick(1)
	if h.store.Len() != 1 {
		t.Errorf("6th tick produced another notification, len=%d", h.store.Len())
	}
	if h.clock.Pending() != 0 {
		t.Errorf("tick still armed after firing: %d pending", h.clock.Pending())
	}
}

func TestSchedulerPromptShape(t *testing.T) {
	h := newSchedulerHarness(t, 2*time.Second)
	h.sched.Start()
	h.tick(2)

	n, ok := h.store.Get(h.sched.PromptID())
	if !ok {
		t.Fatal("prompt id not found in store")
	}
	if n.Kind != domain.KindInfo {
		t.Errorf("prompt kind = %q, want info", n.Kind)
	}
	if n.Duration != 10*time.Second {
		t.Errorf("prompt duration = %v, want 10s", n.Duration)
	}
	if !n.HasAction() || n.Action.Label != "Take survey" {
		t.Fatalf("prompt action missing: %+v", n.Action)
	}
	n.Action.Invoke()
	if h.opened != 1 {
		t.Errorf("prompt action did not open the modal")
	}
	if _, ok := h.store.Get(n.ID); !ok {
		t.Error("invoking the action removed the prompt")
	}
}

func TestSchedulerIdleWhenShownToday(t *testing.T) {
	h := newSchedulerHarness(t, 5*time.Second)
	mustWrite(t, h.state, domain.ShownOn(testToday))

	h.sched.Start()
	if got := h.sched.State(); got != Idle {
		t.Fatalf("expected Idle when already shown today, got %s", got)
	}
	if h.clock.Pending() != 0 {
		t.Errorf("countdown armed for an ineligible session")
	}

	h.clock.Advance(time.Hour)
	if h.store.Len() != 0 {
		t.Errorf("ineligible session produced %d notifications", h.store.Len())
	}
	if got := h.sched.State(); got != Idle {
		t.Errorf("expected Idle for whole session, got %s", got)
	}
}

func TestSchedulerIdleWhenCompleted(t *testing.T) {
	h := newSchedulerHarness(t, time.Second)
	mustWrite(t, h.state, domain.CompletedOn("2020-01-01"))

	h.sched.Start()
	h.tick(10)
	if h.store.Len() != 0 || h.sched.State() != Idle {
		t.Errorf("completed survey still scheduled: len=%d state=%s", h.store.Len(), h.sched.State())
	}
}

func TestSchedulerNewSessionSameDayAfterPreviousDay(t *testing.T) {
	h := newSchedulerHarness(t, 3*time.Second)
	mustWrite(t, h.state, domain.ShownOn("2026-10-13"))

	h.sched.Start()
	h.tick(3)
	if h.store.Len() != 1 {
		t.Fatalf("expected prompt on a new day, got %d", h.store.Len())
	}

	// A second session the same day stays Idle.
	next := NewScheduler(h.sched.cfg, h.state, h.store, nil, h.clock, zerolog.Nop())
	next.Start()
	defer next.Stop()
	h.tick(10)
	if next.State() != Idle || h.store.Len() != 1 {
		t.Errorf("second same-day session fired: state=%s len=%d", next.State(), h.store.Len())
	}
}

func TestSchedulerCountdownRestartsEachSession(t *testing.T) {
	h := newSchedulerHarness(t, 5*time.Second)
	h.sched.Start()
	h.tick(4)
	h.sched.Stop()

	next := NewScheduler(h.sched.cfg, h.state, h.store, nil, h.clock, zerolog.Nop())
	next.Start()
	defer next.Stop()
	if next.Elapsed() != 0 {
		t.Fatalf("new session inherited elapsed time %v", next.Elapsed())
	}
	h.tick(4)
	if h.store.Len() != 0 {
		t.Fatal("new session fired before its own full delay")
	}
	h.tick(1)
	if h.store.Len() != 1 {
		t.Errorf("expected prompt after a full delay in the new session, got %d", h.store.Len())
	}
}

func TestSchedulerStopCancelsTick(t *testing.T) {
	h := newSchedulerHarness(t, 5*time.Second)
	h.sched.Start()
	h.tick(2)

	h.sched.Stop()
	if h.clock.Pending() != 0 {
		t.Errorf("tick still pending after Stop: %d", h.clock.Pending())
	}
	h.tick(10)
	if h.store.Len() != 0 {
		t.Errorf("stopped scheduler fired")
	}
	if got := h.sched.State(); got != Idle {
		t.Errorf("expected Idle after teardown, got %s", got)
	}

	h.sched.Start()
	if h.clock.Pending() != 0 {
		t.Error("Start after Stop re-armed the countdown")
	}
}

func TestSchedulerStartTwiceIsNoop(t *testing.T) {
	h := newSchedulerHarness(t, 5*time.Second)
	h.sched.Start()
	h.sched.Start()
	if h.clock.Pending() != 1 {
		t.Errorf("expected a single armed tick, got %d", h.clock.Pending())
	}
}

func TestSchedulerManualModalDoesNotDisturbCountdown(t *testing.T) {
	h := newSchedulerHarness(t, 5*time.Second)
	modal := NewModal("https://forms.example.com/s", h.state, nil, nil, zerolog.Nop())
	h.sched.Start()
	h.tick(2)

	before := h.state.Read()
	modal.Open()
	if !modal.Visible() {
		t.Fatal("manual open did not show the modal")
	}
	if h.sched.State() != Counting || h.sched.Elapsed() != 2*time.Second {
		t.Errorf("countdown disturbed: state=%s elapsed=%v", h.sched.State(), h.sched.Elapsed())
	}
	if after := h.state.Read(); after != before {
		t.Errorf("opening the modal wrote state: %+v", after)
	}

	if err := modal.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	h.tick(5)
	if h.store.Len() != 0 {
		t.Error("prompt fired after the survey was completed")
	}
	if h.sched.State() != Idle {
		t.Errorf("expected Idle after terminal ineligible check, got %s", h.sched.State())
	}
}

func TestSchedulerWriteFailureStillFires(t *testing.T) {
	state, kv, c := newTestState(t)
	kv.FailSet = errors.New("storage unavailable")
	store := notify.NewStore(notify.WithClock(c))
	cfg := SchedulerConfig{Delay: 2 * time.Second, Tick: time.Second}
	s := NewScheduler(cfg, state, store, nil, c, zerolog.Nop())
	s.Start()
	defer s.Stop()

	c.Advance(2 * time.Second)
	if store.Len() != 1 || s.State() != Fired {
		t.Errorf("write failure blocked the in-session prompt: len=%d state=%s", store.Len(), s.State())
	}
	if store.List()[0].HasAction() {
		t.Error("nil action callback should produce a prompt without action")
	}
}

func TestSchedulerManualTickAndObserve(t *testing.T) {
	h := newSchedulerHarness(t, 3*time.Second)
	var seen []SchedulerState
	h.sched.Observe(func(st SchedulerState) { seen = append(seen, st) })

	h.sched.Start()
	for i := 0; i < 3; i++ {
		h.sched.Tick()
	}
	if h.sched.State() != Fired || h.store.Len() != 1 {
		t.Fatalf("manual ticks did not fire: state=%s len=%d", h.sched.State(), h.store.Len())
	}
	if len(seen) == 0 || seen[0] != Counting || seen[len(seen)-1] != Fired {
		t.Errorf("unexpected observed states %v", seen)
	}
	h.sched.Tick()
	if h.store.Len() != 1 {
		t.Error("tick after Fired added a notification")
	}
}

func TestSchedulerStateString(t *testing.T) {
	for st, want := range map[SchedulerState]string{Idle: "idle", Counting: "counting", Fired: "fired", 9: "unknown"} {
		if got := st.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", st, got, want)
		}
	}
}

func TestSchedulerStoreObserverMayCallBack(t *testing.T) {
	h := newSchedulerHarness(t, time.Second)

	var seen []SchedulerState
	h.store.Subscribe(func(notify.Event) {
		seen = append(seen, h.sched.State())
		_ = h.sched.Remaining()
		_ = h.sched.PromptID()
		h.sched.Tick() // re-entrant tick must not fire again
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.sched.Start()
		h.clock.Advance(time.Second)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("store observer calling back into the scheduler blocked the fire")
	}

	if h.store.Len() != 1 {
		t.Fatalf("expected exactly one prompt, got %d", h.store.Len())
	}
	if len(seen) != 1 || seen[0] != Fired {
		t.Errorf("observer saw states %v, want [Fired]", seen)
	}
	if h.sched.PromptID() != h.store.List()[0].ID {
		t.Error("PromptID does not match the added prompt")
	}
}
