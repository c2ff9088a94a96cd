package survey

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/naveenspark/nudge/internal/clock"
	"github.com/naveenspark/nudge/pkg/domain"
)

// SchedulerState is the scheduler's position in its session lifecycle.
type SchedulerState int

const (
	Idle SchedulerState = iota
	Counting
	Fired
)

func (s SchedulerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Counting:
		return "counting"
	case Fired:
		return "fired"
	}
	return "unknown"
}

// Notifier accepts the prompt notification.
type Notifier interface {
	Add(spec domain.Spec) uuid.UUID
}

// Prompt is the notification pushed when the countdown completes.
type Prompt struct {
	Title       string
	Message     string
	ActionLabel string
	Duration    time.Duration
}

// SchedulerConfig controls the countdown.
type SchedulerConfig struct {
	// Delay is the continuous session time before the prompt fires.
	Delay time.Duration
	// Tick is the countdown resolution.
	Tick   time.Duration
	Prompt Prompt
}

// DefaultSchedulerConfig returns five minutes at one-second resolution with
// a ten-second prompt.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Delay: 5 * time.Minute,
		Tick:  time.Second,
		Prompt: Prompt{
			Title:       "📝 Satisfaction survey",
			Message:     "We'd love to hear what you think of the platform. It only takes a couple of minutes!",
			ActionLabel: "Take survey",
			Duration:    10 * time.Second,
		},
	}
}

// Scheduler counts session time and pushes the survey prompt at most once per
// session, and at most once per calendar day while the survey is incomplete.
//
// Idle -> Counting on Start when eligible; Counting -> Fired when the delay
// elapses; Fired is terminal for the session.
type Scheduler struct {
	cfg      SchedulerConfig
	state    *State
	notifier Notifier
	action   func()
	clock    clock.Clock
	log      zerolog.Logger

	mu        sync.Mutex
	st        SchedulerState
	started   bool
	stopped   bool
	firing    bool
	elapsed   time.Duration
	timer     clock.Timer
	promptID  uuid.UUID
	observers []func(SchedulerState)
}

// NewScheduler returns an Idle scheduler. action runs when the user activates
// the prompt; it typically opens the survey modal.
func NewScheduler(
	cfg SchedulerConfig,
	state *State,
	notifier Notifier,
	action func(),
	c clock.Clock,
	log zerolog.Logger,
) *Scheduler {
	def := DefaultSchedulerConfig()
	if cfg.Tick <= 0 {
		cfg.Tick = def.Tick
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	if cfg.Prompt.Title == "" {
		cfg.Prompt.Title = def.Prompt.Title
	}
	if cfg.Prompt.ActionLabel == "" {
		cfg.Prompt.ActionLabel = def.Prompt.ActionLabel
	}
	return &Scheduler{
		cfg:      cfg,
		state:    state,
		notifier: notifier,
		action:   action,
		clock:    c,
		log:      log.With().Str("component", "survey_scheduler").Logger(),
	}
}

// Observe registers fn to be called after every state change and tick.
func (s *Scheduler) Observe(fn func(SchedulerState)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Start arms the countdown if the record is eligible today. Later calls are
// no-ops; eligibility is not re-checked mid-session.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	if !s.state.IsEligibleToday() {
		s.log.Info().Msg("survey not eligible today, countdown not armed")
		return
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.st = Counting
	s.elapsed = 0
	s.armLocked()
	s.mu.Unlock()

	s.log.Info().Dur("delay", s.cfg.Delay).Msg("survey countdown armed")
	s.emit()
}

// Tick advances the countdown by one tick interval and fires the prompt once
// the delay is reached. Outside Counting it does nothing.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	if s.st != Counting || s.firing {
		s.mu.Unlock()
		return
	}
	s.elapsed += s.cfg.Tick
	if s.elapsed < s.cfg.Delay {
		if s.timer == nil {
			s.armLocked()
		}
		s.mu.Unlock()
		s.emit()
		return
	}

	s.cancelLocked()
	s.firing = true
	s.mu.Unlock()

	s.fire()
	s.emit()
}

// Stop cancels the recurring tick whatever the current state.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.cancelLocked()
	changed := s.st == Counting
	if changed {
		s.st = Idle
	}
	s.mu.Unlock()

	if changed {
		s.log.Debug().Msg("survey countdown cancelled")
		s.emit()
	}
}

// State returns the current scheduler state.
func (s *Scheduler) State() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// Elapsed returns the session time counted so far.
func (s *Scheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Remaining returns the time left before the prompt fires; zero outside
// Counting.
func (s *Scheduler) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st != Counting {
		return 0
	}
	return max(s.cfg.Delay-s.elapsed, 0)
}

// PromptID returns the id of the prompt notification once fired.
func (s *Scheduler) PromptID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promptID
}

func (s *Scheduler) onTimer() {
	s.mu.Lock()
	s.timer = nil
	s.mu.Unlock()
	s.Tick()
}

func (s *Scheduler) armLocked() {
	if s.stopped {
		return
	}
	s.timer = s.clock.AfterFunc(s.cfg.Tick, s.onTimer)
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// fire runs the Counting -> Fired transition. The record is re-checked here,
// not on every tick. Storage and the notifier are called without s.mu held;
// store observers may call back into the scheduler.
func (s *Scheduler) fire() {
	eligible := s.state.IsEligibleToday()

	s.mu.Lock()
	s.firing = false
	if s.st != Counting {
		// Stopped while the record was read.
		s.mu.Unlock()
		return
	}
	if !eligible {
		s.st = Idle
		s.mu.Unlock()
		s.log.Info().Msg("survey became ineligible during countdown")
		return
	}
	s.st = Fired
	elapsed := s.elapsed
	s.mu.Unlock()

	p := s.cfg.Prompt
	spec := domain.Spec{
		Kind:     domain.KindInfo,
		Title:    p.Title,
		Message:  p.Message,
		Duration: p.Duration,
	}
	if s.action != nil {
		spec.Action = &domain.Action{Label: p.ActionLabel, Invoke: s.action}
	}
	id := s.notifier.Add(spec)

	s.mu.Lock()
	s.promptID = id
	s.mu.Unlock()

	if err := s.state.Write(domain.ShownOn(s.state.Today())); err != nil {
		// The prompt is already up; only the next session's gating degrades.
		s.log.Warn().Err(err).Msg("recording prompt failed")
	}
	s.log.Info().Str("id", id.String()).Dur("elapsed", elapsed).Msg("survey prompt fired")
}

func (s *Scheduler) emit() {
	s.mu.Lock()
	st := s.st
	obs := make([]func(SchedulerState), len(s.observers))
	copy(obs, s.observers)
	s.mu.Unlock()

	for _, fn := range obs {
		fn(st)
	}
}
