package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/naveenspark/nudge/internal/browser"
	"github.com/naveenspark/nudge/internal/clock"
	"github.com/naveenspark/nudge/internal/config"
	"github.com/naveenspark/nudge/internal/notify"
	"github.com/naveenspark/nudge/internal/storage"
	"github.com/naveenspark/nudge/internal/survey"
)

// session is the wired subsystem for one run of the program.
type session struct {
	kv        storage.KV
	state     *survey.State
	store     *notify.Store
	renderer  *notify.Renderer
	modal     *survey.Modal
	scheduler *survey.Scheduler
}

func openKV(cfg *config.Config) (storage.KV, error) {
	kv, err := storage.Open(storage.Config{
		Backend: cfg.Storage.Backend,
		Path:    cfg.Storage.Path,
		Service: storage.DefaultService,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	return kv, nil
}

func openSession(cfg *config.Config, log zerolog.Logger) (*session, error) {
	kv, err := openKV(cfg)
	if err != nil {
		return nil, err
	}
	c := clock.Real()

	s := &session{kv: kv}
	s.state = survey.NewState(kv, c, log)
	s.store = notify.NewStore(notify.WithClock(c))
	s.renderer = notify.NewRenderer(s.store, c, log)
	s.modal = survey.NewModal(cfg.Survey.URL, s.state, browser.System{}, survey.SystemClipboard, log)
	s.scheduler = survey.NewScheduler(survey.SchedulerConfig{
		Delay: cfg.Survey.Delay,
		Tick:  cfg.Survey.Tick,
		Prompt: survey.Prompt{
			Title:       cfg.Survey.Title,
			Message:     cfg.Survey.Message,
			ActionLabel: cfg.Survey.ActionLabel,
			Duration:    cfg.Survey.PromptDuration,
		},
	}, s.state, s.store, s.modal.Open, c, log)
	return s, nil
}

func (s *session) Close() error {
	return s.kv.Close()
}
