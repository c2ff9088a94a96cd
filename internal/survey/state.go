// Package survey schedules the once-per-day survey prompt and runs the survey
// modal flow on top of a durable eligibility record.
package survey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/naveenspark/nudge/internal/clock"
	"github.com/naveenspark/nudge/internal/storage"
	"github.com/naveenspark/nudge/pkg/domain"
)

// StatusKey is the single storage key holding the record.
const StatusKey = "survey_status"

const storageTimeout = 2 * time.Second

// State is the only access path to the durable survey record.
type State struct {
	kv    storage.KV
	clock clock.Clock
	log   zerolog.Logger
}

// NewState returns a State reading and writing StatusKey in kv.
func NewState(kv storage.KV, c clock.Clock, log zerolog.Logger) *State {
	return &State{
		kv:    kv,
		clock: c,
		log:   log.With().Str("component", "survey_state").Logger(),
	}
}

// Today returns the current calendar-day identifier.
func (s *State) Today() string {
	return domain.DayOf(s.clock.Now())
}

// Read loads the record. A missing or unreadable record yields the default.
func (s *State) Read() domain.SurveyStatus {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	data, err := s.kv.Get(ctx, StatusKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn().Err(err).Msg("reading survey status, using defaults")
		}
		return domain.SurveyStatus{}
	}

	var status domain.SurveyStatus
	if err := json.Unmarshal(data, &status); err != nil {
		s.log.Warn().Err(err).Msg("corrupt survey status, using defaults")
		return domain.SurveyStatus{}
	}
	return status
}

// Write merges p into the current record and persists it.
func (s *State) Write(p domain.SurveyPatch) error {
	updated := p.Apply(s.Read())

	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("encoding survey status: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := s.kv.Set(ctx, StatusKey, data); err != nil {
		s.log.Error().Err(err).Msg("saving survey status")
		return fmt.Errorf("saving survey status: %w", err)
	}
	s.log.Debug().
		Bool("shown", updated.HasShownNotification).
		Bool("completed", updated.HasCompletedSurvey).
		Str("last_shown", updated.LastShownDate).
		Msg("survey status saved")
	return nil
}

// IsEligibleToday reports whether the daily prompt may fire now.
func (s *State) IsEligibleToday() bool {
	return s.Read().EligibleOn(s.Today())
}

// Reset deletes the record so the next read returns defaults.
func (s *State) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := s.kv.Delete(ctx, StatusKey); err != nil {
		return fmt.Errorf("resetting survey status: %w", err)
	}
	return nil
}
