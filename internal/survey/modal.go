package survey

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/naveenspark/nudge/internal/browser"
	"github.com/naveenspark/nudge/pkg/domain"
)

// Clipboard receives the destination reference when it cannot be opened.
type Clipboard interface {
	WriteAll(text string) error
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteAll(text string) error { return f(text) }

// SystemClipboard writes to the OS clipboard.
var SystemClipboard Clipboard = ClipboardFunc(clipboard.WriteAll)

// LaunchOutcome classifies the result of Launch.
type LaunchOutcome int

const (
	// LaunchOpened means the destination was handed to the browser.
	LaunchOpened LaunchOutcome = iota
	// LaunchCopied means opening failed and the URL is on the clipboard.
	LaunchCopied
	// LaunchManual means opening and copying both failed.
	LaunchManual
)

// LaunchResult reports what Launch did. Err is the open failure, if any.
type LaunchResult struct {
	Outcome LaunchOutcome
	URL     string
	Err     error
	CopyErr error
}

// Message is the text shown to the user for r.
func (r LaunchResult) Message() string {
	switch r.Outcome {
	case LaunchOpened:
		return "Survey opened in your browser"
	case LaunchCopied:
		return "Couldn't open the survey automatically. The link has been copied to your clipboard."
	default:
		return fmt.Sprintf("Please copy this link manually: %s", r.URL)
	}
}

// Modal is the survey dialog. Showing and hiding never touch the record;
// only Complete does.
type Modal struct {
	url    string
	state  *State
	opener browser.Opener
	clip   Clipboard
	log    zerolog.Logger

	mu        sync.Mutex
	visible   bool
	observers []func(visible bool)
}

// NewModal returns a hidden modal for the survey at url.
func NewModal(url string, state *State, opener browser.Opener, clip Clipboard, log zerolog.Logger) *Modal {
	return &Modal{
		url:    url,
		state:  state,
		opener: opener,
		clip:   clip,
		log:    log.With().Str("component", "survey_modal").Logger(),
	}
}

// URL returns the configured survey destination.
func (m *Modal) URL() string { return m.url }

// Observe registers fn to be called whenever visibility changes.
func (m *Modal) Observe(fn func(visible bool)) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

// Open shows the modal. It is the manual entry point and bypasses all
// eligibility gating.
func (m *Modal) Open() { m.setVisible(true) }

// Close hides the modal without recording anything ("remind me later").
func (m *Modal) Close() { m.setVisible(false) }

// Visible reports whether the modal is showing.
func (m *Modal) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Complete hides the modal and records the survey as completed, silencing
// the scheduler permanently. The modal is hidden even if the write fails.
func (m *Modal) Complete() error {
	m.setVisible(false)
	if err := m.state.Write(domain.CompletedOn(m.state.Today())); err != nil {
		return fmt.Errorf("marking survey completed: %w", err)
	}
	m.log.Info().Msg("survey completed")
	return nil
}

// Launch opens the survey destination. On failure the URL is copied to the
// clipboard as a fallback. Launch never records completion.
func (m *Modal) Launch() LaunchResult {
	res := LaunchResult{Outcome: LaunchOpened, URL: m.url}
	err := m.opener.Open(m.url)
	if err == nil {
		return res
	}

	res.Err = err
	m.log.Warn().Err(err).Msg("opening survey failed")
	if m.url == "" {
		res.Outcome = LaunchManual
		return res
	}
	if cerr := m.clip.WriteAll(m.url); cerr != nil {
		m.log.Warn().Err(cerr).Msg("copying survey link failed")
		res.Outcome = LaunchManual
		res.CopyErr = cerr
		return res
	}
	res.Outcome = LaunchCopied
	return res
}

// CopyLink copies the survey URL to the clipboard.
func (m *Modal) CopyLink() error {
	if m.url == "" {
		return browser.ErrNoURL
	}
	if err := m.clip.WriteAll(m.url); err != nil {
		return fmt.Errorf("copying survey link: %w", err)
	}
	return nil
}

func (m *Modal) setVisible(v bool) {
	m.mu.Lock()
	changed := m.visible != v
	m.visible = v
	obs := make([]func(bool), len(m.observers))
	copy(obs, m.observers)
	m.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range obs {
		fn(v)
	}
}
