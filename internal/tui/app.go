package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/naveenspark/nudge/internal/browser"
	"github.com/naveenspark/nudge/internal/notify"
	"github.com/naveenspark/nudge/internal/survey"
	"github.com/naveenspark/nudge/pkg/domain"
)

const (
	// copiedFeedback is how long the modal shows "Copied!".
	copiedFeedback = 2 * time.Second

	// toastColumn is the width reserved for the toast stack on wide terminals.
	toastColumn = 50
)

// Options wires the App to the subsystem. Store, Renderer, Scheduler and
// Modal are required.
type Options struct {
	Store     *notify.Store
	Renderer  *notify.Renderer
	Scheduler *survey.Scheduler
	Modal     *survey.Modal

	// Opener opens help links. Defaults to browser.System.
	Opener browser.Opener

	// CompleteDelay is the pause between a successful launch and recording
	// the survey as completed.
	CompleteDelay time.Duration

	// DefaultDuration is the auto-dismiss time of notifications raised by
	// the TUI itself.
	DefaultDuration time.Duration

	Version string
	Log     zerolog.Logger
}

// surveyLaunchMsg carries the outcome of opening the survey URL.
type surveyLaunchMsg struct {
	result survey.LaunchResult
}

// surveyCopyMsg carries the outcome of the explicit copy-link key.
type surveyCopyMsg struct {
	err error
}

// surveyConfirmMsg fires CompleteDelay after a successful launch.
type surveyConfirmMsg struct{}

// copiedResetMsg clears the "Copied!" feedback.
type copiedResetMsg struct{}

// modalUI is the transient state of the survey dialog.
type modalUI struct {
	launching bool // launch or confirmation in flight
	status    string
	isErr     bool
	copied    bool
}

// App is the root Bubbletea model.
type App struct {
	store     *notify.Store
	renderer  *notify.Renderer
	scheduler *survey.Scheduler
	modal     *survey.Modal
	opener    browser.Opener
	bridge    *bridge
	unsub     func()
	keys      keyMap
	log       zerolog.Logger

	completeDelay   time.Duration
	defaultDuration time.Duration
	version         string

	focused    uuid.UUID
	survey     modalUI
	helpOpen   bool
	helpCursor int
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates the TUI and subscribes it to the store, the scheduler and
// the modal. Call Start before running the program.
func NewApp(opts Options) App {
	if opts.Opener == nil {
		opts.Opener = browser.System{}
	}
	if opts.DefaultDuration <= 0 {
		opts.DefaultDuration = 5 * time.Second
	}
	a := App{
		store:           opts.Store,
		renderer:        opts.Renderer,
		scheduler:       opts.Scheduler,
		modal:           opts.Modal,
		opener:          opts.Opener,
		bridge:          newBridge(),
		keys:            defaultKeyMap(),
		log:             opts.Log.With().Str("component", "tui").Logger(),
		completeDelay:   opts.CompleteDelay,
		defaultDuration: opts.DefaultDuration,
		version:         opts.Version,
		width:           80,
		height:          24,
	}

	b := a.bridge
	a.unsub = a.store.Subscribe(func(ev notify.Event) {
		b.send(notificationsChangedMsg{revision: ev.Revision})
	})
	a.scheduler.Observe(func(survey.SchedulerState) {
		b.send(schedulerChangedMsg{})
	})
	a.modal.Observe(func(visible bool) {
		b.send(modalChangedMsg{visible: visible})
	})
	return a
}

// Start begins dismiss timers and the survey countdown.
func (a App) Start() {
	a.renderer.Start()
	a.scheduler.Start()
}

// Shutdown cancels every timer and releases the bridge. Safe to call twice.
func (a App) Shutdown() {
	a.scheduler.Stop()
	a.renderer.Stop()
	a.unsub()
	a.bridge.close()
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.bridge.wait(), checkVersion(a.version))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case notificationsChangedMsg:
		if a.focused != uuid.Nil {
			if _, ok := a.store.Get(a.focused); !ok {
				a.focused = uuid.Nil
			}
		}
		return a, a.bridge.wait()

	case schedulerChangedMsg:
		return a, a.bridge.wait()

	case modalChangedMsg:
		if !msg.visible {
			a.survey = modalUI{}
		}
		return a, a.bridge.wait()

	case versionCheckMsg:
		if msg.hasUpdate {
			opener := a.opener
			a.store.Notify(domain.KindInfo, "Update available",
				fmt.Sprintf("nudge %s is available (you have %s)", msg.latestVersion, a.version),
				notify.WithDuration(3*a.defaultDuration),
				notify.WithAction("Release notes", func() {
					opener.Open(releasePageURL) //nolint:errcheck // best-effort browser open
				}),
			)
		}
		return a, nil

	case surveyLaunchMsg:
		a.survey.status = msg.result.Message()
		if msg.result.Outcome == survey.LaunchOpened {
			a.survey.isErr = false
			return a, tea.Tick(a.completeDelay, func(time.Time) tea.Msg {
				return surveyConfirmMsg{}
			})
		}
		a.survey.launching = false
		a.survey.isErr = true
		return a, nil

	case surveyConfirmMsg:
		if err := a.modal.Complete(); err != nil {
			a.log.Warn().Err(err).Msg("survey completion not saved")
		}
		a.survey = modalUI{}
		a.store.Notify(domain.KindSuccess, "Thanks for your feedback",
			"Your answers help us improve.",
			notify.WithDuration(a.defaultDuration))
		return a, nil

	case surveyCopyMsg:
		if msg.err != nil {
			a.survey.isErr = true
			a.survey.status = fmt.Sprintf("Please copy this link manually: %s", a.modal.URL())
			return a, nil
		}
		a.survey.copied = true
		return a, tea.Tick(copiedFeedback, func(time.Time) tea.Msg {
			return copiedResetMsg{}
		})

	case copiedResetMsg:
		a.survey.copied = false
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay captures all keys when open
	if a.helpOpen {
		switch msg.String() {
		case "h", "?", "esc":
			a.helpOpen = false
		case "q", "ctrl+c":
			return a, tea.Quit
		case "j", "down":
			if a.helpCursor < len(helpItems)-1 {
				a.helpCursor++
			}
		case "k", "up":
			if a.helpCursor > 0 {
				a.helpCursor--
			}
		case "enter":
			item := helpItems[a.helpCursor]
			if item.url != "" {
				a.opener.Open(item.url) //nolint:errcheck // best-effort browser open
			}
		}
		return a, nil
	}

	// Survey modal captures all keys when visible
	if a.modal.Visible() {
		return a.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.helpOpen = true
		a.helpCursor = 0
	case key.Matches(msg, a.keys.Next):
		a.focused = a.cycleFocus(1)
	case key.Matches(msg, a.keys.Prev):
		a.focused = a.cycleFocus(-1)
	case key.Matches(msg, a.keys.Dismiss):
		if a.focused != uuid.Nil {
			a.renderer.Close(a.focused)
			a.focused = uuid.Nil
		}
	case key.Matches(msg, a.keys.Activate):
		if a.focused != uuid.Nil {
			a.renderer.Activate(a.focused)
		}
	case key.Matches(msg, a.keys.Survey):
		a.modal.Open()
	case key.Matches(msg, a.keys.Demo):
		a.pushDemo()
	}
	return a, nil
}

func (a App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return a, tea.Quit
	case key.Matches(msg, a.keys.Launch):
		if a.survey.launching {
			return a, nil
		}
		a.survey.launching = true
		a.survey.status = ""
		a.survey.isErr = false
		m := a.modal
		return a, func() tea.Msg {
			return surveyLaunchMsg{result: m.Launch()}
		}
	case key.Matches(msg, a.keys.Copy):
		m := a.modal
		return a, func() tea.Msg {
			return surveyCopyMsg{err: m.CopyLink()}
		}
	case key.Matches(msg, a.keys.Later):
		a.modal.Close()
		a.survey = modalUI{}
	}
	return a, nil
}

// cycleFocus moves focus step cards through the stack, wrapping around.
// With nothing focused it starts at the oldest (step > 0) or newest card.
func (a App) cycleFocus(step int) uuid.UUID {
	items := a.store.List()
	if len(items) == 0 {
		return uuid.Nil
	}
	idx := -1
	for i, n := range items {
		if n.ID == a.focused {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = len(items) - 1
	default:
		idx = (idx + step + len(items)) % len(items)
	}
	return items[idx].ID
}

// pushDemo raises one notification of each kind.
func (a App) pushDemo() {
	d := a.defaultDuration
	store := a.store
	a.store.Notify(domain.KindSuccess, "Contract saved", "Changes to the draft were stored.",
		notify.WithDuration(d))
	a.store.Notify(domain.KindWarning, "Missing incoterm", "Pick an incoterm before sending.",
		notify.WithDuration(2*d))
	a.store.Notify(domain.KindError, "Export failed", "The document service did not answer.",
		notify.WithDuration(0),
		notify.WithAction("Retry", func() {
			store.Notify(domain.KindInfo, "Retrying export", "", notify.WithDuration(d))
		}))
	a.store.Notify(domain.KindInfo, "Sync complete", "All records are up to date.",
		notify.WithDuration(d))
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)
	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo + "\n"

	var body, help string
	switch {
	case a.helpOpen:
		body = helpView(a.helpCursor)
		help = helpFor(
			key.NewBinding(key.WithHelp("j/k", "nav")),
			key.NewBinding(key.WithHelp("enter", "open")),
			key.NewBinding(key.WithHelp("esc", "close")),
		)
	case a.modal.Visible():
		body = a.surveyView()
		help = helpFor(a.keys.Launch, a.keys.Copy, a.keys.Later)
	default:
		body = a.homeView()
		help = helpFor(a.keys.Next, a.keys.Dismiss, a.keys.Activate, a.keys.Survey,
			a.keys.Demo, a.keys.Help, a.keys.Quit)
	}

	toasts := a.renderer.View(toastColumn, a.focused)
	if toasts != "" {
		if a.width >= 2*toastColumn {
			left := lipgloss.NewStyle().Width(a.width - toastColumn - 1).Render(body)
			body = lipgloss.JoinHorizontal(lipgloss.Top, left, " ", toasts)
		} else {
			body = toasts + "\n\n" + body
		}
	}

	// Chrome budget: header(2) + status(1) + help(1)
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, body, a.statusLine(), help)
}

func (a App) homeView() string {
	var sb strings.Builder
	sb.WriteString("  " + selectedStyle.Render("Home") + "\n\n")
	n := a.store.Len()
	switch n {
	case 0:
		sb.WriteString("  " + dimStyle.Render("No notifications. Press d for a demo.") + "\n")
	case 1:
		sb.WriteString("  " + normalStyle.Render("1 notification") + "\n")
	default:
		sb.WriteString("  " + normalStyle.Render(fmt.Sprintf("%d notifications", n)) + "\n")
	}
	if a.focused != uuid.Nil {
		if item, ok := a.store.Get(a.focused); ok {
			sb.WriteString("  " + metaStyle.Render("focused: ") + dimStyle.Render(truncStr(item.Title, 40)) + "\n")
		}
	}
	return sb.String()
}

// statusLine reports the survey countdown in the footer.
func (a App) statusLine() string {
	var s string
	switch a.scheduler.State() {
	case survey.Counting:
		s = metaStyle.Render("survey in") + " " + accentStyle.Render(formatCountdown(a.scheduler.Remaining()))
	case survey.Fired:
		s = metaStyle.Render("survey prompt shown")
	default:
		s = metaStyle.Render("no survey scheduled")
	}
	return " " + s + "  " + helpEntry("s", "take survey")
}
