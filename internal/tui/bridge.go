package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// notificationsChangedMsg is sent after every store add/remove.
type notificationsChangedMsg struct {
	revision uint64
}

// schedulerChangedMsg is sent on every scheduler tick or transition.
type schedulerChangedMsg struct{}

// modalChangedMsg is sent when the survey modal is shown or hidden.
type modalChangedMsg struct {
	visible bool
}

// bridge carries events raised on timer goroutines into the Bubble Tea
// runtime. Sends never block; dropped messages only delay a redraw.
type bridge struct {
	ch   chan tea.Msg
	done chan struct{}
	once sync.Once
}

func newBridge() *bridge {
	return &bridge{
		ch:   make(chan tea.Msg, 64),
		done: make(chan struct{}),
	}
}

func (b *bridge) send(msg tea.Msg) {
	select {
	case <-b.done:
	case b.ch <- msg:
	default:
	}
}

// wait returns a command that blocks until the next bridged message.
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.ch:
			return msg
		case <-b.done:
			return nil
		}
	}
}

func (b *bridge) close() {
	b.once.Do(func() { close(b.done) })
}
