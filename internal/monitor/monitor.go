// Package monitor keeps a logged-in session fresh while the TUI runs.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kraigochieng/4th-year-project/internal/auth"
	"github.com/kraigochieng/4th-year-project/internal/logger"
	"github.com/kraigochieng/4th-year-project/internal/ui/messages"
)

// Session is the part of the auth store the monitor drives.
type Session interface {
	EnsureFresh(ctx context.Context) error
	LoggedIn() bool
}

// Sender delivers messages to the running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Monitor periodically refreshes the access token before it expires.
type Monitor struct {
	session  Session
	interval time.Duration
	timeout  time.Duration

	mu      sync.Mutex
	program Sender
	stopCh  chan struct{}
	running bool
}

// New creates a new background monitor.
func New(session Session, interval, timeout time.Duration) *Monitor {
	return &Monitor{
		session:  session,
		interval: interval,
		timeout:  timeout,
	}
}

// Start begins the background loop. Calling Start while running is a no-op.
func (m *Monitor) Start(program Sender) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.program = program
	m.stopCh = make(chan struct{})
	m.running = true
	go m.loop(m.stopCh)
}

// Stop halts the background loop.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	close(m.stopCh)
	m.running = false
}

// Running reports whether the loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Monitor) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.Tick()
		}
	}
}

// Tick runs one freshness check and reports it to the program.
func (m *Monitor) Tick() {
	if !m.session.LoggedIn() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	err := m.session.EnsureFresh(ctx)
	if err != nil && !errors.Is(err, auth.ErrNotLoggedIn) {
		logger.Warn("keepalive failed", zap.Error(err))
	}

	m.mu.Lock()
	program := m.program
	m.mu.Unlock()
	if program != nil {
		program.Send(messages.KeepaliveMsg{LoggedIn: m.session.LoggedIn(), Err: err})
	}
}
