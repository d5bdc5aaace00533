package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraigochieng/4th-year-project/internal/ui/messages"
)

type fakeSession struct {
	mu       sync.Mutex
	loggedIn bool
	err      error
	calls    int
	logout   bool
}

func (f *fakeSession) EnsureFresh(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.logout {
		f.loggedIn = false
	}
	return f.err
}

func (f *fakeSession) LoggedIn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loggedIn
}

func (f *fakeSession) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type chanSender chan tea.Msg

func (c chanSender) Send(msg tea.Msg) { c <- msg }

func TestTick_ReportsSuccess(t *testing.T) {
	sess := &fakeSession{loggedIn: true}
	out := make(chanSender, 1)
	m := New(sess, time.Hour, time.Second)
	m.program = out

	m.Tick()

	msg := (<-out).(messages.KeepaliveMsg)
	assert.True(t, msg.LoggedIn)
	assert.NoError(t, msg.Err)
	assert.Equal(t, 1, sess.Calls())
}

func TestTick_ReportsLogout(t *testing.T) {
	rejected := errors.New("rejected")
	sess := &fakeSession{loggedIn: true, logout: true, err: rejected}
	out := make(chanSender, 1)
	m := New(sess, time.Hour, time.Second)
	m.program = out

	m.Tick()

	msg := (<-out).(messages.KeepaliveMsg)
	assert.False(t, msg.LoggedIn)
	assert.ErrorIs(t, msg.Err, rejected)
}

func TestTick_SkipsWhenLoggedOut(t *testing.T) {
	sess := &fakeSession{}
	out := make(chanSender, 1)
	m := New(sess, time.Hour, time.Second)
	m.program = out

	m.Tick()

	assert.Zero(t, sess.Calls())
	assert.Empty(t, out)
}

func TestStartStop(t *testing.T) {
	sess := &fakeSession{loggedIn: true}
	out := make(chanSender, 16)
	m := New(sess, 5*time.Millisecond, time.Second)

	m.Start(out)
	m.Start(out)
	assert.True(t, m.Running())

	select {
	case msg := <-out:
		require.IsType(t, messages.KeepaliveMsg{}, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no keepalive tick")
	}

	m.Stop()
	m.Stop()
	assert.False(t, m.Running())
}
