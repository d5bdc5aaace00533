package signup

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraigochieng/4th-year-project/internal/api"
	"github.com/kraigochieng/4th-year-project/internal/ui/messages"
)

type fakeRegistrar struct {
	got api.SignupRequest
	err error
}

func (f *fakeRegistrar) Signup(_ context.Context, req api.SignupRequest) (json.RawMessage, error) {
	f.got = req
	return json.RawMessage(`{}`), f.err
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     api.SignupRequest
		wantErr string
	}{
		{"ok", api.SignupRequest{Username: "alice", Password: "12345678"}, ""},
		{"blank username", api.SignupRequest{Username: "  ", Password: "12345678"}, "username is required"},
		{"short password", api.SignupRequest{Username: "alice", Password: "1234567"}, "at least 8 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSubmit(t *testing.T) {
	reg := &fakeRegistrar{}
	m := New(reg)
	m.fields.username = " bob "
	m.fields.password = "long-enough"
	m.fields.firstName = "Bob"

	m, cmd := m.submit()
	require.NotNil(t, cmd)

	msg := cmd().(messages.SignupResultMsg)
	assert.NoError(t, msg.Err)
	assert.Equal(t, "bob", msg.Username)
	assert.Equal(t, api.SignupRequest{Username: "bob", Password: "long-enough", FirstName: "Bob"}, reg.got)
	assert.Contains(t, m.View(), "Creating account")
}

func TestSubmit_InvalidStaysOnForm(t *testing.T) {
	reg := &fakeRegistrar{}
	m := New(reg)
	m.fields.username = "bob"
	m.fields.password = "short"

	m, _ = m.submit()
	assert.Contains(t, m.Err(), "at least 8 characters")
	assert.Empty(t, reg.got.Username, "nothing sent")
}

func TestSignupResult_Error(t *testing.T) {
	m := New(&fakeRegistrar{})
	m.fields.password = "long-enough"
	m.submitting = true

	m, _ = m.Update(messages.SignupResultMsg{Err: &api.Error{Kind: api.KindServer, Status: 400, Detail: "Username already registered"}})
	assert.Contains(t, m.Err(), "Username already registered")
	assert.Empty(t, m.fields.password, "password is cleared after a failure")
}
