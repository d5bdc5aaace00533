package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "expires in 45s"},
		{4*time.Minute + 10*time.Second, "expires in 4m"},
		{3 * time.Hour, "expires in 3h"},
		{50 * time.Hour, "expires in 2d"},
		{-2 * time.Hour, "expired 2h ago"},
		{0, "expires in 0s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Remaining(tt.d), tt.d.String())
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "Incorrect\nusername or\npassword", Wrap("Incorrect username or password", 11))
	assert.Equal(t, "a b\n\nc", Wrap("a b\n\nc", 10))
	assert.Equal(t, "unchanged", Wrap("unchanged", 0))
}
