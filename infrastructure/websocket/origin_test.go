package websocket

import (
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOriginPolicy(t *testing.T) {
	policy := NewOriginPolicy([]string{"https://Chat.Example.com", "not an origin", ""}, slog.Default())
	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no origin header", "", true},
		{"configured origin with other case", "https://chat.example.com", true},
		{"other host", "https://evil.example.com", false},
		{"other scheme", "http://chat.example.com", false},
		{"garbage", "::::", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			require.Equal(t, tt.want, policy.Check(r))
		})
	}

	allowAll := NewOriginPolicy([]string{"*"}, slog.Default())
	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Origin", "https://anything.example")
	require.True(t, allowAll.Check(r))
}
