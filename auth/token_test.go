package auth

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_Issue_Then_Verify(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("secret", time.Hour)

	// Given a token issued for an admin
	token, err := manager.Issue(domain.User{ID: 7, Username: "alice", Role: domain.RoleAdmin})
	req.NoError(err)

	// When it is verified
	identity, err := manager.Verify(token)

	// Then the identity carries the claims
	req.NoError(err)
	req.Equal(domain.UserID(7), identity.UserID)
	req.Equal("alice", identity.Username)
	req.Equal(domain.RoleAdmin, identity.Role)
}

func TestTokenManager_Verify_Defaults_Role(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("secret", time.Hour)

	token, err := manager.Issue(domain.User{ID: 1, Username: "bob"})
	req.NoError(err)

	identity, err := manager.Verify(token)
	req.NoError(err)
	req.Equal(domain.RoleDefault, identity.Role)
}

func TestTokenManager_Verify_Rejects(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("another-secret", time.Hour)
	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	foreign, err := other.Issue(domain.User{ID: 1, Username: "bob"})
	require.NoError(t, err)
	stale, err := expired.Issue(domain.User{ID: 1, Username: "bob"})
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &CustomClaims{ID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", errors.ErrMissingToken},
		{"garbage", "not-a-jwt", errors.ErrInvalidToken},
		{"wrong secret", foreign, errors.ErrInvalidToken},
		{"expired", stale, errors.ErrInvalidToken},
		{"alg none", unsigned, errors.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Verify(tt.token)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, errors.ErrAuth)
		})
	}
}
