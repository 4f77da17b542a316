package auth

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	req := require.New(t)
	policy := DefaultPolicy()
	admin := Identity{UserID: 1, Role: domain.RoleAdmin}
	member := Identity{UserID: 2, Role: domain.RoleDefault}

	req.NoError(policy.Authorize(admin, ActionListUsers))
	req.ErrorIs(policy.Authorize(member, ActionListUsers), errors.ErrForbidden)
	req.NoError(policy.Authorize(admin, ActionInspectStore))
	req.ErrorIs(policy.Authorize(member, ActionInspectStore), errors.ErrForbidden)

	// Actions without a rule are open to any authenticated identity
	req.NoError(policy.Authorize(member, ActionCreateGroupChat))
	req.NoError(policy.Authorize(member, ActionSearchUsers))
}

func TestPolicy_AuthorizeOwner(t *testing.T) {
	req := require.New(t)
	policy := DefaultPolicy()
	admin := Identity{UserID: 1, Role: domain.RoleAdmin}
	member := Identity{UserID: 2, Role: domain.RoleDefault}

	req.NoError(policy.AuthorizeOwner(member, 2))
	req.ErrorIs(policy.AuthorizeOwner(member, 3), errors.ErrForbidden)
	req.NoError(policy.AuthorizeOwner(admin, 3))
}
