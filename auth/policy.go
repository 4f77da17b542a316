package auth

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"fmt"
	"slices"
)

type Action string

const (
	ActionListUsers       Action = "users:list"
	ActionSearchUsers     Action = "users:search"
	ActionCreateGroupChat Action = "chats:create_group"
	ActionListChats       Action = "chats:list"
	ActionSendAttachment  Action = "messages:attach"
	ActionInspectStore    Action = "store:inspect"
	// ActionManageAnyUser lets a caller change another user's account.
	ActionManageAnyUser   Action = "users:manage_any"
)

// Policy maps each protected action to the roles allowed to perform it.
// An action absent from the table is open to every authenticated identity.
type Policy struct {
	rules map[Action][]domain.Role
}

func DefaultPolicy() *Policy {
	return NewPolicy(map[Action][]domain.Role{
		ActionListUsers:     {domain.RoleAdmin},
		ActionInspectStore:  {domain.RoleAdmin},
		ActionManageAnyUser: {domain.RoleAdmin},
	})
}

func NewPolicy(rules map[Action][]domain.Role) *Policy {
	return &Policy{rules: rules}
}

func (p *Policy) Authorize(identity Identity, action Action) error {
	roles, ok := p.rules[action]
	if !ok {
		return nil
	}
	if slices.Contains(roles, identity.Role) {
		return nil
	}
	return fmt.Errorf("%w: %s requires one of %v", errors.ErrForbidden, action, roles)
}

// AuthorizeOwner lets identities act on their own account; any other
// account needs ActionManageAnyUser.
func (p *Policy) AuthorizeOwner(identity Identity, owner domain.UserID) error {
	if identity.UserID == owner {
		return nil
	}
	return p.Authorize(identity, ActionManageAnyUser)
}
