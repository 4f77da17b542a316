// Package event defines the named events pushed to live sessions.
package event

import (
	"chat-relay/domain"
	"fmt"
	"time"
)

const NewGroupChatName = "new_group_chat"

// Event is a named payload delivered to sessions as {"event": Name(), "data": Payload()}.
type Event interface {
	Name() string
	Payload() any
}

func ReceiveMessageName(chatID domain.ChatID) string {
	return fmt.Sprintf("receive_message_%d", chatID)
}

type MessagePayload struct {
	ID        domain.MessageID `json:"id"`
	ChatID    domain.ChatID    `json:"chat_id"`
	UserID    domain.UserID    `json:"user_id"`
	Message   *string          `json:"message"`
	Photo     *string          `json:"photo"`
	CreatedAt time.Time        `json:"created_at"`
}

type UserPayload struct {
	ID             domain.UserID `json:"id"`
	Username       string        `json:"username"`
	ProfilePicture *string       `json:"profile_picture"`
}

type ChatPayload struct {
	ID        domain.ChatID    `json:"id"`
	ChatName  *string          `json:"chat_name"`
	IsGroup   bool             `json:"is_group"`
	CreatedAt time.Time        `json:"created_at"`
	Messages  []MessagePayload `json:"messages"`
	Users     []UserPayload    `json:"users"`
}

// MessageReceived carries the canonical persisted message.
type MessageReceived struct {
	Message MessagePayload
}

func (m MessageReceived) Name() string { return ReceiveMessageName(m.Message.ChatID) }

func (m MessageReceived) Payload() any { return m.Message }

// GroupChatCreated is sent to every member of a freshly committed group chat.
type GroupChatCreated struct {
	Chat ChatPayload `json:"chat"`
}

func (g GroupChatCreated) Name() string { return NewGroupChatName }

func (g GroupChatCreated) Payload() any { return g }

// Raw is an arbitrary named event.
type Raw struct {
	EventName string
	Data      any
}

func (r Raw) Name() string { return r.EventName }

func (r Raw) Payload() any { return r.Data }

func FromMessage(m domain.Message) MessagePayload {
	return MessagePayload{
		ID:        m.ID,
		ChatID:    m.ChatID,
		UserID:    m.UserID,
		Message:   m.Body,
		Photo:     m.Photo,
		CreatedAt: m.CreatedAt,
	}
}

func FromUser(u domain.UserSummary) UserPayload {
	return UserPayload{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}
}

func FromChatDetails(c domain.ChatDetails) ChatPayload {
	messages := make([]MessagePayload, 0, len(c.Messages))
	for _, m := range c.Messages {
		messages = append(messages, FromMessage(m))
	}
	users := make([]UserPayload, 0, len(c.Users))
	for _, u := range c.Users {
		users = append(users, FromUser(u))
	}
	return ChatPayload{
		ID:        c.ID,
		ChatName:  c.Name,
		IsGroup:   c.IsGroup,
		CreatedAt: c.CreatedAt,
		Messages:  messages,
		Users:     users,
	}
}

func NewMessageReceived(m domain.Message) MessageReceived {
	return MessageReceived{Message: FromMessage(m)}
}

func NewGroupChatCreated(c domain.ChatDetails) GroupChatCreated {
	return GroupChatCreated{Chat: FromChatDetails(c)}
}

// Ping is used by health probes and tests.
func Ping() Raw {
	return Raw{EventName: "ping", Data: struct{}{}}
}
