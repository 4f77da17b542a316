package repositories

import (
	"chat-relay/domain"
	"time"
)

// diskUser is the persisted form of a user.
type diskUser struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"password_hash"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	Role           string    `json:"role,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type diskChat struct {
	ID        int64     `json:"id"`
	Name      *string   `json:"name,omitempty"`
	IsGroup   bool      `json:"is_group"`
	CreatedAt time.Time `json:"created_at"`
}

type diskMessage struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	UserID    int64     `json:"user_id"`
	Body      *string   `json:"body,omitempty"`
	Photo     *string   `json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func fromUser(u domain.User) diskUser {
	return diskUser{
		ID:             int64(u.ID),
		Username:       u.Username,
		PasswordHash:   u.PasswordHash,
		ProfilePicture: u.ProfilePicture,
		Role:           string(u.Role),
		CreatedAt:      u.CreatedAt,
	}
}

func (d diskUser) toUser() domain.User {
	role := domain.Role(d.Role)
	if role == "" {
		role = domain.RoleDefault
	}
	return domain.User{
		ID:             domain.UserID(d.ID),
		Username:       d.Username,
		PasswordHash:   d.PasswordHash,
		ProfilePicture: d.ProfilePicture,
		Role:           role,
		CreatedAt:      d.CreatedAt,
	}
}

func (d diskChat) toChat() domain.Chat {
	return domain.Chat{ID: domain.ChatID(d.ID), Name: d.Name, IsGroup: d.IsGroup, CreatedAt: d.CreatedAt}
}

func fromMessage(m domain.Message) diskMessage {
	return diskMessage{
		ID:        int64(m.ID),
		ChatID:    int64(m.ChatID),
		UserID:    int64(m.UserID),
		Body:      m.Body,
		Photo:     m.Photo,
		CreatedAt: m.CreatedAt,
	}
}

func (d diskMessage) toMessage() domain.Message {
	return domain.Message{
		ID:        domain.MessageID(d.ID),
		ChatID:    domain.ChatID(d.ChatID),
		UserID:    domain.UserID(d.UserID),
		Body:      d.Body,
		Photo:     d.Photo,
		CreatedAt: d.CreatedAt,
	}
}
