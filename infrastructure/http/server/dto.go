package server

import (
	"chat-relay/domain"
	"chat-relay/domain/event"
	"time"

	"github.com/samber/lo"
)

type groupChatRequest struct {
	UserIDs []any `json:"user_ids"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type usernameRequest struct {
	Username string `json:"username"`
}

type passwordUpdateRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

type pictureResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

type messageResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type chatMessage struct {
	ID        domain.MessageID `json:"id"`
	UserID    domain.UserID    `json:"user_id"`
	Message   *string          `json:"message"`
	Photo     *string          `json:"photo"`
	CreatedAt time.Time        `json:"created_at"`
}

type chatSummary struct {
	IsGroup   bool                `json:"is_group"`
	CreatedAt time.Time           `json:"created_at"`
	ID        domain.ChatID       `json:"id"`
	Users     []event.UserPayload `json:"users"`
	Messages  []chatMessage       `json:"messages"`
}

type stagedMessage struct {
	ChatID  domain.ChatID `json:"chat_id"`
	UserID  domain.UserID `json:"user_id"`
	Message *string       `json:"message"`
	Photo   *string       `json:"photo"`
}

type userResponse struct {
	ID             domain.UserID `json:"id"`
	Username       string        `json:"username"`
	ProfilePicture *string       `json:"profile_picture"`
	Role           domain.Role   `json:"role"`
	CreatedAt      time.Time     `json:"created_at"`
}

func toChatSummaries(chats []domain.ChatDetails) []chatSummary {
	return lo.Map(chats, func(c domain.ChatDetails, _ int) chatSummary {
		return chatSummary{
			IsGroup:   c.IsGroup,
			CreatedAt: c.CreatedAt,
			ID:        c.ID,
			Users:     lo.Map(c.Users, func(u domain.UserSummary, _ int) event.UserPayload { return event.FromUser(u) }),
			Messages: lo.Map(c.Messages, func(m domain.Message, _ int) chatMessage {
				return chatMessage{ID: m.ID, UserID: m.UserID, Message: m.Body, Photo: m.Photo, CreatedAt: m.CreatedAt}
			}),
		}
	})
}

func toStagedMessage(m domain.StagedMessage) stagedMessage {
	return stagedMessage{ChatID: m.ChatID, UserID: m.UserID, Message: m.Body, Photo: m.Photo}
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Role:           u.Role,
		CreatedAt:      u.CreatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	return lo.Map(users, func(u domain.User, _ int) userResponse { return toUserResponse(u) })
}

func toUserPayloads(users []domain.UserSummary) []event.UserPayload {
	return lo.Map(users, func(u domain.UserSummary, _ int) event.UserPayload { return event.FromUser(u) })
}
