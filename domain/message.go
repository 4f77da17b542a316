// Package domain contains core concepts of the chat system.
// This file defines Message records.
// Messages are immutable once persisted.
package domain

import "time"

type MessageID int64

// Message represents a persisted chat message.
type Message struct {
	ID        MessageID
	ChatID    ChatID
	UserID    UserID
	Body      *string
	Photo     *string
	CreatedAt time.Time
}
