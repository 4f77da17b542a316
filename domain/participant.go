// Package domain contains core concepts of the chat system.
// This file defines users, the principals behind every session.
// No runtime, network, or storage logic should be added here.
package domain

import "time"

// UserID is the identity carried by a verified credential.
type UserID int64

type Role string

const (
	RoleDefault Role = "default"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID             UserID
	Username       string
	PasswordHash   string
	ProfilePicture *string
	Role           Role
	CreatedAt      time.Time
}

// UserSummary is the projection of a user exposed to other members of a chat.
type UserSummary struct {
	ID             UserID
	Username       string
	ProfilePicture *string
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}
}
