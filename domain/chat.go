package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

type ChatID int64

type Chat struct {
	ID        ChatID
	Name      *string
	IsGroup   bool
	CreatedAt time.Time
}

// ChatDetails is a chat reloaded together with its members and messages.
type ChatDetails struct {
	Chat
	Users    []UserSummary
	Messages []Message
}

func (c ChatDetails) MemberIDs() []UserID {
	return lo.Map(c.Users, func(u UserSummary, _ int) UserID { return u.ID })
}

// GroupChatName is the default display name of a group chat: its member ids joined by commas.
func GroupChatName(ids []UserID) string {
	return strings.Join(lo.Map(ids, func(id UserID, _ int) string {
		return strconv.FormatInt(int64(id), 10)
	}), ",")
}
