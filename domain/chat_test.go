package domain

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestGroupChatName(t *testing.T) {
	req := require.New(t)
	req.Equal("1,2,3", GroupChatName([]UserID{1, 2, 3}))
	req.Equal("", GroupChatName(nil))
}

func TestRoomKeyFor(t *testing.T) {
	require.Equal(t, RoomKey("identity:42"), RoomKeyFor(42))
}

func TestChatDetails_MemberIDs(t *testing.T) {
	details := ChatDetails{Users: []UserSummary{
		{ID: 4, Username: "alice", ProfilePicture: lo.ToPtr("a.png")},
		{ID: 9, Username: "bob"},
	}}
	require.Equal(t, []UserID{4, 9}, details.MemberIDs())
}
