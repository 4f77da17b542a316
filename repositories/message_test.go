package repositories

import (
	"chat-relay/domain"
	"log/slog"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func Test_Store_Then_Get_Messages_In_Order(t *testing.T) {
	req := require.New(t)
	db, seq := setupDB(t)
	repository := NewMessageRepository(db, seq, slog.Default())
	clientTime := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

	// Given three messages in chat 1 and one in chat 2
	var stored []domain.Message
	for _, body := range []string{"first", "second", "third"} {
		m, err := repository.StoreMessage(domain.Message{ChatID: 1, UserID: 5, Body: lo.ToPtr(body), CreatedAt: clientTime, ID: 999})
		req.NoError(err)
		stored = append(stored, m)
	}
	_, err := repository.StoreMessage(domain.Message{ChatID: 2, UserID: 5, Photo: lo.ToPtr("cat.png")})
	req.NoError(err)

	// Then ids are server assigned and strictly increasing
	req.Equal(domain.MessageID(1), stored[0].ID)
	req.Less(stored[0].ID, stored[1].ID)
	req.Less(stored[1].ID, stored[2].ID)
	req.NotEqual(clientTime, stored[0].CreatedAt)

	// When fetching chat 1
	fetched, err := repository.GetMessages(1)
	req.NoError(err)

	// Then only its messages come back, oldest first, unchanged
	req.Len(fetched, 3)
	req.Equal("first", *fetched[0].Body)
	req.Equal("third", *fetched[2].Body)
	req.Nil(fetched[0].Photo)
	req.Equal(stored[1].ID, fetched[1].ID)
	req.True(stored[1].CreatedAt.Equal(fetched[1].CreatedAt))
}

func Test_Get_Messages_Of_Empty_Chat(t *testing.T) {
	req := require.New(t)
	db, seq := setupDB(t)
	repository := NewMessageRepository(db, seq, slog.Default())

	fetched, err := repository.GetMessages(3)
	req.NoError(err)
	req.NotNil(fetched)
	req.Empty(fetched)
}
