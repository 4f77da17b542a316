package repositories

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestTransactor_Commits_Group_Chat(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	db, seq := setupDB(t)
	users := NewUserRepository(db, seq)
	chats := NewChatRepository(db)
	transactor := NewTransactor(db, seq)

	alice, err := users.CreateUser("alice", "h", "")
	req.NoError(err)
	bob, err := users.CreateUser("bob", "h", "")
	req.NoError(err)
	ids := []domain.UserID{alice.ID, bob.ID}

	// When a chat is created and linked inside one unit of work
	var details domain.ChatDetails
	err = transactor.WithinTransaction(ctx, func(tx Tx) error {
		chat, err := tx.CreateChat(domain.GroupChatName(ids), true)
		if err != nil {
			return err
		}
		found, err := tx.FindUsersByIDs(ids)
		if err != nil {
			return err
		}
		req.Len(found, 2)
		if err = tx.AddMembers(chat.ID, ids); err != nil {
			return err
		}
		details, err = tx.GetChatDetails(chat.ID)
		return err
	})

	// Then the reload inside the transaction saw its own writes
	req.NoError(err)
	req.True(details.IsGroup)
	req.Equal("1,2", *details.Name)
	req.ElementsMatch(ids, details.MemberIDs())
	req.Empty(details.Messages)

	// And the chat is visible to both members after commit
	for _, id := range ids {
		listed, err := chats.ListChatsForUser(id)
		req.NoError(err)
		req.Len(listed, 1)
		req.Equal(details.ID, listed[0].ID)
	}
	members, err := chats.GetChatMembers(details.ID)
	req.NoError(err)
	req.Equal(ids, members)
}

func TestTransactor_Rolls_Back_On_Error(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	db, seq := setupDB(t)
	users := NewUserRepository(db, seq)
	chats := NewChatRepository(db)
	transactor := NewTransactor(db, seq)

	alice, err := users.CreateUser("alice", "h", "")
	req.NoError(err)

	// When the unit of work fails after writing the chat and a membership
	err = transactor.WithinTransaction(ctx, func(tx Tx) error {
		chat, err := tx.CreateChat("1,99", true)
		if err != nil {
			return err
		}
		if err = tx.AddMembers(chat.ID, []domain.UserID{alice.ID}); err != nil {
			return err
		}
		return fmt.Errorf("%w: 99", errors.ErrUserNotFound)
	})

	// Then the error kind is preserved and nothing was written
	req.ErrorIs(err, errors.ErrNotFound)
	listed, err := chats.ListChatsForUser(alice.ID)
	req.NoError(err)
	req.Empty(listed)
	_, err = chats.GetChatMembers(1)
	req.NoError(err)
}

func TestTransactor_Aborts_On_Cancelled_Context(t *testing.T) {
	req := require.New(t)
	db, seq := setupDB(t)
	chats := NewChatRepository(db)
	transactor := NewTransactor(db, seq)
	users := NewUserRepository(db, seq)
	alice, err := users.CreateUser("alice", "h", "")
	req.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	err = transactor.WithinTransaction(ctx, func(tx Tx) error {
		chat, err := tx.CreateChat("x", true)
		if err != nil {
			return err
		}
		cancel()
		return tx.AddMembers(chat.ID, []domain.UserID{alice.ID})
	})

	req.ErrorIs(err, errors.ErrPersistence)
	listed, err := chats.ListChatsForUser(alice.ID)
	req.NoError(err)
	req.Empty(listed)
}

func TestChatRepository_Lists_Messages_In_Order(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	db, seq := setupDB(t)
	users := NewUserRepository(db, seq)
	chats := NewChatRepository(db)
	messages := NewMessageRepository(db, seq, slog.Default())
	transactor := NewTransactor(db, seq)

	alice, err := users.CreateUser("alice", "h", "")
	req.NoError(err)
	bob, err := users.CreateUser("bob", "h", "")
	req.NoError(err)

	var chatID domain.ChatID
	req.NoError(transactor.WithinTransaction(ctx, func(tx Tx) error {
		chat, err := tx.CreateChat("1,2", true)
		chatID = chat.ID
		if err != nil {
			return err
		}
		return tx.AddMembers(chat.ID, []domain.UserID{alice.ID, bob.ID})
	}))

	for _, body := range []string{"hi", "hello"} {
		_, err = messages.StoreMessage(domain.Message{ChatID: chatID, UserID: alice.ID, Body: lo.ToPtr(body)})
		req.NoError(err)
	}

	listed, err := chats.ListChatsForUser(bob.ID)
	req.NoError(err)
	req.Len(listed, 1)
	req.Len(listed[0].Messages, 2)
	req.Equal("hi", *listed[0].Messages[0].Body)
	req.Equal([]string{"alice", "bob"}, lo.Map(listed[0].Users, func(u domain.UserSummary, _ int) string {
		return u.Username
	}))
}
