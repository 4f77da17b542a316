//go:generate go run go.uber.org/mock/mockgen -source=chat.go -destination=../mocks/mock_chat_repository.go -package=mocks
package repositories

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type IChatRepository interface {
	ListChatsForUser(userID domain.UserID) ([]domain.ChatDetails, error)
	GetChatMembers(chatID domain.ChatID) ([]domain.UserID, error)
}

type ChatRepository struct {
	db *badger.DB
}

func NewChatRepository(db *badger.DB) ChatRepository {
	return ChatRepository{db: db}
}

// ListChatsForUser walks the user_chat reverse index and reloads each chat
// with its members and ordered messages.
func (c ChatRepository) ListChatsForUser(userID domain.UserID) ([]domain.ChatDetails, error) {
	chats := []domain.ChatDetails{}
	err := c.db.View(func(txn *badger.Txn) error {
		return scanKeys(txn, userChatPrefix(int64(userID)), func(key []byte) error {
			chatID, err := trailingID(key)
			if err != nil {
				return err
			}
			details, err := loadChatDetails(txn, domain.ChatID(chatID))
			if err != nil {
				return err
			}
			chats = append(chats, details)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Persistence(err)
	}
	return chats, nil
}

func (c ChatRepository) GetChatMembers(chatID domain.ChatID) ([]domain.UserID, error) {
	var members []domain.UserID
	err := c.db.View(func(txn *badger.Txn) error {
		var err error
		members, err = loadMemberIDs(txn, chatID)
		return err
	})
	if err != nil {
		return nil, errors.Persistence(err)
	}
	return members, nil
}

func getChat(txn *badger.Txn, chatID domain.ChatID) (domain.Chat, error) {
	var d diskChat
	err := getJSON(txn, chatKey(int64(chatID)), &d)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Chat{}, fmt.Errorf("%w: %d", errors.ErrChatNotFound, chatID)
	}
	if err != nil {
		return domain.Chat{}, err
	}
	return d.toChat(), nil
}

func loadMemberIDs(txn *badger.Txn, chatID domain.ChatID) ([]domain.UserID, error) {
	members := []domain.UserID{}
	err := scanKeys(txn, chatUserPrefix(int64(chatID)), func(key []byte) error {
		id, err := trailingID(key)
		if err != nil {
			return err
		}
		members = append(members, domain.UserID(id))
		return nil
	})
	return members, err
}

func loadChatDetails(txn *badger.Txn, chatID domain.ChatID) (domain.ChatDetails, error) {
	chat, err := getChat(txn, chatID)
	if err != nil {
		return domain.ChatDetails{}, err
	}
	memberIDs, err := loadMemberIDs(txn, chatID)
	if err != nil {
		return domain.ChatDetails{}, err
	}
	users := make([]domain.UserSummary, 0, len(memberIDs))
	for _, id := range memberIDs {
		user, err := getUser(txn, id)
		if err != nil {
			return domain.ChatDetails{}, err
		}
		users = append(users, user.Summary())
	}
	messages, err := loadMessages(txn, chatID)
	if err != nil {
		return domain.ChatDetails{}, err
	}
	return domain.ChatDetails{Chat: chat, Users: users, Messages: messages}, nil
}
