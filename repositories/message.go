//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"encoding/json"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) (domain.Message, error)
	GetMessages(chatID domain.ChatID) ([]domain.Message, error)
}

type MessageRepository struct {
	db  *badger.DB
	seq *Sequences
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, seq *Sequences, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, seq: seq, log: log}
}

// StoreMessage persists a message with a server assigned id and timestamp.
// The key is formatted as "msg:{chat_id}:{id}", both zero padded, so a prefix
// scan returns the messages of a chat in insertion order.
// Any id or created_at on the argument is ignored.
func (m MessageRepository) StoreMessage(message domain.Message) (domain.Message, error) {
	id, err := next(m.seq.messages)
	if err != nil {
		return domain.Message{}, errors.Persistence(err)
	}
	message.ID = domain.MessageID(id)
	message.CreatedAt = now()

	err = m.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, messageKey(int64(message.ChatID), id), fromMessage(message))
	})
	if err != nil {
		return domain.Message{}, errors.Persistence(err)
	}
	m.log.Debug("Message stored", "message_id", id, "chat_id", message.ChatID)
	return message, nil
}

// GetMessages returns every message of a chat, oldest first.
func (m MessageRepository) GetMessages(chatID domain.ChatID) ([]domain.Message, error) {
	var messages []domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		var err error
		messages, err = loadMessages(txn, chatID)
		return err
	})
	if err != nil {
		return nil, errors.Persistence(err)
	}
	return messages, nil
}

func loadMessages(txn *badger.Txn, chatID domain.ChatID) ([]domain.Message, error) {
	messages := []domain.Message{}
	err := scanValues(txn, messagePrefix(int64(chatID)), func(val []byte) error {
		var d diskMessage
		if err := json.Unmarshal(val, &d); err != nil {
			return err
		}
		messages = append(messages, d.toMessage())
		return nil
	})
	return messages, err
}
