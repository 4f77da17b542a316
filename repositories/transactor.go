//go:generate go run go.uber.org/mock/mockgen -source=transactor.go -destination=../mocks/mock_transactor.go -package=mocks
package repositories

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"context"

	"github.com/dgraph-io/badger/v4"
)

// Tx is the set of writes and reads available inside a unit of work.
// Reads observe the pending writes of the same transaction.
type Tx interface {
	CreateChat(name string, isGroup bool) (domain.Chat, error)
	FindUsersByIDs(ids []domain.UserID) ([]domain.User, error)
	AddMembers(chatID domain.ChatID, userIDs []domain.UserID) error
	GetChatDetails(chatID domain.ChatID) (domain.ChatDetails, error)
}

type ITransactor interface {
	// WithinTransaction commits every write made through tx if fn returns nil,
	// and discards all of them otherwise.
	WithinTransaction(ctx context.Context, fn func(tx Tx) error) error
}

type Transactor struct {
	db  *badger.DB
	seq *Sequences
}

func NewTransactor(db *badger.DB, seq *Sequences) Transactor {
	return Transactor{db: db, seq: seq}
}

func (t Transactor) WithinTransaction(ctx context.Context, fn func(tx Tx) error) error {
	txn := t.db.NewTransaction(true)
	defer txn.Discard()

	if err := fn(&badgerTx{txn: txn, seq: t.seq}); err != nil {
		return errors.Persistence(err)
	}
	// Nothing is committed once the caller has gone away.
	if err := ctx.Err(); err != nil {
		return errors.Persistence(err)
	}
	return errors.Persistence(txn.Commit())
}

type badgerTx struct {
	txn *badger.Txn
	seq *Sequences
}

func (b *badgerTx) CreateChat(name string, isGroup bool) (domain.Chat, error) {
	id, err := next(b.seq.chats)
	if err != nil {
		return domain.Chat{}, err
	}
	d := diskChat{ID: id, Name: &name, IsGroup: isGroup, CreatedAt: now()}
	if err = setJSON(b.txn, chatKey(id), d); err != nil {
		return domain.Chat{}, err
	}
	return d.toChat(), nil
}

// FindUsersByIDs returns the users that exist among ids; missing ones are skipped.
func (b *badgerTx) FindUsersByIDs(ids []domain.UserID) ([]domain.User, error) {
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := getUser(b.txn, id)
		if errors.Is(err, errors.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (b *badgerTx) AddMembers(chatID domain.ChatID, userIDs []domain.UserID) error {
	for _, userID := range userIDs {
		if err := b.txn.Set(chatUserKey(int64(chatID), int64(userID)), []byte{}); err != nil {
			return err
		}
		if err := b.txn.Set(userChatKey(int64(userID), int64(chatID)), []byte{}); err != nil {
			return err
		}
	}
	return nil
}

func (b *badgerTx) GetChatDetails(chatID domain.ChatID) (domain.ChatDetails, error) {
	return loadChatDetails(b.txn, chatID)
}
