package repositories

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const sequenceBandwidth = 100

// Keys are zero padded so that a prefix scan returns rows in id order.
func userKey(id int64) []byte          { return fmt.Appendf(nil, "user:id:%020d", id) }
func usernameKey(name string) []byte   { return fmt.Appendf(nil, "user:name:%s", name) }
func chatKey(id int64) []byte          { return fmt.Appendf(nil, "chat:%020d", id) }
func chatUserPrefix(chat int64) []byte { return fmt.Appendf(nil, "chat_user:%020d:", chat) }
func userChatPrefix(user int64) []byte { return fmt.Appendf(nil, "user_chat:%020d:", user) }
func messagePrefix(chat int64) []byte  { return fmt.Appendf(nil, "msg:%020d:", chat) }

func chatUserKey(chat, user int64) []byte {
	return fmt.Appendf(chatUserPrefix(chat), "%020d", user)
}

func userChatKey(user, chat int64) []byte {
	return fmt.Appendf(userChatPrefix(user), "%020d", chat)
}

func messageKey(chat, id int64) []byte {
	return fmt.Appendf(messagePrefix(chat), "%020d", id)
}

// Sequences hands out the strictly increasing ids of users, chats and messages.
// Leased ranges survive restarts as gaps, never as duplicates.
type Sequences struct {
	users    *badger.Sequence
	chats    *badger.Sequence
	messages *badger.Sequence
}

func NewSequences(db *badger.DB) (*Sequences, error) {
	users, err := db.GetSequence([]byte("seq:user"), sequenceBandwidth)
	if err != nil {
		return nil, err
	}
	chats, err := db.GetSequence([]byte("seq:chat"), sequenceBandwidth)
	if err != nil {
		return nil, err
	}
	messages, err := db.GetSequence([]byte("seq:msg"), sequenceBandwidth)
	if err != nil {
		return nil, err
	}
	return &Sequences{users: users, chats: chats, messages: messages}, nil
}

// Release returns the unused part of each leased range.
func (s *Sequences) Release() error {
	var firstErr error
	for _, seq := range []*badger.Sequence{s.users, s.chats, s.messages} {
		if err := seq.Release(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Badger sequences start at 0; ids start at 1.
func next(seq *badger.Sequence) (int64, error) {
	n, err := seq.Next()
	if err != nil {
		return 0, err
	}
	return int64(n) + 1, nil
}

func now() time.Time {
	return time.Now().UTC()
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return txn.Set(key, data)
}

func getJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// scanKeys visits every key under prefix in ascending order without loading values.
func scanKeys(txn *badger.Txn, prefix []byte, visit func(key []byte) error) error {
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := visit(it.Item().KeyCopy(nil)); err != nil {
			return err
		}
	}
	return nil
}

// scanValues visits every value under prefix in ascending key order.
func scanValues(txn *badger.Txn, prefix []byte, visit func(val []byte) error) error {
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := it.Item().Value(visit); err != nil {
			return err
		}
	}
	return nil
}

// trailingID parses the last zero padded segment of an index key.
func trailingID(key []byte) (int64, error) {
	if len(key) < 20 {
		return 0, fmt.Errorf("malformed index key %q", key)
	}
	id, err := strconv.ParseInt(string(key[len(key)-20:]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed index key %q: %w", key, err)
	}
	return id, nil
}
