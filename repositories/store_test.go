package repositories

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) (*badger.DB, *Sequences) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	seq, err := NewSequences(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = seq.Release()
		_ = db.Close()
	})
	return db, seq
}

func TestTrailingID(t *testing.T) {
	req := require.New(t)

	id, err := trailingID(userChatKey(12, 345))
	req.NoError(err)
	req.Equal(int64(345), id)

	_, err = trailingID([]byte("short"))
	req.Error(err)
}

func TestKeys_Sort_By_Id(t *testing.T) {
	req := require.New(t)

	req.Less(string(messageKey(1, 9)), string(messageKey(1, 10)))
	req.Less(string(chatUserKey(2, 99)), string(chatUserKey(2, 100)))
}
