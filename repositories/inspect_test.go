package repositories

import (
	"chat-relay/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInspector_ListsKeysUnderPrefix(t *testing.T) {
	req := require.New(t)
	db, seq := setupDB(t)
	users := NewUserRepository(db, seq)

	_, err := users.CreateUser("alice", "hash", domain.RoleDefault)
	req.NoError(err)
	_, err = users.CreateUser("bob", "hash", domain.RoleDefault)
	req.NoError(err)

	rows, err := NewInspector(db).Inspect("user:name:", 0)
	req.NoError(err)
	req.Len(rows, 2)
	req.Equal("user:name:alice", rows[0].Key)
	req.Equal("user", rows[0].Namespace)
	req.Positive(rows[0].Size)

	rows, err = NewInspector(db).Inspect("user:", 1)
	req.NoError(err)
	req.Len(rows, 1)

	rows, err = NewInspector(db).Inspect("nothing:", 10)
	req.NoError(err)
	req.Empty(rows)
}
