package search

import (
	"chat-relay/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserIndex_Search_Substring(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	index, err := NewUserIndex(t.TempDir())
	req.NoError(err)
	defer func() { req.NoError(index.Close()) }()

	// Given indexed users
	req.NoError(index.Rebuild([]domain.User{
		{ID: 1, Username: "Alice"},
		{ID: 2, Username: "malicious"},
		{ID: 3, Username: "bob"},
	}))

	// When searching a lowercase fragment
	ids, err := index.Search(ctx, "ALI", 10)

	// Then every username containing it matches, whatever its case
	req.NoError(err)
	req.ElementsMatch([]domain.UserID{1, 2}, ids)
}

func TestUserIndex_Search_No_Match(t *testing.T) {
	req := require.New(t)
	index, err := NewUserIndex("")
	req.NoError(err)
	defer func() { req.NoError(index.Close()) }()

	req.NoError(index.Index(domain.User{ID: 1, Username: "alice"}))

	ids, err := index.Search(context.Background(), "zed", 10)
	req.NoError(err)
	req.Empty(ids)

	// Wildcards typed by a client are not interpreted
	ids, err = index.Search(context.Background(), "*", 10)
	req.NoError(err)
	req.Empty(ids)
}

func TestUserIndex_Update_Replaces_Username(t *testing.T) {
	req := require.New(t)
	index, err := NewUserIndex("")
	req.NoError(err)
	defer func() { req.NoError(index.Close()) }()

	req.NoError(index.Index(domain.User{ID: 1, Username: "alice"}))
	req.NoError(index.Index(domain.User{ID: 1, Username: "carol"}))

	ids, err := index.Search(context.Background(), "alice", 10)
	req.NoError(err)
	req.Empty(ids)
	ids, err = index.Search(context.Background(), "car", 10)
	req.NoError(err)
	req.Equal([]domain.UserID{1}, ids)
}
