//go:generate go run go.uber.org/mock/mockgen -source=user_index.go -destination=../mocks/mock_user_index.go -package=mocks
package search

import (
	"chat-relay/domain"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/blugelabs/bluge"
)

const usernameField = "username"

var wildcardEscaper = strings.NewReplacer("*", "", "?", "", `\`, "")

type IUserIndex interface {
	Index(user domain.User) error
	Search(ctx context.Context, term string, limit int) ([]domain.UserID, error)
}

// UserIndex keeps a lowercase username field per user so that
// lookups match any case-insensitive substring.
type UserIndex struct {
	writer *bluge.Writer
}

// NewUserIndex opens an on-disk index under dir, or an in-memory one when dir is empty.
func NewUserIndex(dir string) (*UserIndex, error) {
	cfg := bluge.InMemoryOnlyConfig()
	if dir != "" {
		cfg = bluge.DefaultConfig(dir)
	}
	writer, err := bluge.OpenWriter(cfg)
	if err != nil {
		return nil, fmt.Errorf("open user index: %w", err)
	}
	return &UserIndex{writer: writer}, nil
}

func (u *UserIndex) Index(user domain.User) error {
	doc := bluge.NewDocument(strconv.FormatInt(int64(user.ID), 10)).
		AddField(bluge.NewKeywordField(usernameField, strings.ToLower(user.Username)).StoreValue())
	return u.writer.Update(doc.ID(), doc)
}

// Rebuild indexes every user, typically the content of the store at startup.
func (u *UserIndex) Rebuild(users []domain.User) error {
	for _, user := range users {
		if err := u.Index(user); err != nil {
			return err
		}
	}
	return nil
}

// Search returns the ids of at most limit users whose username contains term.
func (u *UserIndex) Search(ctx context.Context, term string, limit int) ([]domain.UserID, error) {
	term = wildcardEscaper.Replace(strings.ToLower(term))
	if term == "" {
		return []domain.UserID{}, nil
	}

	reader, err := u.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	query := bluge.NewWildcardQuery("*" + term + "*").SetField(usernameField)
	matches, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	ids := []domain.UserID{}
	match, err := matches.Next()
	for err == nil && match != nil {
		var id int64
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field != "_id" {
				return true
			}
			id, err = strconv.ParseInt(string(value), 10, 64)
			return false
		})
		if visitErr != nil {
			return nil, visitErr
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, domain.UserID(id))
		match, err = matches.Next()
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (u *UserIndex) Close() error {
	return u.writer.Close()
}
