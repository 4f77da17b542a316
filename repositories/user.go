//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type IUserRepository interface {
	CreateUser(username, hashedPassword string, role domain.Role) (domain.User, error)
	GetUser(id domain.UserID) (domain.User, error)
	GetUserByUsername(username string) (domain.User, error)
	ListUsers() ([]domain.User, error)
	UpdatePasswordHash(id domain.UserID, hashedPassword string) (domain.User, error)
	UpdateProfilePicture(id domain.UserID, picture string) (domain.User, error)
}

type UserRepository struct {
	db  *badger.DB
	seq *Sequences
}

func NewUserRepository(db *badger.DB, seq *Sequences) UserRepository {
	return UserRepository{db: db, seq: seq}
}

// CreateUser persists a new user under its id and reserves the username.
// Usernames are unique: a taken one fails with ErrUserAlreadyExists.
func (u UserRepository) CreateUser(username, hashedPassword string, role domain.Role) (domain.User, error) {
	id, err := next(u.seq.users)
	if err != nil {
		return domain.User{}, errors.Persistence(err)
	}
	if role == "" {
		role = domain.RoleDefault
	}
	user := domain.User{
		ID:           domain.UserID(id),
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    now(),
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		nameKey := usernameKey(username)
		if _, err := txn.Get(nameKey); err == nil {
			return errors.ErrUserAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set(nameKey, fmt.Appendf(nil, "%d", id)); err != nil {
			return err
		}
		return setJSON(txn, userKey(id), fromUser(user))
	})
	if errors.Is(err, badger.ErrConflict) {
		// A concurrent registration committed the same username first.
		return domain.User{}, fmt.Errorf("%w: %s", errors.ErrUserAlreadyExists, username)
	}
	if err != nil {
		return domain.User{}, errors.Persistence(err)
	}
	return user, nil
}

func (u UserRepository) GetUser(id domain.UserID) (domain.User, error) {
	var user domain.User
	err := u.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = getUser(txn, id)
		return err
	})
	return user, errors.Persistence(err)
}

func (u UserRepository) GetUserByUsername(username string) (domain.User, error) {
	var user domain.User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey(username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		var id int64
		if err = item.Value(func(val []byte) error {
			_, err := fmt.Sscanf(string(val), "%d", &id)
			return err
		}); err != nil {
			return err
		}
		user, err = getUser(txn, domain.UserID(id))
		return err
	})
	return user, errors.Persistence(err)
}

// ListUsers returns every user ordered by id.
func (u UserRepository) ListUsers() ([]domain.User, error) {
	users := []domain.User{}
	err := u.db.View(func(txn *badger.Txn) error {
		return scanValues(txn, []byte("user:id:"), func(val []byte) error {
			var d diskUser
			if err := json.Unmarshal(val, &d); err != nil {
				return err
			}
			users = append(users, d.toUser())
			return nil
		})
	})
	if err != nil {
		return nil, errors.Persistence(err)
	}
	return users, nil
}

func (u UserRepository) UpdatePasswordHash(id domain.UserID, hashedPassword string) (domain.User, error) {
	return u.update(id, func(d *diskUser) { d.PasswordHash = hashedPassword })
}

// UpdateProfilePicture stores the attachment object name shown as the user's picture.
func (u UserRepository) UpdateProfilePicture(id domain.UserID, picture string) (domain.User, error) {
	return u.update(id, func(d *diskUser) { d.ProfilePicture = &picture })
}

func (u UserRepository) update(id domain.UserID, mutate func(d *diskUser)) (domain.User, error) {
	var user domain.User
	err := u.db.Update(func(txn *badger.Txn) error {
		current, err := getUser(txn, id)
		if err != nil {
			return err
		}
		d := fromUser(current)
		mutate(&d)
		if err = setJSON(txn, userKey(int64(id)), d); err != nil {
			return err
		}
		user = d.toUser()
		return nil
	})
	if err != nil {
		return domain.User{}, errors.Persistence(err)
	}
	return user, nil
}

func getUser(txn *badger.Txn, id domain.UserID) (domain.User, error) {
	var d diskUser
	err := getJSON(txn, userKey(int64(id)), &d)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, fmt.Errorf("%w: %d", errors.ErrUserNotFound, id)
	}
	if err != nil {
		return domain.User{}, err
	}
	return d.toUser(), nil
}
