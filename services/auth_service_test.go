package services_test

import (
	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"
	"chat-relay/services"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIUserRepository(ctrl)
	mockIndex := mocks.NewMockIUserIndex(ctrl)
	svc := services.NewAuthService(slog.Default(), mockRepo, auth.NewTokenManager("secret", time.Hour), mockIndex)

	t.Run("should register and index the user when input is valid", func(t *testing.T) {
		req := require.New(t)
		created := domain.User{ID: 1, Username: "alice", Role: domain.RoleDefault}

		// The repository receives a hash, never the plain password
		mockRepo.EXPECT().
			CreateUser("alice", gomock.Not("ComplexPass123!"), domain.RoleDefault).
			Return(created, nil).
			Times(1)
		mockIndex.EXPECT().Index(created).Return(nil).Times(1)

		user, err := svc.Register("alice", "ComplexPass123!")

		req.NoError(err)
		req.Equal(created, user)
	})

	t.Run("should fail when password complexity is not met", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Register("alice", "simple")

		req.ErrorIs(err, errors.ErrValidation)
	})

	t.Run("should fail when user already exists in repository", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			CreateUser("alice", gomock.Any(), domain.RoleDefault).
			Return(domain.User{}, errors.ErrUserAlreadyExists).
			Times(1)
		mockIndex.EXPECT().Index(gomock.Any()).Times(0)

		_, err := svc.Register("alice", "ComplexPass123!")

		req.ErrorIs(err, errors.ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIUserRepository(ctrl)
	tokens := auth.NewTokenManager("secret", time.Hour)
	svc := services.NewAuthService(slog.Default(), mockRepo, tokens, mocks.NewMockIUserIndex(ctrl))

	hash, err := auth.HashPassword("ComplexPass123!")
	require.NoError(t, err)
	stored := domain.User{ID: 7, Username: "alice", PasswordHash: hash, Role: domain.RoleAdmin}

	t.Run("should issue a token carrying the identity", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().GetUserByUsername("alice").Return(stored, nil).Times(1)

		token, err := svc.Login("alice", "ComplexPass123!")
		req.NoError(err)

		identity, err := tokens.Verify(token.String())
		req.NoError(err)
		req.Equal(domain.UserID(7), identity.UserID)
		req.Equal(domain.RoleAdmin, identity.Role)
	})

	t.Run("should hide whether the user exists", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().GetUserByUsername("ghost").Return(domain.User{}, errors.ErrUserNotFound).Times(1)
		mockRepo.EXPECT().GetUserByUsername("alice").Return(stored, nil).Times(1)

		_, errUnknown := svc.Login("ghost", "whatever")
		_, errWrong := svc.Login("alice", "WrongPass123!")

		req.ErrorIs(errUnknown, errors.ErrInvalidCredentials)
		req.ErrorIs(errWrong, errors.ErrInvalidCredentials)
	})

	t.Run("should require both fields", func(t *testing.T) {
		req := require.New(t)

		_, err := svc.Login("", "x")
		req.ErrorIs(err, errors.ErrMissingField)
	})
}
