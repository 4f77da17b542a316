//go:generate go run go.uber.org/mock/mockgen -source=user_service.go -destination=../mocks/mock_user_service.go -package=mocks
package services

import (
	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/domain/mimetypes"
	"chat-relay/errors"
	"chat-relay/repositories"
	"chat-relay/search"
	"chat-relay/storage"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

const searchLimit = 50

type IUserService interface {
	SearchUsers(ctx context.Context, identity auth.Identity, term string) ([]domain.UserSummary, error)
	ListUsers(identity auth.Identity) ([]domain.User, error)
	GetByUsername(username string) (domain.User, error)
	UpdatePassword(identity auth.Identity, cmd domain.UpdatePasswordCommand) error
	UpdateProfilePicture(ctx context.Context, identity auth.Identity, cmd domain.UpdateProfilePictureCommand) (domain.User, error)
}

type UserService struct {
	log         *slog.Logger
	users       repositories.IUserRepository
	index       search.IUserIndex
	attachments storage.AttachmentStore
	policy      *auth.Policy
	validate    *validator.Validate
}

func NewUserService(log *slog.Logger,
	users repositories.IUserRepository,
	index search.IUserIndex,
	attachments storage.AttachmentStore,
	policy *auth.Policy) *UserService {
	return &UserService{
		log:         log,
		users:       users,
		index:       index,
		attachments: attachments,
		policy:      policy,
		validate:    validator.New(),
	}
}

// SearchUsers returns the users whose username contains term, ordered by id.
// No match is reported as ErrUserNotFound.
func (s *UserService) SearchUsers(ctx context.Context, identity auth.Identity, term string) ([]domain.UserSummary, error) {
	if err := s.policy.Authorize(identity, auth.ActionSearchUsers); err != nil {
		return nil, err
	}
	ids, err := s.index.Search(ctx, term, searchLimit)
	if err != nil {
		return nil, errors.Persistence(err)
	}
	slices.Sort(ids)

	summaries := make([]domain.UserSummary, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetUser(id)
		if errors.Is(err, errors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, user.Summary())
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("%w: no username contains %q", errors.ErrUserNotFound, term)
	}
	return summaries, nil
}

func (s *UserService) ListUsers(identity auth.Identity) ([]domain.User, error) {
	if err := s.policy.Authorize(identity, auth.ActionListUsers); err != nil {
		return nil, err
	}
	return s.users.ListUsers()
}

// GetByUsername looks a user up by exact username.
func (s *UserService) GetByUsername(username string) (domain.User, error) {
	if username == "" {
		return domain.User{}, fmt.Errorf("%w: username is required", errors.ErrMissingField)
	}
	return s.users.GetUserByUsername(username)
}

// UpdatePassword stores a new hash once the current password matches.
// Callers may only change their own password unless the policy says otherwise.
func (s *UserService) UpdatePassword(identity auth.Identity, cmd domain.UpdatePasswordCommand) error {
	if err := s.validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: username and passwords are required", errors.ErrMissingField)
	}
	if err := auth.ValidateNewPassword(cmd.NewPassword); err != nil {
		return err
	}

	user, err := s.users.GetUserByUsername(cmd.Username)
	if err != nil {
		return err
	}
	if err = s.policy.AuthorizeOwner(identity, user.ID); err != nil {
		return err
	}
	match, err := auth.ComparePassword(cmd.Password, user.PasswordHash)
	if err != nil || !match {
		return errors.ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("hashing failed: %w", err)
	}
	if _, err = s.users.UpdatePasswordHash(user.ID, hashedPassword); err != nil {
		return err
	}
	s.log.Info("Password updated", "user_id", user.ID)
	return nil
}

// UpdateProfilePicture stores an image upload and makes it the user's picture.
// The stored object name is what chat payloads expose as profile_picture.
func (s *UserService) UpdateProfilePicture(ctx context.Context, identity auth.Identity,
	cmd domain.UpdateProfilePictureCommand) (domain.User, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return domain.User{}, fmt.Errorf("%w: username and file are required", errors.ErrMissingField)
	}
	if detected := mimetypes.Parse(mimetype.Detect(cmd.Content).String()); !detected.IsImage() {
		return domain.User{}, fmt.Errorf("%w: profile picture must be an image, got %s", errors.ErrValidation, detected)
	}

	user, err := s.users.GetUserByUsername(cmd.Username)
	if err != nil {
		return domain.User{}, err
	}
	if err = s.policy.AuthorizeOwner(identity, user.ID); err != nil {
		return domain.User{}, err
	}

	attachment, err := s.attachments.Save(ctx, cmd.Filename, cmd.Content)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: storing profile picture: %v", errors.ErrIO, err)
	}
	updated, err := s.users.UpdateProfilePicture(user.ID, attachment.Name)
	if err != nil {
		return domain.User{}, err
	}
	s.log.Info("Profile picture updated", "user_id", user.ID, "picture", attachment.Name, "size", attachment.Size)
	return updated, nil
}
