//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
	"chat-relay/search"
	"fmt"
	"log/slog"
)

type IAuthService interface {
	Register(username, password string) (domain.User, error)
	Login(username, password string) (Token, error)
}

type Token string

func (t Token) String() string {
	return string(t)
}

type AuthService struct {
	log            *slog.Logger
	userRepository repositories.IUserRepository
	issuer         auth.Issuer
	index          search.IUserIndex
}

func NewAuthService(log *slog.Logger, repo repositories.IUserRepository, issuer auth.Issuer, index search.IUserIndex) *AuthService {
	return &AuthService{log: log, userRepository: repo, issuer: issuer, index: index}
}

func (s *AuthService) Register(username, password string) (domain.User, error) {
	// Business rules are checked before any expensive cryptographic operation.
	if err := auth.ValidateRegister(auth.RegisterRequest{Username: username, Password: password}); err != nil {
		return domain.User{}, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing failed: %w", err)
	}

	user, err := s.userRepository.CreateUser(username, hashedPassword, domain.RoleDefault)
	if err != nil {
		return domain.User{}, err
	}

	if err = s.index.Index(user); err != nil {
		s.log.Warn("User not indexed", "user_id", user.ID, "error", err)
	}
	s.log.Info("User registered", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) Login(username, password string) (Token, error) {
	if err := auth.ValidateLogin(auth.LoginRequest{Username: username, Password: password}); err != nil {
		return "", err
	}

	user, err := s.userRepository.GetUserByUsername(username)
	if errors.Is(err, errors.ErrNotFound) {
		// Same answer as a wrong password to prevent user enumeration
		return "", errors.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", err
	}
	return Token(token), nil
}
