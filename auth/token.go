package auth

//go:generate go run go.uber.org/mock/mockgen -source=token.go -destination=../mocks/mock_token.go -package=mocks

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "chat-relay"

// Identity is the authenticated principal carried by a verified token.
type Identity struct {
	UserID   domain.UserID
	Username string
	Role     domain.Role
}

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verifier is the single token verification capability shared by
// the socket handshake and the HTTP middleware.
type Verifier interface {
	Verify(token string) (Identity, error)
}

type Issuer interface {
	Issue(user domain.User) (string, error)
}

type TokenManager struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

func NewTokenManager(secret string, duration time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), duration: duration, now: time.Now}
}

// Issue creates a signed HS256 token for a specific user.
func (m *TokenManager) Issue(user domain.User) (string, error) {
	now := m.now()
	claims := &CustomClaims{
		ID:       int64(user.ID),
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrTokenGeneration, err)
	}
	return signed, nil
}

// Verify parses and validates the signature and expiration of a token.
func (m *TokenManager) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, errors.ErrMissingToken
	}
	parsed, err := jwt.ParseWithClaims(token, &CustomClaims{}, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*CustomClaims)
	if !ok || !parsed.Valid || claims.ID <= 0 {
		return Identity{}, errors.ErrInvalidToken
	}
	role := domain.Role(claims.Role)
	if role == "" {
		role = domain.RoleDefault
	}
	return Identity{UserID: domain.UserID(claims.ID), Username: claims.Username, Role: role}, nil
}
