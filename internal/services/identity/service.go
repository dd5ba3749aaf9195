package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fourline/gameroom/internal/dependencies/clock"
	"github.com/fourline/gameroom/internal/model"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims is the token payload binding a request to a user identity
type Claims struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Config holds configuration for the identity service
type Config struct {
	TokenTTL time.Duration
}

// DefaultConfig returns default identity configuration
func DefaultConfig() Config {
	return Config{
		TokenTTL: time.Hour,
	}
}

// Service issues and verifies signed bearer tokens.
// Expiry is the only bound on validity; no revocation list is kept.
type Service struct {
	secret   []byte
	tokenTTL time.Duration
	clock    clock.Clock
}

// New creates a new identity Service
func New(secret []byte, clk clock.Clock, cfg Config) *Service {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	return &Service{
		secret:   secret,
		tokenTTL: cfg.TokenTTL,
		clock:    clk,
	}
}

// Issue signs a token for the user, carrying id, name and email
func (s *Service) Issue(user *model.User) (string, error) {
	now := s.clock.Now()

	claims := Claims{
		UserID: string(user.ID),
		Name:   user.Name,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses the token and returns the identity it carries.
// Fails with ErrInvalidToken when the signature is invalid, the token is
// malformed, or it is expired.
func (s *Service) Verify(tokenStr string) (*model.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &model.Identity{
		UserID: model.UserID(claims.UserID),
		Name:   claims.Name,
		Email:  claims.Email,
	}, nil
}
