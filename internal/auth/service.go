package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database/tokens"
	"github.com/mrlokans/bookstore/internal/database/users"
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/validation"
)

var (
	// ErrUnauthorized is returned for any credential failure at login.
	// Deliberately identical for unknown email and wrong password so callers
	// cannot enumerate registered accounts.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

var registerRules = validation.Rules{
	"name":     {Required: true, Kind: validation.KindString},
	"email":    {Required: true, Kind: validation.KindEmail},
	"password": {Required: true, Kind: validation.KindString},
}

var loginRules = validation.Rules{
	"email":    {Required: true, Kind: validation.KindEmail},
	"password": {Required: true, Kind: validation.KindString},
}

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is the payload for logging in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the result of a successful register or login: the user plus a
// freshly issued bearer token.
type Session struct {
	User      *entities.User
	Token     string
	TokenType string
}

// Service handles registration, login, logout and token resolution.
type Service struct {
	users  *users.Repository
	tokens *tokens.Repository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(users *users.Repository, tokens *tokens.Repository, cfg config.Auth) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		config: cfg,
	}
}

// Register validates the input, creates the user with a hashed password and
// issues a first token. On validation failure nothing is written.
func (s *Service) Register(in RegisterInput) (*Session, error) {
	errs := validation.Check(map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
	}, registerRules)

	// Uniqueness check only once the email is syntactically valid.
	if len(errs["email"]) == 0 && in.Email != "" {
		taken, err := s.users.EmailTaken(in.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if taken {
			errs["email"] = append(errs["email"], "The email has already been taken.")
		}
	}

	if errs.Any() {
		return nil, &validation.Error{Fields: errs}
	}

	passwordHash, err := HashPassword(in.Password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueSession(user)
}

// Login validates the credentials and issues a new token. Prior tokens stay
// valid. Any credential failure maps to ErrUnauthorized.
func (s *Service) Login(in Credentials) (*Session, error) {
	errs := validation.Check(map[string]string{
		"email":    in.Email,
		"password": in.Password,
	}, loginRules)
	if errs.Any() {
		return nil, &validation.Error{Fields: errs}
	}

	user, err := s.users.GetByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(in.Password, user.PasswordHash); err != nil {
		return nil, ErrUnauthorized
	}

	return s.issueSession(user)
}

// Logout revokes every token issued to the user, not just the one presented
// with the current request. The user id comes from the verified token lookup
// in the middleware, never from ambient state.
func (s *Service) Logout(userID uint) error {
	if err := s.tokens.RevokeAllForUser(userID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}

// Authenticate resolves a plaintext bearer token to its user, enforcing the
// configured token expiry.
func (s *Service) Authenticate(token string) (*entities.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	row, err := s.tokens.GetByHash(HashToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if s.config.TokenExpiry > 0 && time.Since(row.CreatedAt) > s.config.TokenExpiry {
		return nil, ErrTokenExpired
	}

	return &row.User, nil
}

func (s *Service) issueSession(user *entities.User) (*Session, error) {
	plaintext, hash, err := GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if _, err := s.tokens.Create(user.ID, hash); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}

	return &Session{
		User:      user,
		Token:     plaintext,
		TokenType: "Bearer",
	}, nil
}
