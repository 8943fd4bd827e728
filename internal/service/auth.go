package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/corebitlabs/auth-api/internal/apperr"
	"github.com/corebitlabs/auth-api/internal/entity"
	"github.com/corebitlabs/auth-api/internal/repository"
	"github.com/corebitlabs/auth-api/internal/validator"
)

// ErrEmailAlreadyExists is returned when registering an email that is taken.
var ErrEmailAlreadyExists = errors.New("email already exists")

// UserStore is the subset of repository behaviour the auth flows read from.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Create(ctx context.Context, email, passwordHash, role string, phone *string) (*entity.User, error)
}

// AccessTokenStore persists the single active token per user.
type AccessTokenStore interface {
	UpdateAccessToken(ctx context.Context, id uuid.UUID, accessToken string) error
	ClearAccessToken(ctx context.Context, id uuid.UUID) error
}

// Encrypter hashes passwords and compares plaintexts against stored hashes.
type Encrypter interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) bool
}

// TokenGenerator issues signed access tokens.
type TokenGenerator interface {
	GenerateToken(subject, email, role string) (string, error)
}

// AuthService coordinates credential validation and token issuance.
type AuthService struct {
	users       UserStore
	tokens      AccessTokenStore
	encrypter   Encrypter
	generator   TokenGenerator
	phoneRegion string
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users UserStore, tokens AccessTokenStore, encrypter Encrypter, generator TokenGenerator, phoneRegion string) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		encrypter:   encrypter,
		generator:   generator,
		phoneRegion: phoneRegion,
	}
}

// guard verifies every injected collaborator is present. A missing dependency
// is a wiring fault and surfaces as the opaque internal error, never a panic.
func (s *AuthService) guard() error {
	if s == nil || s.users == nil || s.tokens == nil || s.encrypter == nil || s.generator == nil {
		return apperr.ErrInternal
	}
	return nil
}

// Login validates credentials and returns a signed access token. "No such
// user" and "wrong password" are deliberately indistinguishable: both return
// apperr.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	// Presence checks come before the dependency guard: a caller error is
	// reported as such even when the service is mis-wired.
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperr.NewMissingParam("email")
	}
	if password == "" {
		return "", apperr.NewMissingParam("password")
	}

	if err := s.guard(); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperr.ErrInvalidCredentials
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	if !s.encrypter.Compare(user.PasswordHash, password) {
		return "", apperr.ErrInvalidCredentials
	}

	token, err := s.generator.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	if err := s.tokens.UpdateAccessToken(ctx, user.ID, token); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}

	return token, nil
}

// Register creates a user with role "user" and logs it in immediately.
func (s *AuthService) Register(ctx context.Context, email, password string, phone *string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperr.NewMissingParam("email")
	}
	if password == "" {
		return "", apperr.NewMissingParam("password")
	}
	if len(password) < 8 {
		return "", apperr.NewInvalidParam("password")
	}

	if err := s.guard(); err != nil {
		return "", err
	}

	var normalizedPhone *string
	if phone != nil && strings.TrimSpace(*phone) != "" {
		normalized := validator.NormalizePhone(*phone, s.phoneRegion)
		if normalized == "" {
			return "", apperr.NewInvalidParam("phone")
		}
		normalizedPhone = &normalized
	}

	hashed, err := s.encrypter.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, hashed, "user", normalizedPhone)
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return "", ErrEmailAlreadyExists
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.generator.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	if err := s.tokens.UpdateAccessToken(ctx, user.ID, token); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}

	return token, nil
}

// Logout revokes the active access token for the user.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.tokens.ClearAccessToken(ctx, userID); err != nil {
		if apperr.IsParamError(err) || errors.Is(err, repository.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// CurrentUser returns the profile behind a verified token subject.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
