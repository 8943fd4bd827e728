package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/corebitlabs/auth-api/internal/apperr"
	"github.com/corebitlabs/auth-api/internal/dto"
	"github.com/corebitlabs/auth-api/internal/repository"
	"github.com/corebitlabs/auth-api/internal/validator"
)

// UserService encapsulates administrative operations for users.
type UserService struct {
	repo        repository.UsersRepository
	encrypter   Encrypter
	phoneRegion string
}

// NewUserService builds a new UserService instance.
func NewUserService(repo repository.UsersRepository, encrypter Encrypter, phoneRegion string) *UserService {
	return &UserService{repo: repo, encrypter: encrypter, phoneRegion: phoneRegion}
}

func (s *UserService) guard() error {
	if s == nil || s.repo == nil || s.encrypter == nil {
		return apperr.ErrInternal
	}
	return nil
}

// ListUsers returns all users as DTOs.
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.UserResponse{
			ID:    u.ID.String(),
			Email: u.Email,
			Role:  u.Role,
			Phone: u.Phone,
		})
	}
	return responses, nil
}

// CreateUser creates a new user with the supplied role.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Role = strings.TrimSpace(req.Role)

	if req.Email == "" {
		return nil, apperr.NewMissingParam("email")
	}
	if req.Password == "" {
		return nil, apperr.NewMissingParam("password")
	}
	if req.Role == "" {
		req.Role = "user"
	}

	var phone *string
	if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" {
		normalized := validator.NormalizePhone(*req.Phone, s.phoneRegion)
		if normalized == "" {
			return nil, apperr.NewInvalidParam("phone")
		}
		phone = &normalized
	}

	hashed, err := s.encrypter.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, req.Email, hashed, req.Role, phone)
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return &dto.UserResponse{ID: user.ID.String(), Email: user.Email, Role: user.Role, Phone: user.Phone}, nil
}

// UpdateUser applies a partial update to the identified user.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	var passwordHash *string
	if req.Password != nil {
		if *req.Password == "" {
			return nil, apperr.NewMissingParam("password")
		}
		hashed, err := s.encrypter.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		passwordHash = &hashed
	}

	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		if normalized == "" {
			return nil, apperr.NewMissingParam("email")
		}
		req.Email = &normalized
	}

	user, err := s.repo.Update(ctx, id, req.Email, passwordHash, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return &dto.UserResponse{ID: user.ID.String(), Email: user.Email, Role: user.Role, Phone: user.Phone}, nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
