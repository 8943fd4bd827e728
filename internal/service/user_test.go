package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/corebitlabs/auth-api/internal/apperr"
	"github.com/corebitlabs/auth-api/internal/crypto"
	"github.com/corebitlabs/auth-api/internal/dto"
	"github.com/corebitlabs/auth-api/internal/entity"
	"github.com/corebitlabs/auth-api/internal/repository"
)

type mockUsersRepository struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	create      func(ctx context.Context, email, passwordHash, role string, phone *string) (*entity.User, error)
	list        func(ctx context.Context) ([]entity.User, error)
	update      func(ctx context.Context, id uuid.UUID, email, passwordHash, role *string) (*entity.User, error)
	delete      func(ctx context.Context, id uuid.UUID) error
	updateToken func(ctx context.Context, id uuid.UUID, accessToken string) error
	clearToken  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmail != nil {
		return m.findByEmail(ctx, email)
	}
	return nil, errors.New("findByEmail not implemented")
}

func (m *mockUsersRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("findByID not implemented")
}

func (m *mockUsersRepository) Create(ctx context.Context, email, passwordHash, role string, phone *string) (*entity.User, error) {
	if m.create != nil {
		return m.create(ctx, email, passwordHash, role, phone)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockUsersRepository) List(ctx context.Context) ([]entity.User, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockUsersRepository) Update(ctx context.Context, id uuid.UUID, email, passwordHash, role *string) (*entity.User, error) {
	if m.update != nil {
		return m.update(ctx, id, email, passwordHash, role)
	}
	return nil, errors.New("update not implemented")
}

func (m *mockUsersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("delete not implemented")
}

func (m *mockUsersRepository) UpdateAccessToken(ctx context.Context, id uuid.UUID, accessToken string) error {
	if m.updateToken != nil {
		return m.updateToken(ctx, id, accessToken)
	}
	return errors.New("updateAccessToken not implemented")
}

func (m *mockUsersRepository) ClearAccessToken(ctx context.Context, id uuid.UUID) error {
	if m.clearToken != nil {
		return m.clearToken(ctx, id)
	}
	return errors.New("clearAccessToken not implemented")
}

func TestUserService_ListUsers(t *testing.T) {
	enc := crypto.NewBcryptEncrypter(bcrypt.MinCost)
	repo := &mockUsersRepository{
		list: func(ctx context.Context) ([]entity.User, error) {
			return []entity.User{
				{ID: uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"), Email: "admin@example.com", Role: "admin"},
			}, nil
		},
	}

	users, err := NewUserService(repo, enc, "US").ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].Email != "admin@example.com" || users[0].Role != "admin" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestUserService_CreateUser(t *testing.T) {
	enc := crypto.NewBcryptEncrypter(bcrypt.MinCost)

	tests := map[string]struct {
		req       dto.CreateUserRequest
		repo      repository.UsersRepository
		expectErr error
	}{
		"missing email": {
			req:       dto.CreateUserRequest{Password: "password123"},
			repo:      &mockUsersRepository{},
			expectErr: apperr.NewMissingParam("email"),
		},
		"missing password": {
			req:       dto.CreateUserRequest{Email: "john@example.com"},
			repo:      &mockUsersRepository{},
			expectErr: apperr.NewMissingParam("password"),
		},
		"duplicate email": {
			req: dto.CreateUserRequest{Email: "john@example.com", Password: "password123"},
			repo: &mockUsersRepository{
				create: func(ctx context.Context, email, passwordHash, role string, phone *string) (*entity.User, error) {
					return nil, repository.ErrEmailDuplicate
				},
			},
			expectErr: ErrEmailAlreadyExists,
		},
		"role fallback": {
			req: dto.CreateUserRequest{Email: "john@example.com", Password: "password123"},
			repo: &mockUsersRepository{
				create: func(ctx context.Context, email, passwordHash, role string, phone *string) (*entity.User, error) {
					if role != "user" {
						return nil, errors.New("expected default role, got " + role)
					}
					return &entity.User{ID: uuid.New(), Email: email, Role: role}, nil
				},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			user, err := NewUserService(tt.repo, enc, "US").CreateUser(context.Background(), tt.req)
			if tt.expectErr != nil {
				if err == nil || err.Error() != tt.expectErr.Error() {
					t.Fatalf("expected error %v, got %v", tt.expectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user == nil || user.Email != "john@example.com" {
				t.Fatalf("unexpected user: %+v", user)
			}
		})
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	enc := crypto.NewBcryptEncrypter(bcrypt.MinCost)
	id := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	repo := &mockUsersRepository{
		update: func(ctx context.Context, got uuid.UUID, email, passwordHash, role *string) (*entity.User, error) {
			if got != id {
				return nil, repository.ErrUserNotFound
			}
			if passwordHash != nil && *passwordHash == "newpassword" {
				return nil, errors.New("password stored in plaintext")
			}
			resp := &entity.User{ID: id, Email: "john@example.com", Role: "user"}
			if email != nil {
				resp.Email = *email
			}
			if role != nil {
				resp.Role = *role
			}
			return resp, nil
		},
	}
	service := NewUserService(repo, enc, "US")

	email := " John@Example.com "
	password := "newpassword"
	role := "admin"
	user, err := service.UpdateUser(context.Background(), id, dto.UpdateUserRequest{Email: &email, Password: &password, Role: &role})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "john@example.com" || user.Role != "admin" {
		t.Fatalf("unexpected user: %+v", user)
	}

	empty := ""
	if _, err := service.UpdateUser(context.Background(), id, dto.UpdateUserRequest{Password: &empty}); !apperr.IsMissingParam(err) {
		t.Fatalf("expected missing param for empty password, got %v", err)
	}
	if _, err := service.UpdateUser(context.Background(), uuid.New(), dto.UpdateUserRequest{Role: &role}); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	enc := crypto.NewBcryptEncrypter(bcrypt.MinCost)
	repo := &mockUsersRepository{
		delete: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	if err := NewUserService(repo, enc, "US").DeleteUser(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserService_DependencyGuard(t *testing.T) {
	if _, err := NewUserService(nil, crypto.NewBcryptEncrypter(bcrypt.MinCost), "US").ListUsers(context.Background()); !errors.Is(err, apperr.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if _, err := NewUserService(&mockUsersRepository{}, nil, "US").ListUsers(context.Background()); !errors.Is(err, apperr.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
