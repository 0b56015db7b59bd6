package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/atlas-biz/atlas/internal/enums"
	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/shared"
)

type Service struct {
	repo     Repository
	registry *enums.Registry
	validate *validator.Validate
}

func NewService(repo Repository, registry *enums.Registry) *Service {
	return &Service{repo: repo, registry: registry, validate: validator.New()}
}

func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]User, int, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		s.projectLabels(&items[i])
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, fmt.Errorf("%w: invalid user id", httpx.ErrValidation)
	}
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	s.projectLabels(&u)
	return u, nil
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (User, error) {
	if err := s.validate.Struct(req); err != nil {
		return User{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	role, ok := s.registry.UserRole.Code(req.Role)
	if !ok {
		return User{}, fmt.Errorf("%w: unknown user role %q", httpx.ErrValidation, req.Role)
	}
	status, ok := s.registry.UserStatus.Code(req.Status)
	if !ok {
		return User{}, fmt.Errorf("%w: unknown user status %q", httpx.ErrValidation, req.Status)
	}

	if exists, err := s.repo.ExistsByEmail(ctx, req.Email, 0); err != nil {
		return User{}, fmt.Errorf("check user email: %w", err)
	} else if exists {
		return User{}, fmt.Errorf("%w: user with email %s", httpx.ErrConflict, req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		Status:       status,
		PasswordHash: string(hash),
	})
	if err != nil {
		return User{}, err
	}
	s.projectLabels(&u)
	return u, nil
}

// Update merges the request into the stored record: absent fields keep
// their existing values. A supplied password is re-hashed.
func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error) {
	if id <= 0 {
		return User{}, fmt.Errorf("%w: invalid user id", httpx.ErrValidation)
	}
	if err := s.validate.Struct(req); err != nil {
		return User{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Email != nil {
		if exists, err := s.repo.ExistsByEmail(ctx, *req.Email, id); err != nil {
			return User{}, fmt.Errorf("check user email: %w", err)
		} else if exists {
			return User{}, fmt.Errorf("%w: user with email %s", httpx.ErrConflict, *req.Email)
		}
		current.Email = *req.Email
	}
	if req.Role != nil {
		code, ok := s.registry.UserRole.Code(*req.Role)
		if !ok {
			return User{}, fmt.Errorf("%w: unknown user role %q", httpx.ErrValidation, *req.Role)
		}
		current.Role = code
	}
	if req.Status != nil {
		code, ok := s.registry.UserStatus.Code(*req.Status)
		if !ok {
			return User{}, fmt.Errorf("%w: unknown user status %q", httpx.ErrValidation, *req.Status)
		}
		current.Status = code
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		current.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, id, current); err != nil {
		return User{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid user id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// Login verifies the credentials and returns the account. Unknown
// email and wrong password report the same error so login cannot be
// used to probe which accounts exist.
func (s *Service) Login(ctx context.Context, req LoginRequest) (User, error) {
	if err := s.validate.Struct(req); err != nil {
		return User{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, httpx.ErrNotFound) {
		return User{}, fmt.Errorf("%w: invalid credentials", httpx.ErrValidation)
	}
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return User{}, fmt.Errorf("%w: invalid credentials", httpx.ErrValidation)
	}
	s.projectLabels(&u)
	return u, nil
}

func (s *Service) projectLabels(u *User) {
	u.Role = s.registry.UserRole.LabelOr(u.Role)
	u.Status = s.registry.UserStatus.LabelOr(u.Status)
}
