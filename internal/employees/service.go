package employees

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

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

func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]Employee, int, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		s.projectLabels(&items[i])
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	if id <= 0 {
		return Employee{}, fmt.Errorf("%w: invalid employee id", httpx.ErrValidation)
	}
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	s.projectLabels(&e)
	return e, nil
}

func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error) {
	if err := s.validate.Struct(req); err != nil {
		return Employee{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	department, ok := s.registry.EmployeeDepartment.Code(req.Department)
	if !ok {
		return Employee{}, fmt.Errorf("%w: unknown department %q", httpx.ErrValidation, req.Department)
	}
	role, ok := s.registry.EmployeeRole.Code(req.Role)
	if !ok {
		return Employee{}, fmt.Errorf("%w: unknown employee role %q", httpx.ErrValidation, req.Role)
	}
	status, ok := s.registry.EmployeeStatus.Code(req.Status)
	if !ok {
		return Employee{}, fmt.Errorf("%w: unknown employee status %q", httpx.ErrValidation, req.Status)
	}

	if exists, err := s.repo.ExistsByEmployeeID(ctx, req.EmployeeID, 0); err != nil {
		return Employee{}, fmt.Errorf("check employee id: %w", err)
	} else if exists {
		return Employee{}, fmt.Errorf("%w: employee with id %s", httpx.ErrConflict, req.EmployeeID)
	}
	if exists, err := s.repo.ExistsByEmail(ctx, req.Email, 0); err != nil {
		return Employee{}, fmt.Errorf("check employee email: %w", err)
	} else if exists {
		return Employee{}, fmt.Errorf("%w: employee with email %s", httpx.ErrConflict, req.Email)
	}

	e, err := s.repo.Create(ctx, Employee{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: department,
		Role:       role,
		Status:     status,
		HiredAt:    req.HiredAt,
	})
	if err != nil {
		return Employee{}, err
	}
	s.projectLabels(&e)
	return e, nil
}

// Update merges the request into the stored record: absent fields keep
// their existing values.
func (s *Service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (Employee, error) {
	if id <= 0 {
		return Employee{}, fmt.Errorf("%w: invalid employee id", httpx.ErrValidation)
	}
	if err := s.validate.Struct(req); err != nil {
		return Employee{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Email != nil {
		if exists, err := s.repo.ExistsByEmail(ctx, *req.Email, id); err != nil {
			return Employee{}, fmt.Errorf("check employee email: %w", err)
		} else if exists {
			return Employee{}, fmt.Errorf("%w: employee with email %s", httpx.ErrConflict, *req.Email)
		}
		current.Email = *req.Email
	}
	if req.Phone != nil {
		current.Phone = req.Phone
	}
	if req.Department != nil {
		code, ok := s.registry.EmployeeDepartment.Code(*req.Department)
		if !ok {
			return Employee{}, fmt.Errorf("%w: unknown department %q", httpx.ErrValidation, *req.Department)
		}
		current.Department = code
	}
	if req.Role != nil {
		code, ok := s.registry.EmployeeRole.Code(*req.Role)
		if !ok {
			return Employee{}, fmt.Errorf("%w: unknown employee role %q", httpx.ErrValidation, *req.Role)
		}
		current.Role = code
	}
	if req.Status != nil {
		code, ok := s.registry.EmployeeStatus.Code(*req.Status)
		if !ok {
			return Employee{}, fmt.Errorf("%w: unknown employee status %q", httpx.ErrValidation, *req.Status)
		}
		current.Status = code
	}
	if req.HiredAt != nil {
		current.HiredAt = req.HiredAt
	}

	if err := s.repo.Update(ctx, id, current); err != nil {
		return Employee{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid employee id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) projectLabels(e *Employee) {
	e.Department = s.registry.EmployeeDepartment.LabelOr(e.Department)
	e.Role = s.registry.EmployeeRole.LabelOr(e.Role)
	e.Status = s.registry.EmployeeStatus.LabelOr(e.Status)
}
