package employees

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-biz/atlas/internal/enums"
	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/shared"
)

type mockRepository struct {
	employees map[int64]*Employee
	nextID    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{employees: make(map[int64]*Employee), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context, q shared.ListQuery) ([]Employee, int, error) {
	out := []Employee{}
	for _, e := range m.employees {
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return Employee{}, httpx.ErrNotFound
	}
	return *e, nil
}

func (m *mockRepository) ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID int64) (bool, error) {
	for _, e := range m.employees {
		if e.EmployeeID == employeeID && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	for _, e := range m.employees {
		if e.Email == email && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) Create(ctx context.Context, e Employee) (Employee, error) {
	e.ID = m.nextID
	m.nextID++
	m.employees[e.ID] = &e
	return e, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, e Employee) error {
	if _, ok := m.employees[id]; !ok {
		return httpx.ErrNotFound
	}
	e.ID = id
	m.employees[id] = &e
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.employees[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.employees, id)
	return nil
}

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	return NewService(repo, enums.NewRegistry()), repo
}

func strPtr(s string) *string { return &s }

func validCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		EmployeeID: "EMP-001",
		Name:       "Ada Okafor",
		Email:      "ada@atlas.test",
		Department: "Engineering",
		Role:       "Manager",
		Status:     "Active",
	}
}

func TestCreateEmployee(t *testing.T) {
	svc, repo := newTestService()

	e, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "Engineering", e.Department)
	assert.Equal(t, "Manager", e.Role)
	assert.Equal(t, "Active", e.Status)

	// Stored values are codes, not labels.
	stored := repo.employees[e.ID]
	assert.Equal(t, "ENGINEERING", stored.Department)
	assert.Equal(t, "MANAGER", stored.Role)
	assert.Equal(t, "ACTIVE", stored.Status)
}

func TestCreateEmployeeUnknownDepartment(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Department = "Astronomy"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateEmployeeDuplicateEmployeeID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	req := validCreateRequest()
	req.Email = "other@atlas.test"
	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	req := validCreateRequest()
	req.EmployeeID = "EMP-002"
	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestUpdateEmployeeMergesAbsentFields(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateEmployeeRequest{
		Department: strPtr("Finance"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Finance", updated.Department)
	assert.Equal(t, "Ada Okafor", updated.Name)
	assert.Equal(t, "ada@atlas.test", updated.Email)
	assert.Equal(t, "Manager", updated.Role)
	assert.Equal(t, "FINANCE", repo.employees[created.ID].Department)
}

func TestUpdateEmployeeUnknownStatus(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, UpdateEmployeeRequest{
		Status: strPtr("Retired"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestUpdateEmployeeEmailTakenByOther(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	second := validCreateRequest()
	second.EmployeeID = "EMP-002"
	second.Email = "tunde@atlas.test"
	other, err := svc.Create(context.Background(), second)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), other.ID, UpdateEmployeeRequest{
		Email: strPtr(first.Email),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestUpdateEmployeeKeepsOwnEmail(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, UpdateEmployeeRequest{
		Email: strPtr(created.Email),
	})
	assert.NoError(t, err)
}

func TestUpdateEmployeeHiredAt(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	hired := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Update(context.Background(), created.ID, UpdateEmployeeRequest{HiredAt: &hired})
	require.NoError(t, err)
	require.NotNil(t, repo.employees[created.ID].HiredAt)
	assert.True(t, repo.employees[created.ID].HiredAt.Equal(hired))
}

func TestDeleteEmployee(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.employees)

	err = svc.Delete(context.Background(), created.ID)
	assert.True(t, errors.Is(err, httpx.ErrNotFound))
}
