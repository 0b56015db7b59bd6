package users

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/atlas-biz/atlas/internal/enums"
	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/shared"
)

type mockRepository struct {
	users  map[int64]*User
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[int64]*User), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context, q shared.ListQuery) ([]User, int, error) {
	out := []User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (User, error) {
	u, ok := m.users[id]
	if !ok {
		return User{}, httpx.ErrNotFound
	}
	return *u, nil
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return User{}, httpx.ErrNotFound
}

func (m *mockRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) Create(ctx context.Context, u User) (User, error) {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = &u
	return u, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, u User) error {
	if _, ok := m.users[id]; !ok {
		return httpx.ErrNotFound
	}
	u.ID = id
	m.users[id] = &u
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	return NewService(repo, enums.NewRegistry()), repo
}

func strPtr(s string) *string { return &s }

func validCreateRequest() CreateUserRequest {
	return CreateUserRequest{
		Name:     "Nadia Bello",
		Email:    "nadia@atlas.test",
		Password: "correct horse",
		Role:     "Admin",
		Status:   "Active",
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Role)
	assert.Equal(t, "Active", u.Status)

	stored := repo.users[u.ID]
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	body, err := json.Marshal(u)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(body), "password"))
	assert.False(t, strings.Contains(string(body), "Hash"))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestCreateUserShortPassword(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Password = "short"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateUserUnknownRole(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Role = "Overlord"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestUpdateUserMergesAbsentFields(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	originalHash := repo.users[created.ID].PasswordHash

	updated, err := svc.Update(context.Background(), created.ID, UpdateUserRequest{
		Role: strPtr("Staff"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Staff", updated.Role)
	assert.Equal(t, "Nadia Bello", updated.Name)
	assert.Equal(t, originalHash, repo.users[created.ID].PasswordHash)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	originalHash := repo.users[created.ID].PasswordHash

	_, err = svc.Update(context.Background(), created.ID, UpdateUserRequest{
		Password: strPtr("battery staple"),
	})
	require.NoError(t, err)

	stored := repo.users[created.ID]
	assert.NotEqual(t, originalHash, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("battery staple")))
}

func TestUpdateUserEmailTakenByOther(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	second := validCreateRequest()
	second.Email = "kofi@atlas.test"
	other, err := svc.Create(context.Background(), second)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), other.ID, UpdateUserRequest{
		Email: strPtr(first.Email),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), LoginRequest{
		Email:    created.Email,
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Equal(t, "Admin", u.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    created.Email,
		Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@atlas.test",
		Password: "whatever",
	})
	require.Error(t, err)
	// Unknown account must not be distinguishable from a bad password.
	assert.True(t, errors.Is(err, httpx.ErrValidation))
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestDeleteUser(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.users)

	err = svc.Delete(context.Background(), created.ID)
	assert.True(t, errors.Is(err, httpx.ErrNotFound))
}
