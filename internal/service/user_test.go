package service

import (
	"testing"

	"offerbase/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUserRepository — реестр пользователей в памяти для тестов
type fakeUserRepository struct {
	users map[int64]*model.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[int64]*model.User)}
}

func (f *fakeUserRepository) GetByID(id int64) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) Register(user *model.User) error {
	if _, ok := f.users[user.UserID]; ok {
		return nil // first write wins
	}
	stored := *user
	f.users[user.UserID] = &stored
	return nil
}

func (f *fakeUserRepository) SetRole(id int64, role model.Role) error {
	if user, ok := f.users[id]; ok {
		user.Role = role
	}
	return nil
}

func (f *fakeUserRepository) GetAll() ([]model.User, error) {
	var users []model.User
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, nil
}

const testSuperadminID = int64(777)

func newUserService(repo model.UserRepository) *UserService {
	return NewUserService(repo, testSuperadminID, zap.NewNop())
}

func TestUserService_ResolveRole(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newUserService(repo)

	t.Run("superadmin bypasses the registry", func(t *testing.T) {
		role, known, err := svc.ResolveRole(testSuperadminID)
		require.NoError(t, err)
		assert.True(t, known)
		assert.Equal(t, model.RoleSuperadmin, role)
	})

	t.Run("unknown identity before registration", func(t *testing.T) {
		_, known, err := svc.ResolveRole(100)
		require.NoError(t, err)
		assert.False(t, known)
	})

	t.Run("role persists after registration", func(t *testing.T) {
		require.NoError(t, svc.Register(100, "manager_one", model.RoleManager))

		role, known, err := svc.ResolveRole(100)
		require.NoError(t, err)
		assert.True(t, known)
		assert.Equal(t, model.RoleManager, role)
	})
}

func TestUserService_Register_FirstWriteWins(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newUserService(repo)

	require.NoError(t, svc.Register(100, "first", model.RoleManager))
	require.NoError(t, svc.Register(100, "second", model.RoleAdmin))

	role, _, err := svc.ResolveRole(100)
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, role)
	assert.Equal(t, "first", repo.users[100].Username)
}

func TestUserService_SetRole(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newUserService(repo)

	require.NoError(t, svc.Register(100, "someone", model.RoleUser))
	require.NoError(t, svc.SetRole(100, model.RoleBanned))

	role, _, err := svc.ResolveRole(100)
	require.NoError(t, err)
	assert.Equal(t, model.RoleBanned, role)
}

func TestUserService_SetRole_SuperadminImmutable(t *testing.T) {
	svc := newUserService(newFakeUserRepository())

	err := svc.SetRole(testSuperadminID, model.RoleBanned)
	assert.ErrorIs(t, err, ErrSuperadminImmutable)

	role, _, err := svc.ResolveRole(testSuperadminID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperadmin, role)
}
