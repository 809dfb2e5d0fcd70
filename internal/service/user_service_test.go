package service

import (
	"context"
	"testing"

	"wacdo/internal/auth"
	"wacdo/internal/model"
	"wacdo/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserFixture() (*MockUserRepository, UserService) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, auth.NewHasher(testAuthConfig()), zerolog.Nop())
	return userRepo, svc
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	userRepo, svc := newUserFixture()

	userRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 5
	}).Return(nil)

	user, err := svc.Create(ctx, caller(model.RoleAdministrateur), &model.UserCreateRequest{
		Name:     "Emma Dubois",
		Email:    "emma@wacdo.fr",
		Password: "secret123",
		Role:     model.RolePreparateur,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, model.RolePreparateur, user.Role)
	// The stored value is a hash, never the plain password.
	assert.NotEqual(t, "secret123", user.Password)
	assert.Contains(t, user.Password, "$argon2id$")
}

func TestUserService_Create_DefaultsToAccueil(t *testing.T) {
	ctx := context.Background()
	userRepo, svc := newUserFixture()

	userRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(nil)

	user, err := svc.Create(ctx, caller(model.RoleAdministrateur), &model.UserCreateRequest{
		Name:     "Emma Dubois",
		Email:    "emma@wacdo.fr",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, model.RoleAccueil, user.Role)
}

func TestUserService_Create_AdminOnly(t *testing.T) {
	ctx := context.Background()
	userRepo, svc := newUserFixture()

	for _, role := range []model.Role{model.RoleSuperviseur, model.RolePreparateur, model.RoleAccueil} {
		_, err := svc.Create(ctx, caller(role), &model.UserCreateRequest{
			Name: "X", Email: "x@wacdo.fr", Password: "secret",
		})
		require.Error(t, err, string(role))
		de, ok := model.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, model.KindForbidden, de.Kind)
	}

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	userRepo, svc := newUserFixture()

	userRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(repository.ErrDuplicateEmail)

	_, err := svc.Create(ctx, caller(model.RoleAdministrateur), &model.UserCreateRequest{
		Name: "Emma", Email: "emma@wacdo.fr", Password: "secret",
	})

	require.Error(t, err)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.KindConflict, de.Kind)
}

func TestUserService_UpdateProfile_RestrictedFields(t *testing.T) {
	ctx := context.Background()
	userRepo, svc := newUserFixture()

	name := "New Name"
	role := model.RoleAdministrateur

	t.Run("non-admin cannot change name", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, caller(model.RoleAccueil), &model.UserUpdateRequest{Name: &name})
		require.Error(t, err)
		de, ok := model.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, model.ErrCodeProtectedFields, de.Code)
	})

	t.Run("non-admin cannot change role", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, caller(model.RolePreparateur), &model.UserUpdateRequest{Role: &role})
		require.Error(t, err)
	})

	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_UpdateProfile_EmailAndPassword(t *testing.T) {
	ctx := context.Background()
	userRepo, svc := newUserFixture()

	me := caller(model.RoleAccueil)
	current := &model.User{ID: me.UserID, Name: "Emma", Email: "old@wacdo.fr", Password: "$argon2id$old", Role: model.RoleAccueil}

	email := "new@wacdo.fr"
	password := "new-password"

	userRepo.On("GetByID", ctx, me.UserID).Return(current, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*model.User")).Return(nil)

	user, err := svc.UpdateProfile(ctx, me, &model.UserUpdateRequest{Email: &email, Password: &password})

	require.NoError(t, err)
	assert.Equal(t, "new@wacdo.fr", user.Email)
	assert.NotEqual(t, "$argon2id$old", user.Password)
	// Untouched fields stay as they were.
	assert.Equal(t, "Emma", user.Name)
	assert.Equal(t, model.RoleAccueil, user.Role)
}

func TestUserService_Update_AdminChangesRole(t *testing.T) {
	ctx := context.Background()
	userRepo, svc := newUserFixture()

	current := &model.User{ID: 5, Name: "Lucas", Email: "lucas@wacdo.fr", Role: model.RoleAccueil}
	role := model.RolePreparateur

	userRepo.On("GetByID", ctx, int64(5)).Return(current, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*model.User")).Return(nil)

	user, err := svc.Update(ctx, caller(model.RoleAdministrateur), 5, &model.UserUpdateRequest{Role: &role})

	require.NoError(t, err)
	assert.Equal(t, model.RolePreparateur, user.Role)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	userRepo, svc := newUserFixture()

	userRepo.On("Delete", ctx, int64(5)).Return(true, nil)
	require.NoError(t, svc.Delete(ctx, caller(model.RoleAdministrateur), 5))

	userRepo.On("Delete", ctx, int64(404)).Return(false, nil)
	err := svc.Delete(ctx, caller(model.RoleAdministrateur), 404)
	require.Error(t, err)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.KindNotFound, de.Kind)
}

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()
	userRepo, svc := newUserFixture()

	me := caller(model.RolePreparateur)
	userRepo.On("GetByID", ctx, me.UserID).Return(&model.User{ID: me.UserID, Name: "Lucas"}, nil)

	user, err := svc.GetProfile(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, me.UserID, user.ID)
}
