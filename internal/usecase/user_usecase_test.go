package usecase

import (
	"context"
	"testing"
	"time"

	"employee-portal/internal/apperror"
	"employee-portal/internal/model"
	"employee-portal/internal/repository"
	"employee-portal/internal/token"
	"employee-portal/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUsers(t *testing.T) (*UserUsecase, *token.Manager) {
	tokens := token.NewManager("test-secret", time.Hour)
	u := NewUserUsecase(repository.NewUserRepository(newTestDB(t)), tokens)
	u.hashCost = bcrypt.MinCost
	return u, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	u, tokens := newUsers(t)
	ctx := context.Background()

	user, err := u.Register(ctx, RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "pass"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "pass", user.Password)

	res, err := u.Login(ctx, LoginInput{Username: "alice", Password: "pass"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.User.ID)

	id, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, token.Identity{UserID: user.ID, Username: "alice", Role: model.RoleUser}, id)

	me, err := u.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	u, _ := newUsers(t)
	ctx := context.Background()

	_, err := u.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pass"})
	require.NoError(t, err)

	_, err = u.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = u.Login(ctx, LoginInput{Username: "nobody", Password: "pass"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	_, err = u.Login(ctx, LoginInput{})
	assert.ErrorIs(t, err, validation.ErrInvalidInput)
}

func TestCreateUserRules(t *testing.T) {
	u, _ := newUsers(t)
	ctx := context.Background()

	_, err := u.CreateUser(ctx, CreateUserInput{Username: "bob", Email: "bob@example.com", Password: "1234", Role: "admin"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		in      CreateUserInput
		wantErr error
	}{
		{"bad username", CreateUserInput{Username: "bob smith", Email: "x@example.com", Password: "1234", Role: "user"}, validation.ErrInvalidInput},
		{"bad email", CreateUserInput{Username: "carol", Email: "carol", Password: "1234", Role: "user"}, validation.ErrInvalidInput},
		{"short password", CreateUserInput{Username: "carol", Email: "carol@example.com", Password: "123", Role: "user"}, validation.ErrInvalidInput},
		{"bad role", CreateUserInput{Username: "carol", Email: "carol@example.com", Password: "1234", Role: "root"}, validation.ErrInvalidInput},
		{"taken username", CreateUserInput{Username: "bob", Email: "other@example.com", Password: "1234", Role: "user"}, model.ErrUsernameTaken},
		{"taken email", CreateUserInput{Username: "bobby", Email: "BOB@example.com", Password: "1234", Role: "user"}, model.ErrEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.CreateUser(ctx, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRepositoryMapsDuplicateUsers(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "dave", Email: "dave@example.com", Password: "x", Role: model.RoleUser}))
	assert.ErrorIs(t, repo.Create(ctx, &model.User{Username: "dave", Email: "d2@example.com", Password: "x", Role: model.RoleUser}), model.ErrUsernameTaken)
	assert.ErrorIs(t, repo.Create(ctx, &model.User{Username: "dave2", Email: "dave@example.com", Password: "x", Role: model.RoleUser}), model.ErrEmailTaken)
}

func TestListUsersAndChangeRole(t *testing.T) {
	u, _ := newUsers(t)
	ctx := context.Background()

	admin, _, err := u.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123")
	require.NoError(t, err)
	alice, err := u.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pass"})
	require.NoError(t, err)

	list, err := u.ListUsers(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].Username)

	list, err = u.ListUsers(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = u.ListUsers(ctx, "root")
	assert.ErrorIs(t, err, model.ErrInvalidRole)

	adminID := token.Identity{UserID: admin.ID, Username: admin.Username, Role: model.RoleAdmin}

	_, err = u.ChangeRole(ctx, adminID, admin.ID, "user")
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = u.ChangeRole(ctx, identity(alice.ID, "alice"), alice.ID, "admin")
	assert.ErrorIs(t, err, model.ErrAdminOnly)

	_, err = u.ChangeRole(ctx, adminID, 404, "admin")
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	promoted, err := u.ChangeRole(ctx, adminID, alice.ID, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, promoted.Role)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	u, _ := newUsers(t)
	ctx := context.Background()

	first, created, err := u.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.RoleAdmin, first.Role)

	again, created, err := u.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	// an existing regular account with the admin name is promoted
	_, err = u.Register(ctx, RegisterInput{Username: "boss", Email: "boss@example.com", Password: "pass"})
	require.NoError(t, err)
	boss, created, err := u.EnsureAdmin(ctx, "boss", "boss@example.com", "pass")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, model.RoleAdmin, boss.Role)
}
