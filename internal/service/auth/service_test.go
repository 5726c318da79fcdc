package auth

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kintai-dev/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-dev/kintai-backend-go/internal/domain/user"
	"github.com/kintai-dev/kintai-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepository struct {
	users map[string]user.User // keyed by id
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]user.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, newUser user.User) (user.User, error) {
	r.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *fakeUserRepository) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepository) List(_ context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepository) Update(_ context.Context, id string, patch user.UserPatch) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	r.users[id] = u
	return u, nil
}

func (r *fakeUserRepository) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	r.users[id] = u
	return nil
}

func (r *fakeUserRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func seedUser(t *testing.T, repo *fakeUserRepository, id, email, password string, role user.Role) user.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	u := user.User{
		ID:           id,
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
		Role:         role,
	}
	repo.users[id] = u
	return u
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "user-1", "login@example.com", "password123", user.RoleUser)
	svc := NewAuthService(repo, jwt.NewJWTService("test-secret", "1h"))

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, "USER", resp.Role)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "user-1", "login@example.com", "password123", user.RoleUser)
	svc := NewAuthService(repo, jwt.NewJWTService("test-secret", "1h"))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepository(), jwt.NewJWTService("test-secret", "1h"))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "user-1", "pw@example.com", "old-password", user.RoleUser)

	jwtService := jwt.NewJWTService("test-secret", "1h")
	svc := NewAuthService(repo, jwtService)

	token, _, err := jwtService.JWTAuth().Encode(map[string]interface{}{"user_id": "user-1"})
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	err = svc.ChangePassword(ctx, auth.ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	})
	require.NoError(t, err)

	// The new password now verifies, the old one no longer does.
	stored := repo.users["user-1"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new-password")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("old-password")))
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "user-1", "pw@example.com", "old-password", user.RoleUser)

	jwtService := jwt.NewJWTService("test-secret", "1h")
	svc := NewAuthService(repo, jwtService)

	token, _, err := jwtService.JWTAuth().Encode(map[string]interface{}{"user_id": "user-1"})
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	err = svc.ChangePassword(ctx, auth.ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "new-password",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
