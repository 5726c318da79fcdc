package postgresql_test

import (
	"context"
	"testing"

	"github.com/kintai-dev/kintai-backend-go/internal/domain/user"
	"github.com/kintai-dev/kintai-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func createTestUser(t *testing.T, ctx context.Context, repo user.UserRepository, email string, role user.Role) user.User {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	created, err := repo.Create(ctx, user.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hashedPassword),
		Role:         role,
	})
	require.NoError(t, err)
	return created
}

func TestUserRepository_Create_Success(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)

	created := createTestUser(t, ctx, userRepo, "newuser@example.com", user.RoleUser)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "newuser@example.com", created.Email)
	assert.Equal(t, user.RoleUser, created.Role)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)

	createTestUser(t, ctx, userRepo, "dup@example.com", user.RoleUser)

	_, err := userRepo.Create(ctx, user.User{
		Email:        "dup@example.com",
		Name:         "Other",
		PasswordHash: "x",
		Role:         user.RoleUser,
	})

	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)

	created := createTestUser(t, ctx, userRepo, "test@example.com", user.RoleAdmin)

	retrieved, err := userRepo.GetByEmail(ctx, "test@example.com")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	assert.Equal(t, user.RoleAdmin, retrieved.Role)

	_, err = userRepo.GetByEmail(ctx, "notfound@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_List_OrderedByRoleThenName(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)

	createTestUser(t, ctx, userRepo, "user@example.com", user.RoleUser)
	createTestUser(t, ctx, userRepo, "admin@example.com", user.RoleAdmin)

	users, err := userRepo.List(ctx)

	assert.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, user.RoleAdmin, users[0].Role)
	assert.Equal(t, user.RoleUser, users[1].Role)
}

func TestUserRepository_Update_Partial(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)

	created := createTestUser(t, ctx, userRepo, "before@example.com", user.RoleUser)

	newName := "Renamed"
	updated, err := userRepo.Update(ctx, created.ID, user.UserPatch{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	// Untouched fields keep their values.
	assert.Equal(t, "before@example.com", updated.Email)
	assert.Equal(t, user.RoleUser, updated.Role)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)

	created := createTestUser(t, ctx, userRepo, "pw@example.com", user.RoleUser)

	err := userRepo.UpdatePassword(ctx, created.ID, "new-hash")
	assert.NoError(t, err)

	retrieved, err := userRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", retrieved.PasswordHash)

	err = userRepo.UpdatePassword(ctx, "00000000-0000-0000-0000-000000000000", "x")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)

	created := createTestUser(t, ctx, userRepo, "gone@example.com", user.RoleUser)

	err := userRepo.Delete(ctx, created.ID)
	assert.NoError(t, err)

	_, err = userRepo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	err = userRepo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)

	createTestUser(t, ctx, userRepo, "exists@example.com", user.RoleUser)

	exists, err := userRepo.ExistsByEmail(ctx, "exists@example.com")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = userRepo.ExistsByEmail(ctx, "missing@example.com")
	assert.NoError(t, err)
	assert.False(t, exists)
}
