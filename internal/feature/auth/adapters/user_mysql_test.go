package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"idea_backend/internal/feature/auth/domain"
	"idea_backend/internal/feature/auth/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// Create User table
	err = db.AutoMigrate(&entity.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func seedUser(t *testing.T, repo *userMySQL, email, alias string) *entity.User {
	t.Helper()

	user := &entity.User{
		Name:     "Test User",
		Alias:    alias,
		Email:    email,
		Password: "hashed_password",
		Role:     entity.RoleUser,
	}
	require.NoError(t, repo.Create(context.Background(), user), "failed to seed user")
	return user
}

func TestNewUserMySQL(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserMySQL(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserMySQL_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		user := &entity.User{
			Name:     "Alice",
			Alias:    "alice1",
			Email:    "test@example.com",
			Password: "hashed_password",
			Role:     entity.RoleUser,
		}

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.False(t, user.UpdatedAt.IsZero(), "UpdatedAt is not set")
	})

	t.Run("duplicate email error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)
		seedUser(t, repo, "test@example.com", "alice1")

		dup := &entity.User{
			Name:     "Bob",
			Alias:    "bob1",
			Email:    "test@example.com",
			Password: "hashed_password",
		}
		err := repo.Create(context.Background(), dup)

		assert.ErrorIs(t, err, domain.ErrDuplicateEmail, "duplicate email should map to the domain error")
	})

	t.Run("duplicate alias error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)
		seedUser(t, repo, "test@example.com", "alice1")

		dup := &entity.User{
			Name:     "Bob",
			Alias:    "alice1",
			Email:    "other@example.com",
			Password: "hashed_password",
		}
		err := repo.Create(context.Background(), dup)

		assert.ErrorIs(t, err, domain.ErrDuplicateAlias, "duplicate alias should map to the domain error")
	})
}

func TestUserMySQL_FindByEmail(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)
		seeded := seedUser(t, repo, "test@example.com", "alice1")

		found, err := repo.FindByEmail(context.Background(), "test@example.com")

		require.NoError(t, err, "failed to find user")
		assert.Equal(t, seeded.ID, found.ID)
		assert.Equal(t, "alice1", found.Alias)
	})

	t.Run("missing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserMySQL_FindByAlias(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)
		seeded := seedUser(t, repo, "test@example.com", "alice1")

		found, err := repo.FindByAlias(context.Background(), "alice1")

		require.NoError(t, err, "failed to find user")
		assert.Equal(t, seeded.ID, found.ID)
	})

	t.Run("missing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		_, err := repo.FindByAlias(context.Background(), "ghost")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserMySQL_FindByID(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)
		seeded := seedUser(t, repo, "test@example.com", "alice1")

		found, err := repo.FindByID(context.Background(), seeded.ID)

		require.NoError(t, err, "failed to find user")
		assert.Equal(t, "test@example.com", found.Email)
	})

	t.Run("missing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		_, err := repo.FindByID(context.Background(), 12345)

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserMySQL_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserMySQL(db)
	seedUser(t, repo, "a@example.com", "alice1")
	seedUser(t, repo, "b@example.com", "bob1")

	users, err := repo.FindAll(context.Background())

	require.NoError(t, err, "failed to list users")
	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, "b@example.com", users[1].Email)
}

func TestUserMySQL_Update(t *testing.T) {
	t.Run("fields are persisted", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)
		seeded := seedUser(t, repo, "test@example.com", "alice1")

		seeded.Name = "Renamed"
		seeded.LastLogin = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		err := repo.Update(context.Background(), seeded)
		require.NoError(t, err, "failed to update user")

		found, err := repo.FindByID(context.Background(), seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", found.Name)
		assert.True(t, found.LastLogin.Equal(seeded.LastLogin), "lastLogin should be persisted")
	})

	t.Run("update into taken email maps to conflict", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)
		seedUser(t, repo, "a@example.com", "alice1")
		second := seedUser(t, repo, "b@example.com", "bob1")

		second.Email = "a@example.com"
		err := repo.Update(context.Background(), second)

		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestUserMySQL_Delete(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)
		seeded := seedUser(t, repo, "test@example.com", "alice1")

		err := repo.Delete(context.Background(), seeded.ID)
		require.NoError(t, err, "failed to delete user")

		_, err = repo.FindByID(context.Background(), seeded.ID)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("missing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		err := repo.Delete(context.Background(), 12345)

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
