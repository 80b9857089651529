package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndicma/syndic-api/internal/model"
)

func seedUser(t *testing.T, repo *UserRepository, username, email string, role model.Role) *model.User {
	t.Helper()
	perms := model.DefaultUserPermissions()
	if role == model.RoleAdmin {
		perms = model.AdminPermissions()
	}
	u, err := repo.Create(context.Background(), &model.User{
		Username:    username,
		Email:       email,
		Password:    "$2a$10$notarealhashbutlookslikeone",
		Role:        role,
		Permissions: perms,
		IsActive:    true,
	})
	require.NoError(t, err)
	return u
}

func TestUserRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewUserRepository(db)

	u := seedUser(t, repo, "karim", "karim@syndic.ma", model.RoleUser)
	assert.NotZero(t, u.ID)
	assert.True(t, u.Permissions.CanViewDashboard)
	assert.False(t, u.Permissions.CanDeleteClients)
}

func TestUserRepository_GetByLogin(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "sara", "sara@syndic.ma", model.RoleAdmin)

	t.Run("by username", func(t *testing.T) {
		u, err := repo.GetByLogin(ctx, "sara")
		require.NoError(t, err)
		assert.Equal(t, "sara@syndic.ma", u.Email)
	})

	t.Run("by email", func(t *testing.T) {
		u, err := repo.GetByLogin(ctx, "sara@syndic.ma")
		require.NoError(t, err)
		assert.Equal(t, "sara", u.Username)
	})

	t.Run("permissions survive the round trip", func(t *testing.T) {
		u, err := repo.GetByLogin(ctx, "sara")
		require.NoError(t, err)
		assert.True(t, u.Permissions.CanManageSettings)
	})

	t.Run("unknown login", func(t *testing.T) {
		_, err := repo.GetByLogin(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_ExistsByUsernameOrEmail(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "nadia", "nadia@syndic.ma", model.RoleUser)

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "nadia", "other@syndic.ma", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "other", "nadia@syndic.ma", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// editing your own row does not count as a collision
	exists, err = repo.ExistsByUsernameOrEmail(ctx, "nadia", "nadia@syndic.ma", u.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "fresh", "fresh@syndic.ma", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "yassin", "yassin@syndic.ma", model.RoleUser)

	t.Run("partial update", func(t *testing.T) {
		updated, err := repo.Update(ctx, u.ID, map[string]interface{}{
			"is_active": false,
		})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
		assert.Equal(t, "yassin", updated.Username)
	})

	t.Run("permissions column", func(t *testing.T) {
		updated, err := repo.Update(ctx, u.ID, map[string]interface{}{
			"permissions": model.AdminPermissions(),
		})
		require.NoError(t, err)
		assert.True(t, updated.Permissions.CanDeleteUsers)
	})

	t.Run("missing row", func(t *testing.T) {
		_, err := repo.Update(ctx, 9999, map[string]interface{}{"is_active": true})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "hamza", "hamza@syndic.ma", model.RoleUser)
	at := time.Now().Truncate(time.Second)

	require.NoError(t, repo.UpdateLastLogin(ctx, u.ID, at))

	reloaded, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLogin)
	assert.WithinDuration(t, at, *reloaded.LastLogin, time.Second)
}

func TestUserRepository_CountAdmins(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "admin1", "a1@syndic.ma", model.RoleAdmin)
	seedUser(t, repo, "user1", "u1@syndic.ma", model.RoleUser)

	count, err := repo.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
