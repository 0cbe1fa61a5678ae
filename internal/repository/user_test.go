package repository

import (
	"context"
	"testing"

	"mindhaven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "sam@example.com", DisplayName: "sam", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByEmail(ctx, "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "sam", got.DisplayName)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "dup@example.com", DisplayName: "a", Password: "x"}))
	err := repo.Create(ctx, &models.User{Email: "dup@example.com", DisplayName: "b", Password: "y"})
	assert.Error(t, err)
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_GetDisplayNames(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "a@example.com", "alpha")
	b := createTestUser(t, db, "b@example.com", "beta")

	names, err := repo.GetDisplayNames(ctx, []uint{a.ID, b.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, "alpha", names[a.ID])
	assert.Equal(t, "beta", names[b.ID])
	_, ok := names[999]
	assert.False(t, ok)

	empty, err := repo.GetDisplayNames(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
