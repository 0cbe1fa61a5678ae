package repository

import (
	"context"
	"testing"

	"mindhaven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommunityRepository_ListSortedByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommunityRepository(db)
	ctx := context.Background()

	createTestCommunity(t, db, "Student Life")
	createTestCommunity(t, db, "Anxiety Support")

	communities, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, communities, 2)
	assert.Equal(t, "Anxiety Support", communities[0].Name)
	assert.Equal(t, "Student Life", communities[1].Name)
}

func TestCommunityRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommunityRepository(db)

	_, err := repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCommunityRepository_IncrementMemberCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommunityRepository(db)
	ctx := context.Background()

	community := createTestCommunity(t, db, "General Wellbeing")

	require.NoError(t, repo.IncrementMemberCount(ctx, community.ID, 1))
	require.NoError(t, repo.IncrementMemberCount(ctx, community.ID, 1))
	require.NoError(t, repo.IncrementMemberCount(ctx, community.ID, -1))

	var got models.Community
	require.NoError(t, db.First(&got, community.ID).Error)
	assert.Equal(t, 1, got.MemberCount)
}
