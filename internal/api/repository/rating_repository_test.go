package repository

import (
	"testing"

	"prompthub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCalculateAverage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRatingRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	prompt := createTestPrompt(t, db, alice.ID, "rated", true)

	require.NoError(t, repo.Create(&models.Rating{UserID: alice.ID, PromptID: prompt.ID, Score: 5}))
	require.NoError(t, repo.Create(&models.Rating{UserID: bob.ID, PromptID: prompt.ID, Score: 2}))

	average, count, err := repo.CalculateAverage(prompt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.InDelta(t, 3.5, average, 0.001)
}

func TestCalculateAverage_NoRatings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRatingRepository(db)
	alice := createTestUser(t, db, "alice")
	prompt := createTestPrompt(t, db, alice.ID, "unrated", true)

	average, count, err := repo.CalculateAverage(prompt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, float64(0), average)
}

func TestSetPromptAverage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRatingRepository(db)
	alice := createTestUser(t, db, "alice")
	prompt := createTestPrompt(t, db, alice.ID, "rated", true)

	require.NoError(t, repo.SetPromptAverage(prompt.ID, 4.25))

	var got models.Prompt
	require.NoError(t, db.First(&got, prompt.ID).Error)
	assert.InDelta(t, 4.25, got.AverageRating, 0.001)
}

func TestRatingDelete_Missing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRatingRepository(db)
	alice := createTestUser(t, db, "alice")

	err := repo.Delete(alice.ID, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetByUserAndPrompt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRatingRepository(db)
	alice := createTestUser(t, db, "alice")
	prompt := createTestPrompt(t, db, alice.ID, "rated", true)

	require.NoError(t, repo.Create(&models.Rating{UserID: alice.ID, PromptID: prompt.ID, Score: 4}))

	rating, err := repo.GetByUserAndPrompt(alice.ID, prompt.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Score)

	_, err = repo.GetByUserAndPrompt("nobody", prompt.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
