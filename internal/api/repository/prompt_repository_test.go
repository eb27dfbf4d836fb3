package repository

import (
	"fmt"
	"testing"

	"prompthub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Prompt{},
		&models.Comment{},
		&models.Notification{},
		&models.Rating{},
		&models.PromptLike{},
		&models.Follow{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPrompt(t *testing.T, db *gorm.DB, userID, title string, public bool) *models.Prompt {
	t.Helper()
	prompt := &models.Prompt{
		Title:    title,
		Slug:     title + "-slug",
		Content:  "content of " + title,
		IsPublic: public,
		UserID:   userID,
	}
	require.NoError(t, db.Create(prompt).Error)
	return prompt
}

func TestAddLike_DoubleLikeCountsOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	user := createTestUser(t, db, "liker")
	prompt := createTestPrompt(t, db, user.ID, "likeable", true)

	changed, err := repo.AddLike(user.ID, prompt.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.AddLike(user.ID, prompt.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := repo.GetByID(prompt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikeCount)

	liked, err := repo.HasLiked(user.ID, prompt.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestRemoveLike_OnlyDecrementsRealLikes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	user := createTestUser(t, db, "liker")
	other := createTestUser(t, db, "other")
	prompt := createTestPrompt(t, db, user.ID, "likeable", true)

	_, err := repo.AddLike(user.ID, prompt.ID)
	require.NoError(t, err)

	// someone who never liked removes nothing
	changed, err := repo.RemoveLike(other.ID, prompt.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	got, _ := repo.GetByID(prompt.ID)
	assert.Equal(t, int64(1), got.LikeCount)

	changed, err = repo.RemoveLike(user.ID, prompt.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	got, _ = repo.GetByID(prompt.ID)
	assert.Equal(t, int64(0), got.LikeCount)
}

func TestSearch_PublicOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	user := createTestUser(t, db, "author")
	createTestPrompt(t, db, user.ID, "Public Recipe", true)
	createTestPrompt(t, db, user.ID, "Private Recipe", false)

	prompts, total, err := repo.Search("recipe", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, prompts, 1)
	assert.Equal(t, "Public Recipe", prompts[0].Title)
}

func TestList_FilterByCategoryAndUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	p1 := createTestPrompt(t, db, alice.ID, "coding helper", true)
	db.Model(p1).Update("category", "coding")
	p2 := createTestPrompt(t, db, bob.ID, "writing helper", true)
	db.Model(p2).Update("category", "writing")

	prompts, total, err := repo.List(PromptFilter{Category: "coding", PublicOnly: true}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "coding helper", prompts[0].Title)

	prompts, total, err = repo.List(PromptFilter{UserID: bob.ID}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "writing helper", prompts[0].Title)
}

func TestIncrementViewCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	user := createTestUser(t, db, "viewer")
	prompt := createTestPrompt(t, db, user.ID, "viewed", true)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementViewCount(prompt.ID))
	}

	got, err := repo.GetByID(prompt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ViewCount)
}

func TestListReported_OrdersByReportCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	user := createTestUser(t, db, "author")
	clean := createTestPrompt(t, db, user.ID, "clean", true)
	flagged := createTestPrompt(t, db, user.ID, "flagged", true)
	worse := createTestPrompt(t, db, user.ID, "worse", true)

	require.NoError(t, repo.IncrementReportCount(flagged.ID))
	require.NoError(t, repo.IncrementReportCount(worse.ID))
	require.NoError(t, repo.IncrementReportCount(worse.ID))

	prompts, total, err := repo.ListReported(0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, prompts, 2)
	assert.Equal(t, "worse", prompts[0].Title)
	assert.Equal(t, "flagged", prompts[1].Title)

	for _, p := range prompts {
		assert.NotEqual(t, clean.ID, p.ID)
	}
}

func TestDelete_MissingPromptReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)

	err := repo.Delete(12345)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
