package service

import (
	"testing"

	"prompthub/internal/api/models"
	"prompthub/internal/api/repository"
	"prompthub/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Code Review Assistant", "code-review-assistant"},
		{"  Trim me  ", "trim-me"},
		{"Emoji \U0001F680 & symbols!?", "emoji-symbols"},
		{"a  b   c", "a-b-c"},
		{"!!!", "prompt"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, generateSlug(tc.title), "title %q", tc.title)
	}
}

func TestGet_HiddenReadLeavesViewCountAlone(t *testing.T) {
	db := setupServiceDB(t)
	promptRepo := repository.NewPromptRepository(db)
	svc := NewPromptService(promptRepo, events.NewBus(events.WithSyncDispatch()), nil, testConfig())

	owner := &models.User{Username: "owner", Email: "owner@example.com", Password: "hash", IsActive: true}
	require.NoError(t, db.Create(owner).Error)

	prompt := &models.Prompt{Title: "Draft", Content: "work in progress", IsPublic: false}
	require.NoError(t, svc.Create(owner.ID, prompt))

	// a stranger probing the private prompt gets not-found and no view bump
	_, err := svc.Get(prompt.ID, "someone-else", false)
	assert.ErrorIs(t, err, ErrPromptNotFound)

	stored, err := promptRepo.GetByID(prompt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.ViewCount)

	// the owner's read counts
	got, err := svc.Get(prompt.ID, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount)
}

func TestGet_AdminSeesPrivatePrompt(t *testing.T) {
	db := setupServiceDB(t)
	promptRepo := repository.NewPromptRepository(db)
	svc := NewPromptService(promptRepo, events.NewBus(events.WithSyncDispatch()), nil, testConfig())

	owner := &models.User{Username: "owner", Email: "owner@example.com", Password: "hash", IsActive: true}
	require.NoError(t, db.Create(owner).Error)

	prompt := &models.Prompt{Title: "Draft", Content: "work in progress", IsPublic: false}
	require.NoError(t, svc.Create(owner.ID, prompt))

	got, err := svc.Get(prompt.ID, "admin-user", true)
	require.NoError(t, err)
	assert.Equal(t, prompt.ID, got.ID)
}
