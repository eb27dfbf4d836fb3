package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"prompthub/internal/api/models"
	"prompthub/internal/api/repository"
	"prompthub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupServiceDB(t *testing.T) *gorm.DB {
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

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret-key-that-is-long-enough!",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func newTestAuthService(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t)
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRefreshTokenRepository(db),
		nil, // no redis in tests; denylist checks fail open
		testConfig(),
	)
	return svc, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.Register("alice", "alice@example.com", "password123", "Alice")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)

	access, refresh, loggedIn, err := svc.Login("alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotNil(t, loggedIn.LastLogin)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register("alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.Register("alice2", "alice@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register("alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.Register("alice", "other@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrNameInUse)
}

func TestLogin_UniformFailure(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register("alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	// wrong password and unknown email yield the same error
	_, _, _, wrongPass := svc.Login("alice@example.com", "wrong-password")
	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)

	_, _, _, unknownEmail := svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)

	assert.Equal(t, wrongPass, unknownEmail)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, db := newTestAuthService(t)

	user, err := svc.Register("alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, _, _, err = svc.Login("alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.Register("alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	access, _, _, err := svc.Login("alice@example.com", "password123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "access", claims.TokenType)
}

func TestValidateToken_RejectsRefreshToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register("alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	_, refresh, _, err := svc.Login("alice@example.com", "password123")
	require.NoError(t, err)

	// a refresh token must not pass as an access token
	_, err = svc.ValidateToken(context.Background(), refresh)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokens_RotatesAndRevokesOld(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register("alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	_, refresh, _, err := svc.Login("alice@example.com", "password123")
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.RefreshTokens(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEqual(t, refresh, newRefresh)

	// the consumed refresh token is dead
	_, _, err = svc.RefreshTokens(refresh)
	assert.Error(t, err)

	// the rotated one still works
	_, _, err = svc.RefreshTokens(newRefresh)
	assert.NoError(t, err)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register("alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	access, refresh, _, err := svc.Login("alice@example.com", "password123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), access)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(claims, refresh))

	_, _, err = svc.RefreshTokens(refresh)
	assert.Error(t, err)
}
