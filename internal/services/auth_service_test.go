package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openkanban/kanban/internal/auth"
	"github.com/openkanban/kanban/internal/models"
	"github.com/openkanban/kanban/internal/repository"
)

func setupAuthService(t *testing.T) (*AuthService, *auth.TokenService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewAuthService(repository.NewUserRepository(db), tokens), tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	service, tokens := setupAuthService(t)

	user, token, err := service.Register(RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", user.Email)
	require.NotEmpty(t, token)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)

	loggedIn, token, err := service.Login(LoginInput{
		Email:    "ada@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, token)
}

func TestAuthService_RegisterRejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	service, _ := setupAuthService(t)

	_, _, err := service.Register(RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, _, err = service.Register(RegisterInput{
		Name:     "Imposter",
		Email:    "ADA@Example.COM",
		Password: "different",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_RegisterValidatesInput(t *testing.T) {
	service, _ := setupAuthService(t)

	_, _, err := service.Register(RegisterInput{Email: "a@b.com", Password: "x"})
	require.ErrorIs(t, err, ErrNameRequired)

	_, _, err = service.Register(RegisterInput{Name: "A", Password: "x"})
	require.ErrorIs(t, err, ErrEmailRequired)

	_, _, err = service.Register(RegisterInput{Name: "A", Email: "a@b.com"})
	require.ErrorIs(t, err, ErrPasswordRequired)
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	service, _ := setupAuthService(t)

	_, _, err := service.Login(LoginInput{Email: "ghost@example.com", Password: "x"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Register(RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, _, err = service.Login(LoginInput{Email: "ada@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
