package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openkanban/kanban/internal/auth"
	"github.com/openkanban/kanban/internal/models"
	"github.com/openkanban/kanban/internal/repository"
	"github.com/openkanban/kanban/internal/services"
)

type handlerTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenService
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Column{},
		&models.Task{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens := auth.NewTokenService("test-secret", time.Hour)

	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authHandler := NewAuthHandler(services.NewAuthService(userRepo, tokens))
	boardHandler := NewBoardHandler(services.NewBoardService(boardRepo, columnRepo, taskRepo))
	columnHandler := NewColumnHandler(services.NewColumnService(boardRepo, columnRepo, taskRepo))
	taskHandler := NewTaskHandler(services.NewTaskService(columnRepo, taskRepo))

	router := gin.New()
	RegisterRoutes(router, tokens, authHandler, boardHandler, columnHandler, taskHandler)

	return handlerTestEnv{
		db:     db,
		router: router,
		tokens: tokens,
	}
}

// request performs an HTTP request against the test router. A non-empty
// token is sent as a bearer Authorization header.
func (env handlerTestEnv) request(t *testing.T, method, url string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// registerUser registers an account over HTTP and returns the session token.
func (env handlerTestEnv) registerUser(t *testing.T, name, email string) string {
	t.Helper()

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "supersecret",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)
	return response.Token
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
