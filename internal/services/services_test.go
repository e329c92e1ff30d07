package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openkanban/kanban/internal/models"
	"github.com/openkanban/kanban/internal/repository"
)

type serviceTestEnv struct {
	db      *gorm.DB
	boards  *BoardService
	columns *ColumnService
	tasks   *TaskService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Column{},
		&models.Task{},
	)
	require.NoError(t, err)

	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return serviceTestEnv{
		db:      db,
		boards:  NewBoardService(boardRepo, columnRepo, taskRepo),
		columns: NewColumnService(boardRepo, columnRepo, taskRepo),
		tasks:   NewTaskService(columnRepo, taskRepo),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}
