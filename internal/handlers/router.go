package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openkanban/kanban/internal/auth"
	"github.com/openkanban/kanban/internal/middleware"
)

// RegisterRoutes mounts the API surface on the given engine. The move route
// is registered before the parameterized task routes so "move" is never
// captured as a task id.
func RegisterRoutes(r *gin.Engine, tokens *auth.TokenService, authHandler *AuthHandler, boardHandler *BoardHandler, columnHandler *ColumnHandler, taskHandler *TaskHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Kanban API is running",
		})
	})

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(tokens))
		{
			protected.GET("/boards", boardHandler.ListBoards)
			protected.POST("/boards", boardHandler.CreateBoard)
			protected.GET("/boards/:id", boardHandler.GetBoard)
			protected.PUT("/boards/:id", boardHandler.UpdateBoard)
			protected.DELETE("/boards/:id", boardHandler.DeleteBoard)
			protected.PUT("/boards/:id/reorder", boardHandler.ReorderColumns)
			protected.POST("/boards/:id/columns", columnHandler.CreateColumn)

			protected.PUT("/columns/:id", columnHandler.UpdateColumn)
			protected.DELETE("/columns/:id", columnHandler.DeleteColumn)
			protected.POST("/columns/:id/tasks", taskHandler.AddTask)

			protected.PUT("/tasks/move", taskHandler.MoveTask)
			protected.PUT("/tasks/:id", taskHandler.UpdateTask)
			protected.DELETE("/tasks/:id", taskHandler.DeleteTask)
		}
	}
}
