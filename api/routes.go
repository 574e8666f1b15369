package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minazuki-dev/todo-list/db"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, database *db.DB) {
	h := NewHandler(database)

	api := r.Group("/api")

	api.GET("/todos", h.ListTodos)
	api.POST("/todos", h.CreateTodo)
	api.PATCH("/todos/:id", h.UpdateTodo)
	api.DELETE("/todos/:id", h.DeleteTodo)

	// Unmatched routes and methods all land here
	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound,
			fmt.Sprintf("Route %s %s not found.", c.Request.Method, c.Request.URL.Path))
	})
}
