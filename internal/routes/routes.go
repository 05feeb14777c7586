package routes

import (
	"github.com/gin-gonic/gin"

	"geticard_backend/internal/handlers"
)

// Handlers bundles every route-owning handler.
type Handlers struct {
	Auth *handlers.AuthHandler
	Card *handlers.CardHandler
	File *handlers.FileHandler
}

// RegisterRoutes delegates route registration to each handler.
func RegisterRoutes(router *gin.Engine, h *Handlers) {
	root := router.Group("/")

	h.Auth.RegisterRoutes(root)
	h.Card.RegisterRoutes(root)
	h.File.RegisterRoutes(root)
}
