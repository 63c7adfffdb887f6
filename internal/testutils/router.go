package testutils

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/formpilot/internal/api/handlers"
	"github.com/linskybing/formpilot/internal/api/routes"
)

// SetupRouter builds the full route table over h in gin test mode.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterRoutes(r, h)
	return r
}
