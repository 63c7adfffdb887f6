package routes

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/linskybing/formpilot/docs"
	"github.com/linskybing/formpilot/internal/api/handlers"
	"github.com/linskybing/formpilot/internal/api/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	// Report binding failures under their JSON names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	}
}

// RegisterRoutes wires every endpoint onto r.
func RegisterRoutes(r *gin.Engine, h *handlers.Handlers) {
	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	auth := middleware.JWTAuthMiddleware()

	FormRoutes(r.Group("/forms"), h, auth)
	AnalyticsRoutes(r.Group("/analytics"), h, auth)
	OptimizationRoutes(r.Group("/optimization"), h, auth)
	TemplateRoutes(r.Group("/templates"), h, auth)

	ai := r.Group("/ai", auth)
	{
		ai.POST("/generate-form", h.Form.PreviewForm)
	}

	r.GET("/ws/analytics/:formId", auth, h.LiveAnalytics.Stream)
}
