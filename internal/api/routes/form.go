package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/formpilot/internal/api/handlers"
)

// FormRoutes registers form and field endpoints. Reading a form and asking
// for an upload URL are public; respondents have no account.
func FormRoutes(rg *gin.RouterGroup, h *handlers.Handlers, auth gin.HandlerFunc) {
	rg.GET("/:id", h.Form.GetForm)
	rg.POST("/:id/fields/:fieldId/upload-url", h.Upload.CreateUploadURL)

	forms := rg.Group("", auth)
	{
		forms.POST("", h.Form.CreateForm)
		forms.POST("/generate", h.Form.GenerateForm)
		forms.GET("/my", h.Form.GetMyForms)
		forms.GET("/user/:userId", h.Form.GetUserForms)
		forms.PUT("/:id", h.Form.UpdateForm)
		forms.DELETE("/:id", h.Form.DeleteForm)

		forms.POST("/:id/fields", h.Form.AddField)
		forms.PUT("/:id/fields/:fieldId", h.Form.UpdateField)
		forms.DELETE("/:id/fields/:fieldId", h.Form.RemoveField)
		forms.POST("/:id/fields/:fieldId/move", h.Form.MoveField)
	}
}

// AnalyticsRoutes registers the public tracking endpoints and the owner
// summary.
func AnalyticsRoutes(rg *gin.RouterGroup, h *handlers.Handlers, auth gin.HandlerFunc) {
	track := rg.Group("/track")
	{
		track.POST("/view", h.Analytics.TrackView)
		track.POST("/interaction", h.Analytics.TrackInteraction)
		track.POST("/submission", h.Analytics.TrackSubmission)
	}
	rg.GET("/:formId", auth, h.Analytics.GetSummary)
}

func OptimizationRoutes(rg *gin.RouterGroup, h *handlers.Handlers, auth gin.HandlerFunc) {
	rg.POST("/ab-test/:formId/assign", h.Optimization.AssignVisitor)

	opt := rg.Group("", auth)
	{
		opt.GET("/recommendations/:formId", h.Optimization.GetRecommendations)
		opt.POST("/apply/:formId", h.Optimization.ApplyOptimization)
		opt.GET("/history/:formId", h.Optimization.GetHistory)
		opt.GET("/lineage/:formId", h.Optimization.GetLineage)
		opt.POST("/ab-test/:formId", h.Optimization.CreateABTest)
		opt.GET("/ab-test/:formId", h.Optimization.ListABTests)
		opt.GET("/ab-tests/:testId", h.Optimization.GetABTest)
	}
}

func TemplateRoutes(rg *gin.RouterGroup, h *handlers.Handlers, auth gin.HandlerFunc) {
	rg.GET("", h.Template.ListTemplates)
	rg.GET("/categories", h.Template.ListCategories)
	rg.GET("/:id", h.Template.GetTemplate)
	rg.POST("/:id/instantiate", auth, h.Template.Instantiate)
}
