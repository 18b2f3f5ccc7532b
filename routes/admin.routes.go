package routes

import (
	"eklerchik/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes mounts login plus the panel helpers that are not tied
// to a single resource. Everything except login requires the admin token.
func RegisterAdminRoutes(router *gin.Engine, adminAuth gin.HandlerFunc, adminController *controllers.AdminController, aiController *controllers.AIController, uploadController *controllers.UploadController, editorController *controllers.EditorController) {
	router.POST("/admin/login", adminController.Login)

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(adminAuth)
	{
		adminRoutes.GET("/status", adminController.Status)
		adminRoutes.POST("/uploads", uploadController.UploadImage)
		adminRoutes.POST("/ads", editorController.RenderAd)
	}

	aiRoutes := router.Group("/admin/ai")
	aiRoutes.Use(adminAuth)
	{
		aiRoutes.POST("/category", aiController.SuggestCategory)
		aiRoutes.POST("/snippet", aiController.GenerateSnippet)
		aiRoutes.POST("/improve", aiController.ImproveContent)
		aiRoutes.POST("/image", aiController.GenerateImage)
	}
}
