package routes

import (
	"eklerchik/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterSettingsRoutes(router *gin.Engine, adminAuth gin.HandlerFunc, settingsController *controllers.SettingsController) {
	router.GET("/settings", settingsController.GetSettings)

	settingsRoutesPrivate := router.Group("/admin/settings")
	settingsRoutesPrivate.Use(adminAuth)
	{
		settingsRoutesPrivate.GET("", settingsController.AdminGetSettings)
		settingsRoutesPrivate.PUT("", settingsController.UpdateSettings)
	}
}
