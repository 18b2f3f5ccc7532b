package routes

import (
	"eklerchik/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterSubscriberRoutes(router *gin.Engine, adminAuth gin.HandlerFunc, subscriberController *controllers.SubscriberController) {
	router.POST("/subscribers", subscriberController.Subscribe)
	router.GET("/admin/subscribers", adminAuth, subscriberController.ListSubscribers)
}
