package routes

import (
	"eklerchik/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterChatRoutes(router *gin.Engine, chatController *controllers.ChatController) {
	router.POST("/chat", chatController.SendMessage)
}
