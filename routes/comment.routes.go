package routes

import (
	"eklerchik/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterCommentRoutes(router *gin.Engine, commentController *controllers.CommentController) {
	commentRoutes := router.Group("/articles/:slug/comments")
	{
		commentRoutes.GET("", commentController.GetComments)
		commentRoutes.POST("", commentController.CreateComment)
	}
}
