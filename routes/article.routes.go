package routes

import (
	"eklerchik/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterArticleRoutes(router *gin.Engine, adminAuth gin.HandlerFunc, articleController *controllers.ArticleController, editorController *controllers.EditorController) {
	articleRoutesPublic := router.Group("/articles")
	{
		articleRoutesPublic.GET("", articleController.ListArticles)
		articleRoutesPublic.GET("/:slug", articleController.GetArticle)
	}
	articleRoutesPrivate := router.Group("/admin/articles")
	articleRoutesPrivate.Use(adminAuth)
	{
		articleRoutesPrivate.GET("", articleController.AdminListArticles)
		articleRoutesPrivate.POST("", articleController.CreateArticle)
		articleRoutesPrivate.PUT("/:id", articleController.UpdateArticle)
		articleRoutesPrivate.DELETE("/:id", articleController.DeleteArticle)
		articleRoutesPrivate.POST("/import", articleController.ImportArticles)
		articleRoutesPrivate.POST("/cleanup", articleController.CleanupArticles)
		articleRoutesPrivate.POST("/smart-paste", editorController.SmartPaste)
		articleRoutesPrivate.POST("/slug", editorController.GenerateSlug)
	}
}
