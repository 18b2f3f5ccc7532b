package routes

import (
	"eklerchik/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterSitemapRoutes(router *gin.Engine, adminAuth gin.HandlerFunc, sitemapController *controllers.SitemapController) {
	router.GET("/sitemap.xml", sitemapController.GetSitemap)
	router.GET("/admin/sitemap", adminAuth, sitemapController.DownloadSitemap)
}
