package controllers

import (
	"net/http"
	"time"

	"eklerchik/internal/sitemap"

	"github.com/gin-gonic/gin"
)

type SitemapController struct {
	articles *ArticleController
	baseURL  string
	now      func() time.Time
}

func NewSitemapController(articles *ArticleController, baseURL string) *SitemapController {
	return &SitemapController{articles: articles, baseURL: baseURL, now: time.Now}
}

func (sc *SitemapController) build() ([]byte, error) {
	published := sc.articles.published()
	entries := make([]sitemap.Entry, 0, len(published))
	for _, a := range published {
		entries = append(entries, sitemap.Entry{Slug: a.Slug, Date: a.Date})
	}
	return sitemap.Build(sc.baseURL, entries, sc.now())
}

// GetSitemap godoc
// @Summary sitemap.xml for search engines
// @Tags sitemap
// @Produce xml
// @Success 200 {string} string "sitemap"
// @Router /sitemap.xml [get]
func (sc *SitemapController) GetSitemap(c *gin.Context) {
	data, err := sc.build()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to build sitemap",
			"error":   err.Error(),
		})
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}

// DownloadSitemap godoc
// @Summary Download sitemap.xml
// @Tags admin
// @Produce xml
// @Security BearerAuth
// @Success 200 {string} string "sitemap"
// @Router /admin/sitemap [get]
func (sc *SitemapController) DownloadSitemap(c *gin.Context) {
	data, err := sc.build()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to build sitemap",
			"error":   err.Error(),
		})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="sitemap.xml"`)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}
