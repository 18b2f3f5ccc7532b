package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eklerchik/internal/content"
	"eklerchik/internal/listing"
	"eklerchik/internal/models"
	"eklerchik/internal/repository"
	"eklerchik/internal/wxr"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultSaveCategory = "Разное"
	defaultSaveImage    = "https://picsum.photos/800/600"
	maxImportSize       = 32 << 20
)

type ArticleController struct {
	repo         repository.ArticleRepository
	fallback     []models.Article
	itemsPerPage int
	now          func() time.Time
}

// NewArticleController serves articles from repo. The fallback set is shown
// while the store is empty or unreachable.
func NewArticleController(repo repository.ArticleRepository, fallback []models.Article, itemsPerPage int) *ArticleController {
	if itemsPerPage <= 0 {
		itemsPerPage = listing.DefaultPerPage
	}
	return &ArticleController{
		repo:         repo,
		fallback:     fallback,
		itemsPerPage: itemsPerPage,
		now:          time.Now,
	}
}

// published returns the stored articles or, when there are none, the fallback set.
func (ac *ArticleController) published() []models.Article {
	articles, err := ac.repo.FindAll()
	if err != nil {
		log.Printf("Failed to load articles, serving built-in set: %v", err)
		return ac.fallback
	}
	if len(articles) == 0 {
		return ac.fallback
	}
	return articles
}

// lookup finds an article by slug, then by id, then among the fallback set
// when that set is what readers currently see.
func (ac *ArticleController) lookup(slugOrID string) (*models.Article, error) {
	article, err := ac.repo.FindBySlug(slugOrID)
	if err == nil {
		return article, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to find article %s: %v", slugOrID, err)
	}
	if article, err = ac.repo.FindByID(slugOrID); err == nil {
		return article, nil
	}

	for _, a := range ac.published() {
		if a.Slug == slugOrID || a.ID == slugOrID {
			found := a
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ListArticles godoc
// @Summary List articles
// @Description Sanitized, filtered and paginated articles with the category list
// @Tags article
// @Produce json
// @Param category query string false "Exact category"
// @Param q query string false "Search in title, excerpt and content"
// @Param page query int false "1-based page" default(1)
// @Param per_page query int false "Page size" default(6)
// @Success 200 {object} map[string]interface{} "Articles retrieved successfully"
// @Router /articles [get]
func (ac *ArticleController) ListArticles(c *gin.Context) {
	all := listing.SanitizeAll(ac.published())

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, err := strconv.Atoi(c.Query("per_page"))
	if err != nil || perPage <= 0 {
		perPage = ac.itemsPerPage
	}

	filtered := listing.Filter(all, c.Query("category"), c.Query("q"))
	result := listing.Paginate(filtered, page, perPage)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Articles retrieved successfully",
		"data": gin.H{
			"articles":    result.Articles,
			"page":        result.Page,
			"per_page":    result.PerPage,
			"total":       result.Total,
			"total_pages": result.TotalPages,
			"categories":  listing.Categories(all),
		},
	})
}

// GetArticle godoc
// @Summary Get an article
// @Description Find an article by slug or id
// @Tags article
// @Produce json
// @Param slug path string true "Article slug or id"
// @Success 200 {object} map[string]interface{} "Article retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Article not found"
// @Router /articles/{slug} [get]
func (ac *ArticleController) GetArticle(c *gin.Context) {
	article, err := ac.lookup(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Article not found",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Article retrieved successfully",
		"data":    listing.Sanitize(*article),
	})
}

// AdminListArticles godoc
// @Summary List stored articles
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Articles retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve articles"
// @Router /admin/articles [get]
func (ac *ArticleController) AdminListArticles(c *gin.Context) {
	articles, err := ac.repo.FindAll()
	if err != nil {
		respondStoreError(c, "Failed to retrieve articles", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Articles retrieved successfully",
		"data":    articles,
	})
}

// applySaveDefaults fills what the editor left empty before a save.
func (ac *ArticleController) applySaveDefaults(a *models.Article) {
	now := ac.now()
	a.Title = strings.TrimSpace(a.Title)
	a.Slug = strings.TrimSpace(a.Slug)
	if a.Slug == "" {
		a.Slug = fmt.Sprintf("article-%d", now.UnixMilli())
	}
	if a.Date == "" {
		a.Date = content.FormatDate(now)
	}
	if a.ReadTime == "" {
		a.ReadTime = content.DefaultReadTime
	}
	if a.Category == "" {
		a.Category = defaultSaveCategory
	}
	if a.ImageURL == "" {
		a.ImageURL = defaultSaveImage
	}
}

// CreateArticle godoc
// @Summary Create an article
// @Description Missing slug, date, read time, category and image are defaulted. A uuid id replaces that article.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param article body models.Article true "Article data"
// @Success 201 {object} map[string]interface{} "Article created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 503 {object} map[string]interface{} "Database required"
// @Router /admin/articles [post]
func (ac *ArticleController) CreateArticle(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	ac.save(c, &article, http.StatusCreated, "Article created successfully")
}

// save inserts or, when the article carries a uuid, upserts by id.
func (ac *ArticleController) save(c *gin.Context, article *models.Article, status int, message string) {
	// Ids that are not uuids belong to built-in articles: save as a new row.
	upsert := models.IsUUID(article.ID)
	if !upsert {
		article.ID = ""
	}
	ac.applySaveDefaults(article)
	if err := validate.Struct(article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Title is required",
			"error":   err.Error(),
		})
		return
	}

	var err error
	if upsert {
		err = ac.repo.Save(article)
	} else {
		err = ac.repo.Create(article)
	}
	if err != nil {
		respondStoreError(c, "Failed to save article", err)
		return
	}

	c.JSON(status, gin.H{
		"status":  "success",
		"message": message,
		"data":    article,
	})
}

// UpdateArticle godoc
// @Summary Update an article
// @Description Inserts the article when the id is unknown. A non-uuid id (built-in article) is saved as a new article
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param article body models.Article true "Article data"
// @Success 200 {object} map[string]interface{} "Article updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 503 {object} map[string]interface{} "Database required"
// @Router /admin/articles/{id} [put]
func (ac *ArticleController) UpdateArticle(c *gin.Context) {
	id := c.Param("id")

	var input models.Article
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	// An id that is not a uuid names a built-in article, which is saved as a new row.
	input.ID = id
	ac.save(c, &input, http.StatusOK, "Article updated successfully")
}

// DeleteArticle godoc
// @Summary Delete an article
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} map[string]interface{} "Article deleted successfully"
// @Failure 404 {object} map[string]interface{} "Article not found"
// @Router /admin/articles/{id} [delete]
func (ac *ArticleController) DeleteArticle(c *gin.Context) {
	if err := ac.repo.Delete(c.Param("id")); err != nil {
		respondStoreError(c, "Failed to delete article", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Article deleted successfully",
	})
}

// ImportArticles godoc
// @Summary Import a WordPress export
// @Description Parses a WXR file and upserts every post by slug
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "WordPress XML export"
// @Param clean formData bool false "Full HTML cleanup" default(true)
// @Param inject_ad formData bool false "Insert the promo block after the second paragraph" default(false)
// @Success 200 {object} map[string]interface{} "Articles imported successfully"
// @Failure 400 {object} map[string]interface{} "Invalid export file"
// @Router /admin/articles/import [post]
func (ac *ArticleController) ImportArticles(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Export file is required",
			"error":   err.Error(),
		})
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Export file is too large",
			"error":   fmt.Sprintf("limit is %d bytes", maxImportSize),
		})
		return
	}

	clean, err := strconv.ParseBool(c.DefaultPostForm("clean", "true"))
	if err != nil {
		clean = true
	}
	injectAd, _ := strconv.ParseBool(c.DefaultPostForm("inject_ad", "false"))

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to read export file",
			"error":   err.Error(),
		})
		return
	}
	defer file.Close()

	articles, err := wxr.Parse(file, wxr.Options{
		Clean:    clean,
		InjectAd: injectAd,
		Ad:       content.DefaultAd,
		Now:      ac.now(),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid export file",
			"error":   err.Error(),
		})
		return
	}

	valid := articles[:0]
	for _, a := range articles {
		if err := validate.Struct(&a); err != nil {
			log.Printf("Skipping imported article %q: %v", a.Slug, err)
			continue
		}
		valid = append(valid, a)
	}

	affected, err := ac.repo.UpsertBySlug(valid)
	if err != nil {
		respondStoreError(c, "Failed to import articles", err)
		return
	}

	log.Printf("Imported %d articles from %s", len(valid), fileHeader.Filename)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Articles imported successfully",
		"data": gin.H{
			"imported": len(valid),
			"affected": affected,
		},
	})
}

// CleanupArticles godoc
// @Summary Clean the HTML of every stored article
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Articles cleaned successfully"
// @Router /admin/articles/cleanup [post]
func (ac *ArticleController) CleanupArticles(c *gin.Context) {
	articles, err := ac.repo.FindAll()
	if err != nil {
		respondStoreError(c, "Failed to retrieve articles", err)
		return
	}

	changed := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		cleaned := content.CleanHTML(a.Content)
		if cleaned == a.Content {
			continue
		}
		a.Content = cleaned
		changed = append(changed, a)
	}

	if err := ac.repo.SaveAll(changed); err != nil {
		respondStoreError(c, "Failed to save cleaned articles", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Articles cleaned successfully",
		"data": gin.H{
			"total":   len(articles),
			"cleaned": len(changed),
		},
	})
}
