package controllers

import (
	"net/http"
	"strings"

	"eklerchik/internal/models"
	"eklerchik/internal/repository"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	repo     repository.CommentRepository
	articles *ArticleController
}

func NewCommentController(repo repository.CommentRepository, articles *ArticleController) *CommentController {
	return &CommentController{repo: repo, articles: articles}
}

type commentRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// GetComments godoc
// @Summary List comments of an article
// @Tags comment
// @Produce json
// @Param slug path string true "Article slug or id"
// @Success 200 {object} map[string]interface{} "Comments retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Article not found"
// @Router /articles/{slug}/comments [get]
func (cc *CommentController) GetComments(c *gin.Context) {
	article, err := cc.articles.lookup(c.Param("slug"))
	if err != nil {
		respondStoreError(c, "Article not found", err)
		return
	}

	comments, err := cc.repo.FindByArticleID(article.ID)
	if err != nil {
		respondStoreError(c, "Failed to retrieve comments", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Comments retrieved successfully",
		"data":    comments,
	})
}

// CreateComment godoc
// @Summary Comment on an article
// @Tags comment
// @Accept json
// @Produce json
// @Param slug path string true "Article slug or id"
// @Param comment body commentRequest true "Comment"
// @Success 201 {object} map[string]interface{} "Comment created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Article not found"
// @Router /articles/{slug}/comments [post]
func (cc *CommentController) CreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	name := strings.TrimSpace(req.UserName)
	text := strings.TrimSpace(req.Content)
	if name == "" || text == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Name and comment are required",
			"error":   "user_name and content must not be blank",
		})
		return
	}

	article, err := cc.articles.lookup(c.Param("slug"))
	if err != nil {
		respondStoreError(c, "Article not found", err)
		return
	}

	comment := models.Comment{
		UserName:  name,
		Content:   text,
		ArticleID: article.ID,
	}
	if err := cc.repo.Create(&comment); err != nil {
		respondStoreError(c, "Failed to create comment", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Comment created successfully",
		"data":    comment,
	})
}
