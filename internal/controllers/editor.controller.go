package controllers

import (
	"net/http"
	"time"

	"eklerchik/internal/content"

	"github.com/gin-gonic/gin"
)

// EditorController exposes the admin panel's text helpers.
type EditorController struct {
	now func() time.Time
}

func NewEditorController() *EditorController {
	return &EditorController{now: time.Now}
}

type smartPasteRequest struct {
	Text string `json:"text" binding:"required"`
}

type slugRequest struct {
	Title string `json:"title" binding:"required"`
}

type adRequest struct {
	content.Ad
	Content string `json:"content"`
}

// SmartPaste godoc
// @Summary Build an article draft from raw text
// @Description First line becomes the title, the rest become paragraphs
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body smartPasteRequest true "Raw text"
// @Success 200 {object} map[string]interface{} "Draft created successfully"
// @Failure 400 {object} map[string]interface{} "Text is empty"
// @Router /admin/articles/smart-paste [post]
func (ec *EditorController) SmartPaste(c *gin.Context) {
	var req smartPasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	draft, ok := content.SmartPaste(req.Text, ec.now())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Text is empty",
			"error":   "no non-blank lines",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Draft created successfully",
		"data":    draft,
	})
}

// GenerateSlug godoc
// @Summary Transliterate a title into a slug
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body slugRequest true "Title"
// @Success 200 {object} map[string]interface{} "Slug generated successfully"
// @Router /admin/articles/slug [post]
func (ec *EditorController) GenerateSlug(c *gin.Context) {
	var req slugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Slug generated successfully",
		"data":    gin.H{"slug": content.Slugify(req.Title)},
	})
}

// RenderAd godoc
// @Summary Render a product ad block
// @Description Empty fields fall back to the default product. When content is given the block is appended to it.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body adRequest true "Product"
// @Success 200 {object} map[string]interface{} "Ad rendered successfully"
// @Router /admin/ads [post]
func (ec *EditorController) RenderAd(c *gin.Context) {
	var req adRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	html, err := content.ProductAdHTML(req.Ad)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to render ad",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Ad rendered successfully",
		"data": gin.H{
			"html":    html,
			"content": req.Content + html,
		},
	})
}
