package controllers

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"eklerchik/internal/content"
	"eklerchik/internal/genai"
	"eklerchik/internal/storage"

	"github.com/gin-gonic/gin"
)

// AIService is the generative helper set used by the editor.
type AIService interface {
	Configured() bool
	SuggestCategory(ctx context.Context, title, snippet string) string
	GenerateSnippet(ctx context.Context, title, body string) (string, error)
	ImproveContent(ctx context.Context, body string) (string, error)
	GenerateImage(ctx context.Context, topic string) (*genai.Image, error)
}

type AIController struct {
	ai     AIService
	images storage.ImageStore
	now    func() time.Time
}

// NewAIController wires the AI helpers. images may be nil; generated
// pictures are then returned inline as data URLs.
func NewAIController(ai AIService, images storage.ImageStore) *AIController {
	return &AIController{ai: ai, images: images, now: time.Now}
}

type categoryRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type snippetRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type improveRequest struct {
	Content string `json:"content" binding:"required"`
}

type imageRequest struct {
	Topic string `json:"topic" binding:"required"`
}

func (ac *AIController) ready(c *gin.Context) bool {
	if ac.ai != nil && ac.ai.Configured() {
		return true
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":  "error",
		"message": "AI is not configured",
		"error":   genai.ErrNotConfigured.Error(),
	})
	return false
}

func bindAI(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return false
	}
	return true
}

// SuggestCategory godoc
// @Summary Suggest a category
// @Description One Russian word; falls back to "Блог"
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body categoryRequest true "Title and content"
// @Success 200 {object} map[string]interface{} "Category suggested successfully"
// @Router /admin/ai/category [post]
func (ac *AIController) SuggestCategory(c *gin.Context) {
	var req categoryRequest
	if !bindAI(c, &req) {
		return
	}

	category := genai.DefaultCategory
	if ac.ai != nil && ac.ai.Configured() {
		category = ac.ai.SuggestCategory(c.Request.Context(), req.Title, content.PlainText(req.Content))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Category suggested successfully",
		"data":    gin.H{"category": category},
	})
}

// GenerateSnippet godoc
// @Summary Write an excerpt
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body snippetRequest true "Title and content"
// @Success 200 {object} map[string]interface{} "Snippet generated successfully"
// @Failure 502 {object} map[string]interface{} "Failed to generate snippet"
// @Failure 503 {object} map[string]interface{} "AI is not configured"
// @Router /admin/ai/snippet [post]
func (ac *AIController) GenerateSnippet(c *gin.Context) {
	var req snippetRequest
	if !bindAI(c, &req) || !ac.ready(c) {
		return
	}

	snippet, err := ac.ai.GenerateSnippet(c.Request.Context(), req.Title, content.PlainText(req.Content))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "Failed to generate snippet",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Snippet generated successfully",
		"data":    gin.H{"excerpt": snippet},
	})
}

// ImproveContent godoc
// @Summary Rewrite content in the blog's HTML style
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body improveRequest true "Content"
// @Success 200 {object} map[string]interface{} "Content improved successfully"
// @Failure 502 {object} map[string]interface{} "Failed to improve content"
// @Failure 503 {object} map[string]interface{} "AI is not configured"
// @Router /admin/ai/improve [post]
func (ac *AIController) ImproveContent(c *gin.Context) {
	var req improveRequest
	if !bindAI(c, &req) || !ac.ready(c) {
		return
	}

	improved, err := ac.ai.ImproveContent(c.Request.Context(), req.Content)
	if err == nil && strings.TrimSpace(improved) == "" {
		err = errors.New("empty content returned")
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "Failed to improve content",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Content improved successfully",
		"data":    gin.H{"content": improved},
	})
}

// GenerateImage godoc
// @Summary Draw an illustration
// @Description Uploaded to the image bucket when storage is configured, returned as a data URL otherwise
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body imageRequest true "Topic"
// @Success 200 {object} map[string]interface{} "Image generated successfully"
// @Failure 502 {object} map[string]interface{} "Failed to generate image"
// @Failure 503 {object} map[string]interface{} "AI is not configured"
// @Router /admin/ai/image [post]
func (ac *AIController) GenerateImage(c *gin.Context) {
	var req imageRequest
	if !bindAI(c, &req) || !ac.ready(c) {
		return
	}

	img, err := ac.ai.GenerateImage(c.Request.Context(), req.Topic)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "Failed to generate image",
			"error":   err.Error(),
		})
		return
	}

	if ac.images == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Image generated successfully",
			"data": gin.H{
				"url": fmt.Sprintf("data:%s;base64,%s", img.MimeType, base64.StdEncoding.EncodeToString(img.Data)),
			},
		})
		return
	}

	url, err := ac.images.Upload(c.Request.Context(), storage.GeneratedImageKey(ac.now()), img.Data, img.MimeType)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "Failed to upload image",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Image generated successfully",
		"data":    gin.H{"url": url},
	})
}
