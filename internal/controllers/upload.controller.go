package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"eklerchik/internal/storage"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20

type UploadController struct {
	images storage.ImageStore
	now    func() time.Time
}

func NewUploadController(images storage.ImageStore) *UploadController {
	return &UploadController{images: images, now: time.Now}
}

// UploadImage godoc
// @Summary Upload an image to the bucket
// @Description Site imagery (hero, deco_left, deco_right, logo, about, favicon) is stored under hero/
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Param type formData string false "article, article_secondary, hero, deco_left, deco_right, logo, about, favicon" default(article)
// @Success 201 {object} map[string]interface{} "Image uploaded successfully"
// @Failure 400 {object} map[string]interface{} "Invalid upload"
// @Failure 503 {object} map[string]interface{} "Storage is not configured"
// @Router /admin/uploads [post]
func (uc *UploadController) UploadImage(c *gin.Context) {
	if uc.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "Storage is not configured",
			"error":   storage.ErrNotConfigured.Error(),
		})
		return
	}

	kind := c.DefaultPostForm("type", storage.KindArticle)
	if !storage.ValidKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid upload type",
			"error":   fmt.Sprintf("unsupported type %q", kind),
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "File is required",
			"error":   err.Error(),
		})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "File is too large",
			"error":   fmt.Sprintf("limit is %d bytes", maxUploadSize),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to read file",
			"error":   err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to read file",
			"error":   err.Error(),
		})
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		// Sniffing does not recognise svg or ico; trust the declared type for those.
		declared := fileHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(declared, "image/") {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Only images can be uploaded",
				"error":   fmt.Sprintf("detected content type %s", contentType),
			})
			return
		}
		contentType = declared
	}

	url, err := uc.images.Upload(c.Request.Context(), storage.ObjectKey(kind, fileHeader.Filename, uc.now()), data, contentType)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "Failed to upload image",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Image uploaded successfully",
		"data":    gin.H{"url": url, "type": kind},
	})
}
