package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"eklerchik/internal/models"
	"eklerchik/internal/repository"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	repo repository.SiteSettingRepository
}

func NewSettingsController(repo repository.SiteSettingRepository) *SettingsController {
	return &SettingsController{repo: repo}
}

// GetSettings godoc
// @Summary Public site settings
// @Description Stored settings merged over the default title, description and keywords
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{} "Settings retrieved successfully"
// @Router /settings [get]
func (sc *SettingsController) GetSettings(c *gin.Context) {
	stored, err := sc.repo.FindAll()
	if err != nil {
		respondStoreError(c, "Failed to retrieve settings", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Settings retrieved successfully",
		"data":    models.WithDefaults(stored),
	})
}

// AdminGetSettings godoc
// @Summary Stored site settings
// @Description Every managed key, empty when never saved
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Settings retrieved successfully"
// @Router /admin/settings [get]
func (sc *SettingsController) AdminGetSettings(c *gin.Context) {
	stored, err := sc.repo.FindAll()
	if err != nil {
		respondStoreError(c, "Failed to retrieve settings", err)
		return
	}

	settings := make(map[string]string, len(models.SettingKeys))
	for _, k := range models.SettingKeys {
		settings[k] = stored[k]
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Settings retrieved successfully",
		"data":    settings,
	})
}

// UpdateSettings godoc
// @Summary Save site settings
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body map[string]string true "Key/value pairs"
// @Success 200 {object} map[string]interface{} "Settings saved successfully"
// @Failure 400 {object} map[string]interface{} "Unknown setting"
// @Router /admin/settings [put]
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var settings map[string]string
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	for k, v := range settings {
		if !models.IsSettingKey(k) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Unknown setting",
				"error":   fmt.Sprintf("unsupported key %q", k),
			})
			return
		}
		settings[k] = strings.TrimSpace(v)
	}

	if err := sc.repo.Upsert(settings); err != nil {
		respondStoreError(c, "Failed to save settings", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Settings saved successfully",
		"data":    settings,
	})
}
