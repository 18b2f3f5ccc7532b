package controllers

import (
	"errors"
	"net/http"

	"eklerchik/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

// respondStoreError maps repository failures onto the JSON error envelope.
func respondStoreError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrReadOnly):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}
