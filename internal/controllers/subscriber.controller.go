package controllers

import (
	"log"
	"net/http"
	"strings"

	"eklerchik/internal/models"
	"eklerchik/internal/repository"
	"eklerchik/internal/utils"

	"github.com/gin-gonic/gin"
)

type SubscriberController struct {
	repo    repository.SubscriberRepository
	mailer  utils.Mailer
	siteURL string
}

// NewSubscriberController wires the subscriber store. mailer may be nil, in
// which case no welcome mail is sent. It is called on the request path, so
// pass a queueing mailer such as services.MailWorker.
func NewSubscriberController(repo repository.SubscriberRepository, mailer utils.Mailer, siteURL string) *SubscriberController {
	return &SubscriberController{repo: repo, mailer: mailer, siteURL: siteURL}
}

type subscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Tags subscriber
// @Accept json
// @Produce json
// @Param request body subscribeRequest true "Email"
// @Success 201 {object} map[string]interface{} "Subscribed successfully"
// @Failure 400 {object} map[string]interface{} "Invalid email"
// @Failure 409 {object} map[string]interface{} "Already subscribed"
// @Router /subscribers [post]
func (sc *SubscriberController) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid email",
			"error":   err.Error(),
		})
		return
	}
	email := strings.TrimSpace(req.Email)

	exists, err := sc.repo.ExistsByEmail(email)
	if err != nil {
		respondStoreError(c, "Failed to check subscription", err)
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Already subscribed",
			"error":   "email is already on the list",
		})
		return
	}

	subscriber := models.Subscriber{Email: email}
	if err := sc.repo.Create(&subscriber); err != nil {
		respondStoreError(c, "Failed to subscribe", err)
		return
	}

	if sc.mailer != nil {
		if err := sc.mailer.SendEmail(email, utils.WelcomeSubject, utils.WelcomeMessage(sc.siteURL)); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Subscribed successfully",
		"data":    subscriber,
	})
}

// ListSubscribers godoc
// @Summary List subscribers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Subscribers retrieved successfully"
// @Router /admin/subscribers [get]
func (sc *SubscriberController) ListSubscribers(c *gin.Context) {
	subscribers, err := sc.repo.FindAll()
	if err != nil {
		respondStoreError(c, "Failed to retrieve subscribers", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Subscribers retrieved successfully",
		"data":    subscribers,
	})
}
