package controllers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"sync"
	"time"

	"eklerchik/internal/middleware"

	"github.com/gin-gonic/gin"
)

// StatusReporter describes an optional backend for the admin status page.
type StatusReporter interface {
	GetStatus() (map[string]interface{}, error)
}

// Backends records which optional services the server started with.
type Backends struct {
	Database bool
	AI       bool
	Storage  bool
	Mail     bool
	Cache    StatusReporter
	// MailQueue reports the background sender when mail is configured.
	MailQueue StatusReporter
}

const (
	maxLoginFailures = 5
	loginLockout     = 15 * time.Minute
)

type loginAttempts struct {
	failures    int
	lockedUntil time.Time
}

type AdminController struct {
	pin      string
	secret   []byte
	backends Backends
	now      func() time.Time

	mu       sync.Mutex
	attempts map[string]*loginAttempts
}

// NewAdminController builds the admin handlers. An empty pin disables login.
func NewAdminController(pin string, secret []byte, backends Backends) *AdminController {
	return &AdminController{
		pin:      pin,
		secret:   secret,
		backends: backends,
		now:      time.Now,
		attempts: make(map[string]*loginAttempts),
	}
}

// lockedOut reports whether ip has used up its attempts.
func (ac *AdminController) lockedOut(ip string) bool {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	a, ok := ac.attempts[ip]
	if !ok {
		return false
	}
	if a.lockedUntil.IsZero() {
		return false
	}
	if ac.now().Before(a.lockedUntil) {
		return true
	}
	delete(ac.attempts, ip)
	return false
}

func (ac *AdminController) recordFailure(ip string) {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	a, ok := ac.attempts[ip]
	if !ok {
		a = &loginAttempts{}
		ac.attempts[ip] = a
	}
	a.failures++
	if a.failures >= maxLoginFailures {
		a.lockedUntil = ac.now().Add(loginLockout)
		log.Printf("Admin login locked for %s after %d failures", ip, a.failures)
	}
}

func (ac *AdminController) clearFailures(ip string) {
	ac.mu.Lock()
	delete(ac.attempts, ip)
	ac.mu.Unlock()
}

type loginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// Login godoc
// @Summary Admin login
// @Description Exchanges the admin PIN for a bearer token
// @Tags admin
// @Accept json
// @Produce json
// @Param request body loginRequest true "PIN"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 401 {object} map[string]interface{} "Wrong PIN"
// @Failure 429 {object} map[string]interface{} "Too many attempts"
// @Failure 503 {object} map[string]interface{} "Admin login is disabled"
// @Router /admin/login [post]
func (ac *AdminController) Login(c *gin.Context) {
	if ac.pin == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "Admin login is disabled",
			"error":   "ADMIN_PIN is not set",
		})
		return
	}

	ip := c.ClientIP()
	if ac.lockedOut(ip) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"status":  "error",
			"message": "Too many attempts, try again later",
			"error":   "login locked",
		})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.PIN), []byte(ac.pin)) != 1 {
		log.Printf("Rejected admin login from %s", ip)
		ac.recordFailure(ip)
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Wrong PIN",
			"error":   "invalid credentials",
		})
		return
	}
	ac.clearFailures(ip)

	token, err := middleware.IssueAdminToken(ac.secret, ac.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to issue token",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful",
		"data": gin.H{
			"token":      token,
			"expires_in": int(middleware.AdminTokenTTL.Seconds()),
		},
	})
}

// Status godoc
// @Summary Backend configuration status
// @Description Reports configured backends, cache stats and the mail queue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Status retrieved successfully"
// @Router /admin/status [get]
func (ac *AdminController) Status(c *gin.Context) {
	cache := gin.H{"connected": false}
	if ac.backends.Cache != nil {
		if stats, err := ac.backends.Cache.GetStatus(); err == nil {
			cache = stats
		} else {
			cache["error"] = err.Error()
		}
	}

	queue := gin.H{"running": false}
	if ac.backends.MailQueue != nil {
		if stats, err := ac.backends.MailQueue.GetStatus(); err == nil {
			queue = stats
		} else {
			queue["error"] = err.Error()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Status retrieved successfully",
		"data": gin.H{
			"database":   ac.backends.Database,
			"ai_key":     ac.backends.AI,
			"storage":    ac.backends.Storage,
			"mail":       ac.backends.Mail,
			"mail_queue": queue,
			"cache":      cache,
		},
	})
}
