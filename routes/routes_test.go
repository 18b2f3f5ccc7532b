package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eklerchik/internal/controllers"
	"eklerchik/internal/middleware"
	"eklerchik/internal/mocks"
	"eklerchik/internal/seed"
	"eklerchik/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var secret = []byte("routes-secret")

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	articleRepo := new(mocks.MockArticleRepository)
	articleRepo.On("FindAll").Return(nil, nil)
	articleRepo.On("FindBySlug", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	articleRepo.On("FindByID", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	articleRepo.On("SaveAll", mock.Anything).Return(nil)
	articleRepo.On("Delete", mock.Anything).Return(nil)
	settingRepo := new(mocks.MockSiteSettingRepository)
	settingRepo.On("FindAll").Return(map[string]string{}, nil)
	subscriberRepo := new(mocks.MockSubscriberRepository)
	subscriberRepo.On("FindAll").Return(nil, nil)

	ai := new(mocks.MockAIService)
	ai.On("Configured").Return(false)

	adminAuth := middleware.AdminAuthMiddleware(secret)
	articles := controllers.NewArticleController(articleRepo, seed.Articles(), 6)
	editor := controllers.NewEditorController()

	routes.RegisterArticleRoutes(router, adminAuth, articles, editor)
	routes.RegisterCommentRoutes(router, controllers.NewCommentController(new(mocks.MockCommentRepository), articles))
	routes.RegisterSubscriberRoutes(router, adminAuth, controllers.NewSubscriberController(subscriberRepo, nil, ""))
	routes.RegisterSettingsRoutes(router, adminAuth, controllers.NewSettingsController(settingRepo))
	routes.RegisterChatRoutes(router, controllers.NewChatController(new(mocks.MockChatSender)))
	routes.RegisterSitemapRoutes(router, adminAuth, controllers.NewSitemapController(articles, "https://blog.example.com"))
	routes.RegisterAdminRoutes(router, adminAuth,
		controllers.NewAdminController("1234", secret, controllers.Backends{}),
		controllers.NewAIController(ai, nil),
		controllers.NewUploadController(nil),
		editor,
	)
	return router
}

func request(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPublicRoutes(t *testing.T) {
	router := setupRouter(t)

	for _, path := range []string{"/articles", "/settings", "/sitemap.xml", "/articles/zavtrak-za-pyat-minut"} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusOK, request(router, http.MethodGet, path, "").Code)
		})
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := setupRouter(t)
	token, err := middleware.IssueAdminToken(secret, time.Now())
	require.NoError(t, err)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/articles"},
		{http.MethodGet, "/admin/subscribers"},
		{http.MethodGet, "/admin/settings"},
		{http.MethodGet, "/admin/sitemap"},
		{http.MethodGet, "/admin/status"},
		{http.MethodPost, "/admin/articles/cleanup"},
		{http.MethodPost, "/admin/ai/snippet"},
		{http.MethodPost, "/admin/uploads"},
		{http.MethodPost, "/admin/ads"},
		{http.MethodDelete, "/admin/articles/3f1c2d4e-5a6b-4c7d-8e9f-0a1b2c3d4e5f"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := request(router, tt.method, tt.path, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			w = request(router, tt.method, tt.path, token)
			assert.NotEqual(t, http.StatusUnauthorized, w.Code)
			assert.NotEqual(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestLoginIsPublic(t *testing.T) {
	router := setupRouter(t)
	w := request(router, http.MethodPost, "/admin/login", "")
	// No body: rejected by validation, not by the auth middleware.
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
