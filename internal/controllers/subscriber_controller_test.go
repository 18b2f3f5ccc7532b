package controllers_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"eklerchik/internal/controllers"
	"eklerchik/internal/mocks"
	"eklerchik/internal/models"
	"eklerchik/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func subscriberRouter(controller *controllers.SubscriberController) *gin.Engine {
	router := setupTestRouter()
	router.POST("/subscribers", controller.Subscribe)
	router.GET("/admin/subscribers", controller.ListSubscribers)
	return router
}

func TestSubscribe(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*mocks.MockSubscriberRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "successful subscription",
			requestBody: map[string]interface{}{"email": "mama@example.com"},
			setupMock: func(m *mocks.MockSubscriberRepository) {
				m.On("ExistsByEmail", "mama@example.com").Return(false, nil)
				m.On("Create", mock.MatchedBy(func(s *models.Subscriber) bool {
					return s.Email == "mama@example.com"
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Subscribed successfully",
		},
		{
			name:           "invalid email",
			requestBody:    map[string]interface{}{"email": "not-an-email"},
			setupMock:      func(m *mocks.MockSubscriberRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid email",
		},
		{
			name:        "already subscribed",
			requestBody: map[string]interface{}{"email": "mama@example.com"},
			setupMock: func(m *mocks.MockSubscriberRepository) {
				m.On("ExistsByEmail", "mama@example.com").Return(true, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Already subscribed",
		},
		{
			name:        "repository error",
			requestBody: map[string]interface{}{"email": "mama@example.com"},
			setupMock: func(m *mocks.MockSubscriberRepository) {
				m.On("ExistsByEmail", "mama@example.com").Return(false, nil)
				m.On("Create", mock.AnythingOfType("*models.Subscriber")).Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Failed to subscribe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockSubscriberRepository)
			tt.setupMock(mockRepo)
			controller := controllers.NewSubscriberController(mockRepo, nil, "https://miss-eklerchik.ru")

			w := performJSON(subscriberRouter(controller), http.MethodPost, "/subscribers", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, decode(t, w)["message"])
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSubscribeSendsWelcomeMail(t *testing.T) {
	mockRepo := new(mocks.MockSubscriberRepository)
	mockRepo.On("ExistsByEmail", "mama@example.com").Return(false, nil)
	mockRepo.On("Create", mock.AnythingOfType("*models.Subscriber")).Return(nil)

	sent := make(chan string, 1)
	mailer := new(mocks.MockMailer)
	mailer.On("SendEmail", "mama@example.com", utils.WelcomeSubject, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sent <- args.String(0) }).
		Return(errors.New("smtp down"))

	controller := controllers.NewSubscriberController(mockRepo, mailer, "https://miss-eklerchik.ru")
	w := performJSON(subscriberRouter(controller), http.MethodPost, "/subscribers", map[string]interface{}{"email": "mama@example.com"})

	assert.Equal(t, http.StatusCreated, w.Code)
	select {
	case to := <-sent:
		assert.Equal(t, "mama@example.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("welcome mail was not sent")
	}
}

func TestListSubscribers(t *testing.T) {
	mockRepo := new(mocks.MockSubscriberRepository)
	mockRepo.On("FindAll").Return([]models.Subscriber{{ID: "1", Email: "a@example.com"}, {ID: "2", Email: "b@example.com"}}, nil)
	controller := controllers.NewSubscriberController(mockRepo, nil, "")

	w := performJSON(subscriberRouter(controller), http.MethodGet, "/admin/subscribers", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 2)
}
