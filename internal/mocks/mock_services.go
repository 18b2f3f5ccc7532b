package mocks

import (
	"context"

	"eklerchik/internal/genai"

	"github.com/stretchr/testify/mock"
)

type MockAIService struct {
	mock.Mock
}

func (m *MockAIService) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockAIService) SuggestCategory(ctx context.Context, title, snippet string) string {
	args := m.Called(ctx, title, snippet)
	return args.String(0)
}

func (m *MockAIService) GenerateSnippet(ctx context.Context, title, body string) (string, error) {
	args := m.Called(ctx, title, body)
	return args.String(0), args.Error(1)
}

func (m *MockAIService) ImproveContent(ctx context.Context, body string) (string, error) {
	args := m.Called(ctx, body)
	return args.String(0), args.Error(1)
}

func (m *MockAIService) GenerateImage(ctx context.Context, topic string) (*genai.Image, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.Image), args.Error(1)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendEmail(recipient, subject, message string) error {
	args := m.Called(recipient, subject, message)
	return args.Error(0)
}

type MockChatSender struct {
	mock.Mock
}

func (m *MockChatSender) Send(ctx context.Context, sessionID, message string) genai.Reply {
	args := m.Called(ctx, sessionID, message)
	return args.Get(0).(genai.Reply)
}
