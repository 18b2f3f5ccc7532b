package mocks

import (
	"eklerchik/internal/models"

	"github.com/stretchr/testify/mock"
)

// Shared MockArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(article *models.Article) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockArticleRepository) FindAll() ([]models.Article, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

func (m *MockArticleRepository) FindByID(id string) (*models.Article, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) FindBySlug(slug string) (*models.Article, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) Save(article *models.Article) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockArticleRepository) UpsertBySlug(articles []models.Article) (int64, error) {
	args := m.Called(articles)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArticleRepository) SaveAll(articles []models.Article) error {
	args := m.Called(articles)
	return args.Error(0)
}

func (m *MockArticleRepository) InvalidateAllCache() error {
	args := m.Called()
	return args.Error(0)
}

// Shared MockSubscriberRepository
type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) Create(subscriber *models.Subscriber) error {
	args := m.Called(subscriber)
	return args.Error(0)
}

func (m *MockSubscriberRepository) FindAll() ([]models.Subscriber, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

// Shared MockCommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByArticleID(articleID string) ([]models.Comment, error) {
	args := m.Called(articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

// Shared MockSiteSettingRepository
type MockSiteSettingRepository struct {
	mock.Mock
}

func (m *MockSiteSettingRepository) FindAll() (map[string]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSiteSettingRepository) Upsert(settings map[string]string) error {
	args := m.Called(settings)
	return args.Error(0)
}
