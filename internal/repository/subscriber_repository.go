package repository

import (
	"eklerchik/internal/models"

	"gorm.io/gorm"
)

type SubscriberRepository interface {
	Create(subscriber *models.Subscriber) error
	FindAll() ([]models.Subscriber, error)
	ExistsByEmail(email string) (bool, error)
}

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(subscriber *models.Subscriber) error {
	return r.db.Create(subscriber).Error
}

func (r *subscriberRepository) FindAll() ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := r.db.Order("created_at desc").Find(&subscribers).Error
	return subscribers, err
}

func (r *subscriberRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscriber{}).Where("lower(email) = lower(?)", email).Count(&count).Error
	return count > 0, err
}
