package repository

import (
	"eklerchik/internal/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	FindByArticleID(articleID string) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) FindByArticleID(articleID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("article_id = ?", articleID).Order("created_at desc").Find(&comments).Error
	return comments, err
}
