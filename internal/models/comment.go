package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserName  string    `gorm:"not null" json:"user_name" example:"Оля"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ArticleID string    `gorm:"index;not null" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
