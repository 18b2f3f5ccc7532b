package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Article struct {
	ID                string    `gorm:"primaryKey;type:uuid" json:"id" example:"3f1c2d4e-5a6b-4c7d-8e9f-0a1b2c3d4e5f"`
	Slug              string    `gorm:"uniqueIndex;not null" json:"slug" example:"kak-vyzhit-v-dekrete"`
	Title             string    `json:"title" validate:"required" example:"Как выжить в декрете"`
	Excerpt           string    `json:"excerpt"`
	Content           string    `gorm:"type:text" json:"content"`
	Date              string    `json:"date" example:"15.10.2026"`
	Category          string    `gorm:"index" json:"category" example:"Жизнь"`
	ImageURL          string    `json:"imageUrl"`
	ReadTime          string    `json:"readTime" example:"5 мин"`
	SEOTitle          string    `json:"seoTitle,omitempty"`
	SEODescription    string    `json:"seoDescription,omitempty"`
	SEOKeywords       *string   `json:"seoKeywords,omitempty"`
	SecondaryImageURL *string   `json:"secondaryImageUrl,omitempty"`
	SecondaryImageAlt *string   `json:"secondaryImageAlt,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// IsUUID reports whether id is a canonical uuid. Ids of built-in seed
// articles are not, and such records are inserted as new rows on save.
func IsUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
