package seed

import (
	_ "embed"
	"fmt"
	"os"

	"eklerchik/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed articles.yaml
var builtinArticles []byte

type seedArticle struct {
	ID                string `yaml:"id"`
	Slug              string `yaml:"slug"`
	Title             string `yaml:"title"`
	Excerpt           string `yaml:"excerpt"`
	Content           string `yaml:"content"`
	Date              string `yaml:"date"`
	Category          string `yaml:"category"`
	ImageURL          string `yaml:"imageUrl"`
	ReadTime          string `yaml:"readTime"`
	SEOTitle          string `yaml:"seoTitle"`
	SEODescription    string `yaml:"seoDescription"`
	SEOKeywords       string `yaml:"seoKeywords"`
	SecondaryImageURL string `yaml:"secondaryImageUrl"`
	SecondaryImageAlt string `yaml:"secondaryImageAlt"`
}

// Articles returns the articles shipped with the binary. They are shown when
// the database holds no articles yet.
func Articles() []models.Article {
	articles, err := Parse(builtinArticles)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded seed articles: %v", err))
	}
	return articles
}

// LoadFile reads seed articles from a YAML file.
func LoadFile(path string) ([]models.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) ([]models.Article, error) {
	var raw []seedArticle
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal seed articles: %w", err)
	}
	articles := make([]models.Article, 0, len(raw))
	for _, s := range raw {
		articles = append(articles, models.Article{
			ID:                s.ID,
			Slug:              s.Slug,
			Title:             s.Title,
			Excerpt:           s.Excerpt,
			Content:           s.Content,
			Date:              s.Date,
			Category:          s.Category,
			ImageURL:          s.ImageURL,
			ReadTime:          s.ReadTime,
			SEOTitle:          s.SEOTitle,
			SEODescription:    s.SEODescription,
			SEOKeywords:       optional(s.SEOKeywords),
			SecondaryImageURL: optional(s.SecondaryImageURL),
			SecondaryImageAlt: optional(s.SecondaryImageAlt),
		})
	}
	return articles, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
