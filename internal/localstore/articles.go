package localstore

import (
	"eklerchik/internal/models"
	"eklerchik/internal/repository"

	"gorm.io/gorm"
)

type seedArticleRepository struct {
	articles []models.Article
}

// NewSeedArticleRepository serves a fixed article set. Every write fails
// with repository.ErrReadOnly.
func NewSeedArticleRepository(articles []models.Article) repository.ArticleRepository {
	return &seedArticleRepository{articles: articles}
}

func (r *seedArticleRepository) FindAll() ([]models.Article, error) {
	out := make([]models.Article, len(r.articles))
	copy(out, r.articles)
	return out, nil
}

func (r *seedArticleRepository) FindByID(id string) (*models.Article, error) {
	for i := range r.articles {
		if r.articles[i].ID == id {
			a := r.articles[i]
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *seedArticleRepository) FindBySlug(slug string) (*models.Article, error) {
	for i := range r.articles {
		if r.articles[i].Slug == slug {
			a := r.articles[i]
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *seedArticleRepository) Create(*models.Article) error { return repository.ErrReadOnly }

func (r *seedArticleRepository) Save(*models.Article) error { return repository.ErrReadOnly }

func (r *seedArticleRepository) Delete(string) error { return repository.ErrReadOnly }

func (r *seedArticleRepository) UpsertBySlug([]models.Article) (int64, error) {
	return 0, repository.ErrReadOnly
}

func (r *seedArticleRepository) SaveAll([]models.Article) error { return repository.ErrReadOnly }

func (r *seedArticleRepository) InvalidateAllCache() error { return nil }
