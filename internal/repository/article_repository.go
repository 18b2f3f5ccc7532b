package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"eklerchik/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	articleSlugCacheKeyPrefix = "article:slug:"
	allArticlesCacheKey       = "articles:all"
	cacheExpiration           = 30 * time.Minute
)

// ErrReadOnly is returned by article stores that cannot persist changes.
var ErrReadOnly = errors.New("database required: article store is read-only")

// upsertColumns are overwritten when an imported slug already exists.
var upsertColumns = []string{
	"title", "excerpt", "content", "date", "category", "image_url", "read_time",
	"seo_title", "seo_description", "seo_keywords", "updated_at",
}

type ArticleRepository interface {
	Create(article *models.Article) error
	FindAll() ([]models.Article, error)
	FindByID(id string) (*models.Article, error)
	FindBySlug(slug string) (*models.Article, error)
	Save(article *models.Article) error
	Delete(id string) error
	UpsertBySlug(articles []models.Article) (int64, error)
	SaveAll(articles []models.Article) error
	InvalidateAllCache() error
}

type articleRepository struct {
	db    *gorm.DB
	redis *redis.Client
	ctx   context.Context
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{
		db:  db,
		ctx: context.Background(),
	}
}

func NewCachedArticleRepository(db *gorm.DB, redisClient *redis.Client) ArticleRepository {
	return &articleRepository{
		db:    db,
		redis: redisClient,
		ctx:   context.Background(),
	}
}

func (r *articleRepository) Create(article *models.Article) error {
	if err := r.db.Create(article).Error; err != nil {
		log.Printf("Error creating article: %v", err)
		return err
	}
	r.invalidateSlugs(article.Slug)
	return nil
}

func (r *articleRepository) FindAll() ([]models.Article, error) {
	if r.redis != nil {
		if cached, err := r.redis.Get(r.ctx, allArticlesCacheKey).Result(); err == nil {
			var articles []models.Article
			if err := json.Unmarshal([]byte(cached), &articles); err == nil {
				return articles, nil
			}
		}
	}

	var articles []models.Article
	if err := r.db.Order("created_at desc").Find(&articles).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(articles); err == nil {
			if err := r.redis.Set(r.ctx, allArticlesCacheKey, data, cacheExpiration).Err(); err != nil {
				log.Printf("Failed to cache all articles: %v", err)
			}
		}
	}
	return articles, nil
}

func (r *articleRepository) FindByID(id string) (*models.Article, error) {
	if !models.IsUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var article models.Article
	if err := r.db.Where("id = ?", id).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindBySlug(slug string) (*models.Article, error) {
	key := articleSlugCacheKeyPrefix + slug
	if r.redis != nil {
		if cached, err := r.redis.Get(r.ctx, key).Result(); err == nil {
			var article models.Article
			if err := json.Unmarshal([]byte(cached), &article); err == nil {
				return &article, nil
			}
			log.Printf("Failed to unmarshal cached article %s: %v", slug, err)
		}
	}

	var article models.Article
	if err := r.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(article); err == nil {
			if err := r.redis.Set(r.ctx, key, data, cacheExpiration).Err(); err != nil {
				log.Printf("Failed to cache article %s: %v", slug, err)
			}
		}
	}
	return &article, nil
}

// Save inserts the article or replaces the row with the same id. The
// original creation time is kept when the caller does not send one.
func (r *articleRepository) Save(article *models.Article) error {
	var previous models.Article
	err := r.db.Select("slug", "created_at").Where("id = ?", article.ID).First(&previous).Error
	switch {
	case err == nil:
		if article.CreatedAt.IsZero() {
			article.CreatedAt = previous.CreatedAt
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return err
	}

	if err := r.db.Save(article).Error; err != nil {
		log.Printf("Error saving article %s: %v", article.ID, err)
		return err
	}
	// The previous slug has to leave the cache as well when it changes.
	r.invalidateSlugs(previous.Slug, article.Slug)
	return nil
}

func (r *articleRepository) Delete(id string) error {
	var article models.Article
	if err := r.db.Select("id", "slug").Where("id = ?", id).First(&article).Error; err != nil {
		return err
	}
	if err := r.db.Delete(&models.Article{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.invalidateSlugs(article.Slug)
	return nil
}

// UpsertBySlug inserts the batch, replacing the content of rows whose slug
// already exists. It returns the number of affected rows.
func (r *articleRepository) UpsertBySlug(articles []models.Article) (int64, error) {
	if len(articles) == 0 {
		return 0, nil
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(&articles)
	if result.Error != nil {
		return 0, result.Error
	}
	r.flushSlugCache(articles)
	return result.RowsAffected, nil
}

func (r *articleRepository) SaveAll(articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range articles {
			if err := tx.Save(&articles[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.flushSlugCache(articles)
	return nil
}

func (r *articleRepository) InvalidateAllCache() error {
	if r.redis == nil {
		return nil
	}
	return r.redis.Del(r.ctx, allArticlesCacheKey).Err()
}

func (r *articleRepository) flushSlugCache(articles []models.Article) {
	slugs := make([]string, 0, len(articles))
	for _, a := range articles {
		slugs = append(slugs, a.Slug)
	}
	r.invalidateSlugs(slugs...)
}

func (r *articleRepository) invalidateSlugs(slugs ...string) {
	if r.redis == nil {
		return
	}
	keys := []string{allArticlesCacheKey}
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, articleSlugCacheKeyPrefix+s)
		}
	}
	if err := r.redis.Del(r.ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate article cache: %v", err)
	}
}
