package repository_test

import (
	"testing"
	"time"

	"eklerchik/internal/models"
	"eklerchik/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func newArticle(slug, title string, created time.Time) *models.Article {
	return &models.Article{
		Slug:      slug,
		Title:     title,
		Content:   "<p>" + title + "</p>",
		Category:  "Дети",
		CreatedAt: created,
	}
}

func TestFindAllNewestFirst(t *testing.T) {
	repo := repository.NewArticleRepository(setupTestDB(t))
	require.NoError(t, repo.Create(newArticle("staraya", "Старая", baseTime)))
	require.NoError(t, repo.Create(newArticle("novaya", "Новая", baseTime.Add(48*time.Hour))))
	require.NoError(t, repo.Create(newArticle("srednyaya", "Средняя", baseTime.Add(24*time.Hour))))

	articles, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, articles, 3)
	assert.Equal(t, "novaya", articles[0].Slug)
	assert.Equal(t, "srednyaya", articles[1].Slug)
	assert.Equal(t, "staraya", articles[2].Slug)
}

func TestFindByID(t *testing.T) {
	repo := repository.NewArticleRepository(setupTestDB(t))
	a := newArticle("pervyy", "Первый", baseTime)
	require.NoError(t, repo.Create(a))
	require.True(t, models.IsUUID(a.ID))

	found, err := repo.FindByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Первый", found.Title)

	_, err = repo.FindByID("1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.FindByID(uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindAllIsCachedUntilCreate(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	repo := repository.NewCachedArticleRepository(setupTestDB(t), rdb)
	require.NoError(t, repo.Create(newArticle("pervyy", "Первый", baseTime)))

	_, err := repo.FindAll()
	require.NoError(t, err)
	require.True(t, mr.Exists("articles:all"))
	assert.Equal(t, 30*time.Minute, mr.TTL("articles:all"))

	require.NoError(t, mr.Set("article:slug:vtoroy", `{"slug":"vtoroy","title":"Устаревший"}`))
	require.NoError(t, repo.Create(newArticle("vtoroy", "Второй", baseTime.Add(time.Hour))))

	assert.False(t, mr.Exists("articles:all"))
	assert.False(t, mr.Exists("article:slug:vtoroy"))

	articles, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestFindBySlugUsesCache(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	repo := repository.NewCachedArticleRepository(setupTestDB(t), rdb)
	require.NoError(t, repo.Create(newArticle("pervyy", "Первый", baseTime)))

	found, err := repo.FindBySlug("pervyy")
	require.NoError(t, err)
	assert.Equal(t, "Первый", found.Title)
	require.True(t, mr.Exists("article:slug:pervyy"))

	// A cached copy is served without touching the table.
	require.NoError(t, mr.Set("article:slug:pervyy", `{"slug":"pervyy","title":"Из кеша"}`))
	found, err = repo.FindBySlug("pervyy")
	require.NoError(t, err)
	assert.Equal(t, "Из кеша", found.Title)

	_, err = repo.FindBySlug("net-takoy")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaveKeepsCreationTime(t *testing.T) {
	repo := repository.NewArticleRepository(setupTestDB(t))
	a := newArticle("pervyy", "Первый", baseTime)
	require.NoError(t, repo.Create(a))

	edited := &models.Article{ID: a.ID, Slug: "pervyy", Title: "Исправленный", Category: "Еда"}
	require.NoError(t, repo.Save(edited))

	found, err := repo.FindByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Исправленный", found.Title)
	assert.Equal(t, "Еда", found.Category)
	assert.True(t, baseTime.Equal(found.CreatedAt), "created_at changed to %v", found.CreatedAt)
}

func TestSaveInsertsUnknownID(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewArticleRepository(db)
	id := uuid.NewString()

	require.NoError(t, repo.Save(&models.Article{ID: id, Slug: "novaya", Title: "Новая"}))

	found, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, "novaya", found.Slug)
	assert.False(t, found.CreatedAt.IsZero())

	var count int64
	require.NoError(t, db.Model(&models.Article{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSaveInvalidatesOldAndNewSlug(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	repo := repository.NewCachedArticleRepository(setupTestDB(t), rdb)
	a := newArticle("staryy-slug", "Статья", baseTime)
	require.NoError(t, repo.Create(a))

	for _, key := range []string{"articles:all", "article:slug:staryy-slug", "article:slug:novyy-slug", "article:slug:drugoy"} {
		require.NoError(t, mr.Set(key, "{}"))
	}

	require.NoError(t, repo.Save(&models.Article{ID: a.ID, Slug: "novyy-slug", Title: "Статья"}))

	assert.False(t, mr.Exists("articles:all"))
	assert.False(t, mr.Exists("article:slug:staryy-slug"))
	assert.False(t, mr.Exists("article:slug:novyy-slug"))
	assert.True(t, mr.Exists("article:slug:drugoy"))
}

func TestDeleteInvalidatesSlug(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	repo := repository.NewCachedArticleRepository(setupTestDB(t), rdb)
	a := newArticle("udalit", "Удалить", baseTime)
	require.NoError(t, repo.Create(a))
	require.NoError(t, mr.Set("article:slug:udalit", "{}"))
	require.NoError(t, mr.Set("articles:all", "[]"))

	require.NoError(t, repo.Delete(a.ID))

	assert.False(t, mr.Exists("article:slug:udalit"))
	assert.False(t, mr.Exists("articles:all"))
	_, err := repo.FindByID(a.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(a.ID), gorm.ErrRecordNotFound)
}

func TestUpsertBySlug(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	repo := repository.NewCachedArticleRepository(setupTestDB(t), rdb)
	existing := newArticle("pervyy", "Старый заголовок", baseTime)
	require.NoError(t, repo.Create(existing))
	require.NoError(t, mr.Set("article:slug:pervyy", "{}"))

	affected, err := repo.UpsertBySlug([]models.Article{
		{Slug: "pervyy", Title: "Новый заголовок", Content: "<p>новое</p>", Category: "Еда"},
		{Slug: "vtoroy", Title: "Второй", Category: "Дети"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)
	assert.False(t, mr.Exists("article:slug:pervyy"))

	updated, err := repo.FindBySlug("pervyy")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID, "the row keeps its id")
	assert.Equal(t, "Новый заголовок", updated.Title)
	assert.Equal(t, "<p>новое</p>", updated.Content)
	assert.Equal(t, "Еда", updated.Category)
	assert.True(t, baseTime.Equal(updated.CreatedAt), "created_at is not an upsert column")

	all, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	affected, err = repo.UpsertBySlug(nil)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestSaveAll(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	repo := repository.NewCachedArticleRepository(setupTestDB(t), rdb)
	a := newArticle("a", "А", baseTime)
	b := newArticle("b", "Б", baseTime.Add(time.Hour))
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))
	require.NoError(t, mr.Set("article:slug:a", "{}"))

	a.Content = "<p>чисто</p>"
	b.Content = "<p>тоже чисто</p>"
	require.NoError(t, repo.SaveAll([]models.Article{*a, *b}))

	found, err := repo.FindByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "<p>чисто</p>", found.Content)
	found, err = repo.FindByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "<p>тоже чисто</p>", found.Content)
	assert.False(t, mr.Exists("article:slug:a"))
}

func TestSaveAllRollsBack(t *testing.T) {
	repo := repository.NewArticleRepository(setupTestDB(t))
	a := newArticle("a", "А", baseTime)
	b := newArticle("b", "Б", baseTime)
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))

	changed := *a
	changed.Title = "Изменено"
	clash := models.Article{ID: uuid.NewString(), Slug: "b", Title: "Дубль"}

	assert.Error(t, repo.SaveAll([]models.Article{changed, clash}))

	found, err := repo.FindByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "А", found.Title)
}
