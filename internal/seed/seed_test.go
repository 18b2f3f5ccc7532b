package seed_test

import (
	"testing"

	"eklerchik/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinArticles(t *testing.T) {
	articles := seed.Articles()
	require.Len(t, articles, 3)
	assert.Equal(t, "kak-perezhit-pervyy-god", articles[0].Slug)
	assert.Equal(t, "Еда", articles[1].Category)
	assert.Contains(t, articles[2].Content, "<p>Первый день в саду")
	assert.Nil(t, articles[0].SEOKeywords)
}

func TestParse(t *testing.T) {
	data := []byte(`
- id: "x"
  slug: test
  title: Тест
  seoKeywords: мама, дети
  secondaryImageUrl: https://example.com/2.jpg
`)
	articles, err := seed.Parse(data)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	require.NotNil(t, articles[0].SEOKeywords)
	assert.Equal(t, "мама, дети", *articles[0].SEOKeywords)
	assert.Equal(t, "https://example.com/2.jpg", *articles[0].SecondaryImageURL)
	assert.Nil(t, articles[0].SecondaryImageAlt)
}

func TestParseInvalid(t *testing.T) {
	_, err := seed.Parse([]byte("not: [valid"))
	assert.Error(t, err)
}
