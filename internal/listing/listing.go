package listing

import (
	"strings"

	"eklerchik/internal/content"
	"eklerchik/internal/models"
)

const DefaultPerPage = 6

const (
	placeholderTitle    = "Без названия"
	placeholderImage    = "https://picsum.photos/800/600"
	placeholderCategory = "Блог"
	placeholderDate     = "Недавно"
)

type Page struct {
	Articles   []models.Article `json:"articles"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// Filter keeps articles of the given category whose title, excerpt or
// content contains query (case-insensitive). Empty arguments match all.
func Filter(articles []models.Article, category, query string) []models.Article {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if category != "" && a.Category != category {
			continue
		}
		if q != "" && !matches(a, q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matches(a models.Article, q string) bool {
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Excerpt), q) ||
		strings.Contains(strings.ToLower(a.Content), q)
}

// Paginate slices articles into 1-based pages.
func Paginate(articles []models.Article, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}
	total := len(articles)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Articles:   articles[start:end],
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Categories returns distinct non-empty categories in first-seen order.
func Categories(articles []models.Article) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, a := range articles {
		if a.Category == "" || seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		out = append(out, a.Category)
	}
	return out
}

// Sanitize replaces missing display fields with placeholders so a broken
// record still renders.
func Sanitize(a models.Article) models.Article {
	if strings.TrimSpace(a.Title) == "" {
		a.Title = placeholderTitle
	}
	if a.ImageURL == "" {
		a.ImageURL = placeholderImage
	}
	if a.Category == "" {
		a.Category = placeholderCategory
	}
	if a.ReadTime == "" {
		a.ReadTime = content.DefaultReadTime
	}
	if a.Date == "" {
		a.Date = placeholderDate
	}
	if a.Slug == "" {
		a.Slug = a.ID
	}
	return a
}

func SanitizeAll(articles []models.Article) []models.Article {
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		out = append(out, Sanitize(a))
	}
	return out
}
