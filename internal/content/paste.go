package content

import (
	"strings"
	"time"

	"eklerchik/internal/models"
)

const (
	smartPasteCategory   = "Новое"
	smartPasteExcerptLen = 160
)

// SmartPaste builds an article draft from raw text: the first line is the
// title, every following line becomes a paragraph.
func SmartPaste(text string, now time.Time) (*models.Article, bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, false
	}

	title := lines[0]
	excerpt := ""
	if len(lines) > 1 {
		excerpt = Truncate(lines[1], smartPasteExcerptLen)
	}

	paragraphs := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		paragraphs = append(paragraphs, "<p>"+line+"</p>")
	}

	return &models.Article{
		Title:          title,
		Slug:           Slugify(title),
		Content:        strings.Join(paragraphs, "\n"),
		Excerpt:        excerpt + "...",
		SEOTitle:       title,
		SEODescription: excerpt,
		Date:           FormatDate(now),
		Category:       smartPasteCategory,
		ReadTime:       DefaultReadTime,
	}, true
}
