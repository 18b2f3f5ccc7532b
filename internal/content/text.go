package content

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultReadTime = "5 мин"
	dateLayout      = "02.01.2006"
)

// FormatDate renders t the way the blog displays dates (ru-RU short date).
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// PlainText returns the visible text of an HTML fragment.
func PlainText(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return doc.Text()
}

// Excerpt returns the first n runes of the fragment's text followed by "...".
func Excerpt(html string, n int) string {
	return Truncate(PlainText(html), n) + "..."
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// EnsureParagraphs wraps every non-blank line in a paragraph when the
// content carries no <p> markup at all.
func EnsureParagraphs(html string) string {
	if strings.Contains(html, "<p>") {
		return html
	}
	var b strings.Builder
	for _, line := range strings.Split(html, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(`<p class="mb-4">`)
		b.WriteString(line)
		b.WriteString("</p>")
	}
	return b.String()
}
