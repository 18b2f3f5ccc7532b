package wxr

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"eklerchik/internal/content"
	"eklerchik/internal/models"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

var ErrNoItems = errors.New("no <item> entries found in WordPress export")

const (
	defaultCategory = "Блог"
	excerptLength   = 150
	adParagraph     = 2
	wpPostDate      = "2006-01-02 15:04:05"
)

var (
	seoTitleKeys       = []string{"_yoast_wpseo_title", "_aioseop_title", "rank_math_title"}
	seoDescriptionKeys = []string{"_yoast_wpseo_metadesc", "_aioseop_description", "rank_math_description"}
	seoKeywordKeys     = []string{"_yoast_wpseo_focuskw", "_aioseop_keywords", "rank_math_focus_keyword"}

	skippedPostTypes = map[string]bool{"attachment": true, "nav_menu_item": true}
)

type Options struct {
	// Clean runs the full HTML cleanup; otherwise only caption shortcodes go.
	Clean bool
	// InjectAd places the promo block after the second paragraph.
	InjectAd bool
	Ad       content.Ad
	Now      time.Time
}

// Parse maps every post of a WordPress export onto an article ready to be
// upserted by slug.
func Parse(r io.Reader, opts Options) ([]models.Article, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse WordPress export: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, ErrNoItems
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	var adHTML string
	if opts.InjectAd {
		adHTML, err = content.ImportAdHTML(opts.Ad)
		if err != nil {
			return nil, fmt.Errorf("failed to render ad block: %w", err)
		}
	}

	articles := make([]models.Article, 0, len(feed.Items))
	// One upsert statement cannot touch the same slug twice, so a later post
	// with an already seen slug replaces the earlier one.
	bySlug := make(map[string]int)
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		if skippedPostTypes[wpValue(item.Extensions, "post_type")] {
			continue
		}

		article := mapItem(item, opts, adHTML)
		if article.Slug == "" {
			article.Slug = fmt.Sprintf("article-%d-%d", opts.Now.UnixMilli(), len(articles)+1)
		}
		if i, ok := bySlug[article.Slug]; ok {
			articles[i] = article
			continue
		}
		bySlug[article.Slug] = len(articles)
		articles = append(articles, article)
	}
	return articles, nil
}

func mapItem(item *gofeed.Item, opts Options, adHTML string) models.Article {
	title := strings.TrimSpace(item.Title)

	body := item.Content
	if body == "" {
		body = extValue(item.Extensions, "content", "encoded")
	}
	if opts.Clean {
		body = content.CleanHTML(body)
	} else {
		body = content.StripCaptions(body)
	}
	body = content.EnsureParagraphs(body)
	if opts.InjectAd {
		body = content.InjectAfterParagraph(body, adHTML, adParagraph)
	}

	category := defaultCategory
	if len(item.Categories) > 0 && strings.TrimSpace(item.Categories[0]) != "" {
		category = strings.TrimSpace(item.Categories[0])
	}

	slug := wpValue(item.Extensions, "post_name")
	if slug == "" {
		slug = content.Slugify(title)
	}

	seoTitle, seoDescription, seoKeywords := seoMeta(item.Extensions)
	excerpt := content.Excerpt(body, excerptLength)
	if seoTitle == "" {
		seoTitle = title
	}
	if seoDescription == "" {
		seoDescription = excerpt
	}

	article := models.Article{
		Slug:           slug,
		Title:          title,
		Excerpt:        excerpt,
		Content:        body,
		Date:           content.FormatDate(publishedAt(item, opts.Now)),
		Category:       category,
		ImageURL:       fmt.Sprintf("https://picsum.photos/800/600?random=%d", rand.IntN(1000)),
		ReadTime:       content.DefaultReadTime,
		SEOTitle:       seoTitle,
		SEODescription: seoDescription,
	}
	if seoKeywords != "" {
		article.SEOKeywords = &seoKeywords
	}
	return article
}

func publishedAt(item *gofeed.Item, now time.Time) time.Time {
	if raw := wpValue(item.Extensions, "post_date"); raw != "" {
		if t, err := time.Parse(wpPostDate, raw); err == nil {
			return t
		}
	}
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	return now
}

func seoMeta(extensions ext.Extensions) (title, description, keywords string) {
	for _, meta := range extensions["wp"]["postmeta"] {
		key := childValue(meta, "meta_key")
		val := childValue(meta, "meta_value")
		if key == "" || val == "" {
			continue
		}
		switch {
		case contains(seoTitleKeys, key):
			title = val
		case contains(seoDescriptionKeys, key):
			description = val
		case contains(seoKeywordKeys, key):
			keywords = val
		}
	}
	return title, description, keywords
}

func wpValue(extensions ext.Extensions, name string) string {
	return extValue(extensions, "wp", name)
}

func extValue(extensions ext.Extensions, prefix, name string) string {
	values := extensions[prefix][name]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}

func childValue(e ext.Extension, name string) string {
	children := e.Children[name]
	if len(children) == 0 {
		return ""
	}
	return strings.TrimSpace(children[0].Value)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
