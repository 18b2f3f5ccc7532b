package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Upload kinds accepted by the admin upload endpoint.
const (
	KindArticle          = "article"
	KindArticleSecondary = "article_secondary"
	KindHero             = "hero"
	KindDecoLeft         = "deco_left"
	KindDecoRight        = "deco_right"
	KindLogo             = "logo"
	KindAbout            = "about"
	KindFavicon          = "favicon"
)

const siteImagePrefix = "hero/"

var siteKinds = map[string]bool{
	KindHero:      true,
	KindDecoLeft:  true,
	KindDecoRight: true,
	KindLogo:      true,
	KindAbout:     true,
	KindFavicon:   true,
}

func ValidKind(kind string) bool {
	return kind == KindArticle || kind == KindArticleSecondary || siteKinds[kind]
}

// ObjectKey names an uploaded file: <unix-ms>-<random>.<ext>, under hero/
// for site imagery.
func ObjectKey(kind, filename string, now time.Time) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "png"
	}
	key := fmt.Sprintf("%d-%s.%s", now.UnixMilli(), uuid.NewString()[:8], ext)
	if siteKinds[kind] {
		return siteImagePrefix + key
	}
	return key
}

// GeneratedImageKey names an AI illustration.
func GeneratedImageKey(now time.Time) string {
	return fmt.Sprintf("%d-ai-gen.png", now.UnixMilli())
}
