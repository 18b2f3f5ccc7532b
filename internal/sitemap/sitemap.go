package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

const (
	namespace   = "http://www.sitemaps.org/schemas/sitemap/0.9"
	isoDate     = "2006-01-02"
	homeFreq    = "daily"
	homePrio    = "1.0"
	articleFreq = "weekly"
	articlePrio = "0.8"
)

// Entry is the slice of an article the sitemap needs.
type Entry struct {
	Slug string
	Date string
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []url    `xml:"url"`
}

type url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Build renders sitemap.xml for the home page and every article.
func Build(baseURL string, entries []Entry, today time.Time) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	todayStr := today.Format(isoDate)

	set := urlSet{
		Xmlns: namespace,
		URLs: []url{{
			Loc:        base + "/",
			LastMod:    todayStr,
			ChangeFreq: homeFreq,
			Priority:   homePrio,
		}},
	}
	for _, e := range entries {
		if e.Slug == "" {
			continue
		}
		set.URLs = append(set.URLs, url{
			Loc:        base + "/" + e.Slug,
			LastMod:    LastMod(e.Date, todayStr),
			ChangeFreq: articleFreq,
			Priority:   articlePrio,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// LastMod returns the article date as YYYY-MM-DD when it is ISO formatted.
// Display dates such as "15.10.2026" fall back to today.
func LastMod(date, today string) string {
	if !strings.Contains(date, "-") || len(date) < len(isoDate) {
		return today
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.UTC().Format(isoDate)
	}
	if t, err := time.Parse(isoDate, date[:len(isoDate)]); err == nil {
		return t.Format(isoDate)
	}
	return today
}
