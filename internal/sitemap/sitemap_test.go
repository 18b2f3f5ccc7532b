package sitemap_test

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"eklerchik/internal/sitemap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	today := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
	entries := []sitemap.Entry{
		{Slug: "kak-vyzhit", Date: "2025-05-01"},
		{Slug: "utro-mamy", Date: "15.10.2025"},
		{Slug: "", Date: "2025-01-01"},
	}

	out, err := sitemap.Build("https://miss-eklerchik.ru/", entries, today)
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, doc, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)

	var parsed struct {
		URLs []struct {
			Loc        string `xml:"loc"`
			LastMod    string `xml:"lastmod"`
			ChangeFreq string `xml:"changefreq"`
			Priority   string `xml:"priority"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(out, &parsed))
	require.Len(t, parsed.URLs, 3)

	assert.Equal(t, "https://miss-eklerchik.ru/", parsed.URLs[0].Loc)
	assert.Equal(t, "2026-10-15", parsed.URLs[0].LastMod)
	assert.Equal(t, "daily", parsed.URLs[0].ChangeFreq)
	assert.Equal(t, "1.0", parsed.URLs[0].Priority)

	assert.Equal(t, "https://miss-eklerchik.ru/kak-vyzhit", parsed.URLs[1].Loc)
	assert.Equal(t, "2025-05-01", parsed.URLs[1].LastMod)
	assert.Equal(t, "weekly", parsed.URLs[1].ChangeFreq)
	assert.Equal(t, "0.8", parsed.URLs[1].Priority)

	assert.Equal(t, "https://miss-eklerchik.ru/utro-mamy", parsed.URLs[2].Loc)
	assert.Equal(t, "2026-10-15", parsed.URLs[2].LastMod)
}

func TestLastMod(t *testing.T) {
	tests := []struct {
		date     string
		expected string
	}{
		{"2025-05-01", "2025-05-01"},
		{"2025-05-01T23:30:00+03:00", "2025-05-01"},
		{"2025-05-01 10:00:00", "2025-05-01"},
		{"15.10.2025", "2026-10-15"},
		{"2025-5-1", "2026-10-15"},
		{"not-a-date-at-all", "2026-10-15"},
		{"", "2026-10-15"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.expected, sitemap.LastMod(tt.date, "2026-10-15"))
		})
	}
}
