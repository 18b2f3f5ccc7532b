package content

import (
	"regexp"
	"strings"
)

var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e", 'ж': "zh",
	'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "h", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "sch", 'ы': "y", 'э': "e", 'ю': "yu", 'я': "ya",
}

var (
	nonSlugCharRe = regexp.MustCompile(`[^a-z0-9-]`)
	dashRunRe     = regexp.MustCompile(`-+`)
)

// Slugify turns a (usually Russian) title into a URL slug. Hard and soft
// signs have no latin letter and become separators, so "подъезд" is
// "pod-ezd"; slugs already published depend on it.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if latin, ok := cyrillicToLatin[r]; ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}
	slug := nonSlugCharRe.ReplaceAllString(b.String(), "-")
	slug = dashRunRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
