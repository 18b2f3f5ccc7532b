package content

import (
	"regexp"
)

var (
	htmlCommentRe  = regexp.MustCompile(`(?s)<!--.*?-->`)
	scriptBlockRe  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleBlockRe   = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	anchorTagRe    = regexp.MustCompile(`(?i)</?a\b[^>]*>`)
	shortcodeRe    = regexp.MustCompile(`\[/?[\w-]+[^\]]*\]`)
	captionOpenRe  = regexp.MustCompile(`\[caption[^\]]*\]`)
	captionCloseRe = regexp.MustCompile(`\[/caption\]`)
	dataAttrRe     = regexp.MustCompile(`(?i)\sdata-[a-z0-9\-]+="[^"]*"`)
	spanTagRe      = regexp.MustCompile(`(?i)</?span\b[^>]*>`)
	nbspRe         = regexp.MustCompile(`(?i)&nbsp;`)
	emptyParaRe    = regexp.MustCompile(`(?i)<p>\s*</p>`)
	blankLinesRe   = regexp.MustCompile(`\n\s*\n`)
)

var strippedAttrRe []*regexp.Regexp

// StrippedAttributes are removed from every tag by CleanHTML.
var StrippedAttributes = []string{"style", "class", "width", "height", "id", "align", "face", "dir", "lang"}

func init() {
	for _, attr := range StrippedAttributes {
		strippedAttrRe = append(strippedAttrRe,
			regexp.MustCompile(`(?i)\s`+attr+`=["'][^"']*["']`),
			regexp.MustCompile(`(?i)\s`+attr+`=[^\s>]+`),
		)
	}
}

// CleanHTML strips the markup WordPress and rich-text editors leave behind:
// comments, scripts and styles, links (text kept), shortcodes, presentational
// attributes, spans (text kept) and empty paragraphs.
func CleanHTML(html string) string {
	if html == "" {
		return ""
	}
	out := htmlCommentRe.ReplaceAllString(html, "")
	out = scriptBlockRe.ReplaceAllString(out, "")
	out = styleBlockRe.ReplaceAllString(out, "")
	out = anchorTagRe.ReplaceAllString(out, "")
	out = shortcodeRe.ReplaceAllString(out, "")
	for _, re := range strippedAttrRe {
		out = re.ReplaceAllString(out, "")
	}
	out = dataAttrRe.ReplaceAllString(out, "")
	out = spanTagRe.ReplaceAllString(out, "")
	out = nbspRe.ReplaceAllString(out, " ")
	out = emptyParaRe.ReplaceAllString(out, "")
	out = blankLinesRe.ReplaceAllString(out, "\n")
	return out
}

// StripCaptions is the minimal cleanup applied to imports when the full pass is off.
func StripCaptions(html string) string {
	out := captionOpenRe.ReplaceAllString(html, "")
	return captionCloseRe.ReplaceAllString(out, "")
}
