package content_test

import (
	"testing"

	"eklerchik/internal/content"

	"github.com/stretchr/testify/assert"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "comments removed",
			input:    "<p>a<!-- wp:paragraph -->b</p>",
			expected: "<p>ab</p>",
		},
		{
			name:     "script and style blocks removed",
			input:    "<SCRIPT type=\"text/javascript\">\nalert(1)\n</SCRIPT><p>x</p><style>p{color:red}</style>",
			expected: "<p>x</p>",
		},
		{
			name:     "links unwrapped",
			input:    `<p>Читайте <a href="https://example.com" target="_blank">здесь</a></p>`,
			expected: "<p>Читайте здесь</p>",
		},
		{
			name:     "shortcodes removed",
			input:    `[caption id="attachment_1" align="alignnone"]<img src="a.jpg">[/caption]`,
			expected: `<img src="a.jpg">`,
		},
		{
			name:     "presentational attributes removed",
			input:    `<p style="color: red" class='big' id=intro dir="ltr">x</p>`,
			expected: "<p>x</p>",
		},
		{
			name:     "data attributes removed",
			input:    `<img src="a.jpg" data-lazy-src="b.jpg" data-id="5">`,
			expected: `<img src="a.jpg">`,
		},
		{
			name:     "spans unwrapped",
			input:    `<p><span style="font-weight:bold">жирный</span></p>`,
			expected: "<p>жирный</p>",
		},
		{
			name:     "nbsp and empty paragraphs",
			input:    "<p>&nbsp;</p><p>a&NBSP;b</p><p> </p>",
			expected: "<p>a b</p>",
		},
		{
			name:     "blank line runs collapsed",
			input:    "<p>a</p>\n\n  \n<p>b</p>",
			expected: "<p>a</p>\n<p>b</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, content.CleanHTML(tt.input))
		})
	}
}

func TestCleanHTMLIsIdempotent(t *testing.T) {
	input := `<div class="x"><p style="a">Текст <a href="#">ссылка</a></p>[gallery ids="1,2"]<p></p></div>`
	once := content.CleanHTML(input)
	assert.Equal(t, once, content.CleanHTML(once))
	assert.Equal(t, "<div><p>Текст ссылка</p></div>", once)
}

func TestStripCaptions(t *testing.T) {
	input := `[caption id="a"]<img src="x.jpg"> Подпись[/caption][gallery]`
	assert.Equal(t, `<img src="x.jpg"> Подпись[gallery]`, content.StripCaptions(input))
}
