package genai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"eklerchik/internal/content"

	googleai "google.golang.org/genai"
)

const (
	DefaultCategory = "Блог"

	categorySnippetLimit = 200
	snippetContentLimit  = 3000
)

var (
	categoryJunkRe  = regexp.MustCompile(`['".]`)
	fencedBlockRe   = regexp.MustCompile("(?s)```(?:html)?\\s*(.*?)\\s*```")
	leadingFenceRe  = regexp.MustCompile("^```(?:html)?\\s*")
	trailingFenceRe = regexp.MustCompile("```$")
)

// ErrNoImage is returned when neither image model produced data.
var ErrNoImage = errors.New("no image data returned")

// SuggestCategory asks for a one-word Russian category. Any failure yields
// DefaultCategory.
func (c *Client) SuggestCategory(ctx context.Context, title, snippet string) string {
	prompt := fmt.Sprintf(`Analyze the following article title and snippet. Suggest ONE short, single-word category in Russian (e.g., Психология, Еда, Дети, Здоровье, Юмор, Путешествия). Do not use punctuation.
Title: %s
Snippet: %s`, title, content.Truncate(snippet, categorySnippetLimit))

	resp, err := c.generate(ctx, TextModel, googleai.Text(prompt), nil)
	if err != nil {
		log.Printf("Error suggesting category: %v", err)
		return DefaultCategory
	}
	category := categoryJunkRe.ReplaceAllString(strings.TrimSpace(resp.Text()), "")
	if category == "" {
		return DefaultCategory
	}
	return category
}

// GenerateSnippet writes a 2-3 sentence teaser for an article.
func (c *Client) GenerateSnippet(ctx context.Context, title, body string) (string, error) {
	prompt := fmt.Sprintf(`You are an editor for a mom blog (Miss Eklerchik).
Task: Write a short, engaging excerpt (snippet) for the following article.
Length: 2-3 sentences (max 250 characters).
Tone: Warm, supportive, slightly humorous, inviting.
Language: Russian.

Title: %s
Content: %s`, title, content.Truncate(body, snippetContentLimit))

	resp, err := c.generate(ctx, TextModel, googleai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate snippet: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty snippet returned")
	}
	return text, nil
}

const improvePrompt = `You are the Editor-in-Chief of "Miss Eklerchik", a stylish and humorous mom blog.
Your task is to Rewrite and Format the input text into HTML that matches the blog's specific design language.

**Tone Guidelines:**
- Warm, supportive, slightly humorous ("tired mom" vibe).
- Use emojis naturally in headings and lists.

**Design & Formatting Rules (Use these exact HTML structures):**

1. **Headings:** Use <h3> tags. Add a relevant emoji at the start of every heading.

2. **Paragraphs:** Keep them short (2-4 sentences). Use standard <p>.

3. **Highlights:** Use <strong> for key phrases.

4. **"Mom Tips" / Important Boxes:**
   If the text contains a tip, advice, or a key takeaway, wrap it in this specific styled div:
   <div class="bg-clay-bg p-6 rounded-3xl mb-6 border-2 border-white shadow-sm">
      <h4 class="font-serif font-bold text-clay-purple mb-2 flex items-center text-lg">💡 Мамский лайфхак</h4>
      <p class="text-gray-600 mb-0 font-medium">...content...</p>
   </div>

5. **Lists:** Use <ul> with <li>.

6. **Quotes:** If there is a quote or a strong thought, use:
   <blockquote class="border-l-4 border-clay-pink pl-4 italic my-6 text-gray-500 font-bold">...content...</blockquote>

7. **Cleanliness:** Remove any existing <div> wrappers, inline styles, or classes not specified above. Return ONLY the HTML body content.

Input Text:
`

// ImproveContent rewrites an article into the blog's HTML design language.
func (c *Client) ImproveContent(ctx context.Context, body string) (string, error) {
	resp, err := c.generate(ctx, TextModel, googleai.Text(improvePrompt+body), nil)
	if err != nil {
		return "", fmt.Errorf("failed to improve content: %w", err)
	}
	return StripCodeFence(resp.Text()), nil
}

// StripCodeFence unwraps a markdown code block the model may put around HTML.
func StripCodeFence(text string) string {
	if m := fencedBlockRe.FindStringSubmatch(text); m != nil && m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	text = leadingFenceRe.ReplaceAllString(text, "")
	text = trailingFenceRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

const imageStyle = `Style requirements: creative mixed media composition with realistic and 3d Cute plasticine world, claymation style, stop-motion animation style, flat vector style. High quality, colorful, soft lighting, whimsical atmosphere, cute characters. No text in the image.`

// Image is a generated picture.
type Image struct {
	Data     []byte
	MimeType string
}

// GenerateImage draws a blog illustration for topic. The flash image model is
// tried first, Imagen second.
func (c *Client) GenerateImage(ctx context.Context, topic string) (*Image, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	prompt := fmt.Sprintf(`Generate a creative blog illustration. Topic: "%s". %s`, topic, imageStyle)

	img, err := c.flashImage(ctx, prompt)
	if err == nil {
		return img, nil
	}
	log.Printf("Flash image generation failed, falling back to Imagen: %v", err)

	img, err = c.imagenImage(ctx, prompt)
	if err != nil {
		log.Printf("All image generation attempts failed: %v", err)
		return nil, err
	}
	return img, nil
}

func (c *Client) flashImage(ctx context.Context, prompt string) (*Image, error) {
	resp, err := c.generate(ctx, ImageModel, googleai.Text(prompt), &googleai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return nil, err
	}
	blob := inlineImage(resp)
	if blob == nil {
		return nil, ErrNoImage
	}
	return newImage(blob.Data, blob.MIMEType), nil
}

func (c *Client) imagenImage(ctx context.Context, prompt string) (*Image, error) {
	resp, err := c.sdk.Models.GenerateImages(ctx, FallbackModel, prompt, &googleai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "4:3",
		OutputMIMEType: "image/jpeg",
	})
	if err != nil {
		return nil, err
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return nil, ErrNoImage
	}
	img := resp.GeneratedImages[0].Image
	return newImage(img.ImageBytes, img.MIMEType), nil
}

func newImage(data []byte, mimeType string) *Image {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return &Image{Data: data, MimeType: mimeType}
}
