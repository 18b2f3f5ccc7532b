package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	googleai "google.golang.org/genai"
)

// sentRequest is the generateContent body as it arrives on the wire.
type sentRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	GenerationConfig *struct {
		Temperature        *float64 `json:"temperature"`
		ResponseModalities []string `json:"responseModalities"`
	} `json:"generationConfig"`
}

func errorBody(code int, message string) map[string]any {
	return map[string]any{"error": map[string]any{"code": code, "message": message}}
}

func unconfigured(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), "")
	require.NoError(t, err)
	return client
}

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"role": "model", "parts": []any{map[string]any{"text": text}}}},
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(context.Background(), "test-key", WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestSuggestCategory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		writeJSON(w, http.StatusOK, textResponse(" \"Дети.\"\n"))
	})

	assert.Equal(t, "Дети", client.SuggestCategory(context.Background(), "Первый зуб", "Как мы пережили"))
}

func TestSuggestCategoryFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, errorBody(http.StatusBadRequest, "boom"))
	})
	assert.Equal(t, DefaultCategory, client.SuggestCategory(context.Background(), "t", "s"))

	assert.Equal(t, DefaultCategory, unconfigured(t).SuggestCategory(context.Background(), "t", "s"))
}

func TestGenerateSnippetTruncatesContent(t *testing.T) {
	var captured atomic.Value
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req sentRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if assert.NotEmpty(t, req.Contents) && assert.NotEmpty(t, req.Contents[0].Parts) {
			captured.Store(req.Contents[0].Parts[0].Text)
		}
		writeJSON(w, http.StatusOK, textResponse("  Короткий анонс.  "))
	})

	snippet, err := client.GenerateSnippet(context.Background(), "Заголовок", strings.Repeat("я", 5000))
	require.NoError(t, err)
	assert.Equal(t, "Короткий анонс.", snippet)
	prompt := captured.Load().(string)
	assert.NotContains(t, prompt, strings.Repeat("я", 3001))
	assert.Contains(t, prompt, strings.Repeat("я", 3000))
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"html fence", "```html\n<p>Привет</p>\n```", "<p>Привет</p>"},
		{"plain fence", "Вот:\n```\n<h3>Заголовок</h3>\n```\nГотово", "<h3>Заголовок</h3>"},
		{"no fence", "  <p>Без обёртки</p> ", "<p>Без обёртки</p>"},
		{"unterminated", "```html\n<p>Оборвалось</p>", "<p>Оборвалось</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestGenerateImageFallsBackToImagen(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash-image:generateContent"):
			writeJSON(w, http.StatusOK, textResponse("no picture today"))
		case strings.HasSuffix(r.URL.Path, "/models/imagen-4.0-generate-001:predict"):
			writeJSON(w, http.StatusOK, map[string]any{
				"predictions": []any{map[string]any{
					"bytesBase64Encoded": base64.StdEncoding.EncodeToString(png),
					"mimeType":           "image/jpeg",
				}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	img, err := client.GenerateImage(context.Background(), "утро мамы")
	require.NoError(t, err)
	assert.Equal(t, png, img.Data)
	assert.Equal(t, "image/jpeg", img.MimeType)
}

func TestGenerateImageFlash(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req sentRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if assert.NotNil(t, req.GenerationConfig) {
			assert.Equal(t, []string{"TEXT", "IMAGE"}, req.GenerationConfig.ResponseModalities)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{
				map[string]any{"inlineData": map[string]any{"mimeType": "image/png", "data": base64.StdEncoding.EncodeToString([]byte("img"))}},
			}}}},
		})
	})

	img, err := client.GenerateImage(context.Background(), "кофе")
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), img.Data)
	assert.Equal(t, "image/png", img.MimeType)
}

func TestGenerateImageNotConfigured(t *testing.T) {
	_, err := unconfigured(t).GenerateImage(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestChatKeepsHistory(t *testing.T) {
	var calls, lastTurns atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req sentRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if assert.NotNil(t, req.SystemInstruction) && assert.NotEmpty(t, req.SystemInstruction.Parts) {
			assert.Equal(t, SystemInstruction, req.SystemInstruction.Parts[0].Text)
		}
		if assert.NotNil(t, req.GenerationConfig) && assert.NotNil(t, req.GenerationConfig.Temperature) {
			assert.InDelta(t, 0.7, *req.GenerationConfig.Temperature, 1e-6)
		}
		if n := len(req.Contents); n > 1 {
			assert.Equal(t, "model", req.Contents[n-2].Role)
			assert.Equal(t, "user", req.Contents[n-1].Role)
		}
		lastTurns.Store(int32(len(req.Contents)))
		writeJSON(w, http.StatusOK, textResponse("Держитесь!"))
	})
	chat := NewChatService(client, nil)
	ctx := context.Background()

	reply := chat.Send(ctx, "s1", "Привет")
	assert.Equal(t, Reply{Text: "Держитесь!"}, reply)
	assert.EqualValues(t, 1, lastTurns.Load())

	chat.Send(ctx, "s1", "Ещё вопрос")
	assert.EqualValues(t, 3, lastTurns.Load())

	chat.Send(ctx, "other", "Я новенькая")
	assert.EqualValues(t, 1, lastTurns.Load())
	assert.EqualValues(t, 3, calls.Load())
}

func TestChatErrorsResetSession(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if code := int(status.Load()); code != http.StatusOK {
			writeJSON(w, code, errorBody(code, "nope"))
			return
		}
		writeJSON(w, http.StatusOK, textResponse("Ок"))
	})
	history := NewMemoryHistory()
	chat := NewChatService(client, history)
	ctx := context.Background()

	chat.Send(ctx, "s", "раз")
	saved, _ := history.Load(ctx, "s")
	require.Len(t, saved, 2)

	status.Store(http.StatusTooManyRequests)
	reply := chat.Send(ctx, "s", "два")
	assert.Equal(t, Reply{Text: MsgRateLimited, IsError: true}, reply)
	saved, _ = history.Load(ctx, "s")
	assert.Empty(t, saved)
}

func TestChatEmptyAnswer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"candidates": []any{}})
	})
	reply := NewChatService(client, nil).Send(context.Background(), "s", "?")
	assert.Equal(t, MsgEmpty, reply.Text)
	assert.False(t, reply.IsError)
}

func TestChatWithoutKey(t *testing.T) {
	reply := NewChatService(unconfigured(t), nil).Send(context.Background(), "s", "hi")
	assert.Equal(t, Reply{Text: MsgNoKey, IsError: true}, reply)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"forbidden", googleai.APIError{Code: 403}, MsgForbidden},
		{"bad key", googleai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key."}, MsgForbidden},
		{"rate limit", googleai.APIError{Code: 429}, MsgRateLimited},
		{"wrapped rate limit", fmt.Errorf("send: %w", googleai.APIError{Code: 429}), MsgRateLimited},
		{"pointer", &googleai.APIError{Code: 403}, MsgForbidden},
		{"server", googleai.APIError{Code: 500}, MsgFailed},
		{"transport", assert.AnError, MsgFailed},
		{"no key", ErrNotConfigured, MsgNoKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestChatForbiddenFromServer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, errorBody(http.StatusForbidden, "permission denied"))
	})
	reply := NewChatService(client, nil).Send(context.Background(), "s", "hi")
	assert.Equal(t, Reply{Text: MsgForbidden, IsError: true}, reply)
}
