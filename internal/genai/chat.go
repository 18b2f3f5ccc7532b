package genai

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	googleai "google.golang.org/genai"
)

const (
	chatTemperature = 0.7
	// maxHistory bounds the turns replayed to the model per request.
	maxHistory = 40
)

const SystemInstruction = `Ты — Мисс Эклерчик, автор мамского блога и уставшая, но очень весёлая мама.
Отвечай по-русски, тепло и с юмором, коротко (до 5 предложений).
Поддерживай, делись бытовыми лайфхаками про детей, еду и самочувствие мамы.
Не ставь диагнозов: в вопросах здоровья мягко советуй обратиться к врачу.`

const (
	MsgNoKey       = "⚠️ Ошибка настройки: API Key не найден. Проверьте настройки хостинга."
	MsgForbidden   = "⚠️ Ошибка доступа (403). Проверьте правильность API ключа и баланс."
	MsgRateLimited = "⏳ Слишком много запросов. Дайте мне минутку отдохнуть."
	MsgEmpty       = "Хм, я задумалась и потеряла мысль. Повторите, пожалуйста?"
	MsgFailed      = "Кажется, связь прервалась. Малыш, наверное, выдернул шнур! Попробуйте еще раз."
)

// Part is the text of one stored turn.
type Part struct {
	Text string `json:"text,omitempty"`
}

// Content is one stored turn of a conversation. Role is "user" or "model".
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

func TextContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

func toSDK(history []Content) []*googleai.Content {
	out := make([]*googleai.Content, 0, len(history))
	for _, turn := range history {
		parts := make([]*googleai.Part, 0, len(turn.Parts))
		for _, p := range turn.Parts {
			parts = append(parts, googleai.NewPartFromText(p.Text))
		}
		out = append(out, &googleai.Content{Role: turn.Role, Parts: parts})
	}
	return out
}

// HistoryStore keeps conversation turns per chat session.
type HistoryStore interface {
	Load(ctx context.Context, sessionID string) ([]Content, error)
	Save(ctx context.Context, sessionID string, history []Content) error
	Reset(ctx context.Context, sessionID string) error
}

type Reply struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error"`
}

type ChatService struct {
	client  *Client
	history HistoryStore
}

func NewChatService(client *Client, history HistoryStore) *ChatService {
	if history == nil {
		history = NewMemoryHistory()
	}
	return &ChatService{client: client, history: history}
}

// Send continues the session with message. Failures never surface as errors:
// they become a user-facing reply and the session starts over.
func (s *ChatService) Send(ctx context.Context, sessionID, message string) Reply {
	if !s.client.Configured() {
		return Reply{Text: MsgNoKey, IsError: true}
	}

	history, err := s.history.Load(ctx, sessionID)
	if err != nil {
		log.Printf("Failed to load chat history for %s: %v", sessionID, err)
		history = nil
	}

	userTurn := TextContent("user", message)
	resp, err := s.client.generate(ctx, TextModel, toSDK(append(history, userTurn)), &googleai.GenerateContentConfig{
		SystemInstruction: googleai.NewContentFromText(SystemInstruction, googleai.RoleUser),
		Temperature:       googleai.Ptr[float32](chatTemperature),
	})
	if err != nil {
		log.Printf("Error sending message to chat model: %v", err)
		if resetErr := s.history.Reset(ctx, sessionID); resetErr != nil {
			log.Printf("Failed to reset chat session %s: %v", sessionID, resetErr)
		}
		return Reply{Text: ErrorMessage(err), IsError: true}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Reply{Text: MsgEmpty}
	}

	history = append(history, userTurn, TextContent("model", text))
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	if err := s.history.Save(ctx, sessionID, history); err != nil {
		log.Printf("Failed to save chat history for %s: %v", sessionID, err)
	}
	return Reply{Text: text}
}

// ErrorMessage maps a failed call onto the text shown in the chat window.
func ErrorMessage(err error) string {
	if errors.Is(err, ErrNotConfigured) {
		return MsgNoKey
	}
	if apiErr, ok := apiError(err); ok {
		switch {
		case apiErr.Code == 403 || strings.Contains(apiErr.Message, "API key"):
			return MsgForbidden
		case apiErr.Code == 429:
			return MsgRateLimited
		}
	}
	return MsgFailed
}

// MemoryHistory is the HistoryStore used when redis is not configured.
type MemoryHistory struct {
	mu       sync.Mutex
	sessions map[string][]Content
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{sessions: map[string][]Content{}}
}

func (m *MemoryHistory) Load(_ context.Context, sessionID string) ([]Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.sessions[sessionID]
	out := make([]Content, len(h))
	copy(out, h)
	return out, nil
}

func (m *MemoryHistory) Save(_ context.Context, sessionID string, history []Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = history
	return nil
}

func (m *MemoryHistory) Reset(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}
