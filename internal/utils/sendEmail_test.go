package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("blog@example.com", "mama@example.com", WelcomeSubject, "Привет")

	assert.True(t, strings.HasPrefix(msg, "From: blog@example.com\r\nTo: mama@example.com\r\n"))
	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.NotContains(t, msg, "Subject: Добро")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8\r\n\r\nПривет")
}

func TestWelcomeMessage(t *testing.T) {
	body := WelcomeMessage("https://miss-eklerchik.ru")
	assert.Contains(t, body, "Miss Eklerchik")
	assert.True(t, strings.HasSuffix(body, "https://miss-eklerchik.ru"))
}
