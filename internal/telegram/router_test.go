package telegram

import (
	"errors"
	"io"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []tgbotapi.MessageConfig
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		s.sent = append(s.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

type handlerFunc func(bot Sender, message *tgbotapi.Message, args []string) error

func (f handlerFunc) Handle(bot Sender, message *tgbotapi.Message, args []string) error {
	return f(bot, message, args)
}

func command(text string, length int) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: 42},
		From: &tgbotapi.User{ID: 7},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: length},
		},
	}
}

func newTestRouter() *Router {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewRouter(l)
}

func TestRouter_DispatchesWithArgs(t *testing.T) {
	r := newTestRouter()
	var gotArgs []string
	r.RegisterCommand("list", handlerFunc(func(_ Sender, _ *tgbotapi.Message, args []string) error {
		gotArgs = args
		return nil
	}))

	sender := &recordingSender{}
	r.HandleMessage(sender, command("/list Marie Danièle", 5))

	assert.Equal(t, []string{"Marie", "Danièle"}, gotArgs)
	assert.Empty(t, sender.sent)
}

func TestRouter_UnknownCommand(t *testing.T) {
	r := newTestRouter()
	sender := &recordingSender{}

	r.HandleMessage(sender, command("/nope", 5))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(42), sender.sent[0].ChatID)
	assert.Contains(t, sender.sent[0].Text, "Unknown command")
}

func TestRouter_HandlerError(t *testing.T) {
	r := newTestRouter()
	r.RegisterCommand("boom", handlerFunc(func(Sender, *tgbotapi.Message, []string) error {
		return errors.New("boom")
	}))
	sender := &recordingSender{}

	r.HandleMessage(sender, command("/boom", 5))

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Text, "An error occurred")
}

func TestRouter_IgnoresPlainText(t *testing.T) {
	r := newTestRouter()
	sender := &recordingSender{}

	r.HandleMessage(sender, &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 1}})

	assert.Empty(t, sender.sent)
}
