package views

import (
	"context"
	"strings"

	"github.com/raushankrgupta/fitly-wardrobe/inflight"
	"github.com/raushankrgupta/fitly-wardrobe/models"
)

const (
	chatKey        = "chat"
	chatSendFailed = "The stylist is unavailable right now."
)

// ChatView is the style assistant conversation. A turn is recorded only once the
// assistant has answered, so a failed send leaves the history unchanged.
type ChatView struct {
	status

	chat    ChatAPI
	guard   *inflight.Guard
	history []models.ChatMessage
}

func NewChatView(chat ChatAPI, guard *inflight.Guard) *ChatView {
	return &ChatView{chat: chat, guard: guard}
}

// Send posts text with the history so far and records both sides of the turn.
func (v *ChatView) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", v.fail(invalid("message", "Type a message."), "")
	}
	release, ok := v.guard.TryAcquire(chatKey)
	if !ok {
		return "", ErrInFlight
	}
	defer release()

	reply, err := v.chat.Send(ctx, text, v.History())
	if err != nil {
		return "", v.fail(err, chatSendFailed)
	}
	v.clearError()

	v.mu.Lock()
	v.history = append(v.history,
		models.ChatMessage{Role: models.RoleUser, Content: text},
		models.ChatMessage{Role: models.RoleAssistant, Content: reply.Reply},
	)
	v.mu.Unlock()
	return reply.Reply, nil
}

func (v *ChatView) History() []models.ChatMessage {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.ChatMessage(nil), v.history...)
}

// Reset starts a new conversation.
func (v *ChatView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = nil
	v.errorMessage = ""
}
