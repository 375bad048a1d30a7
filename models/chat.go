package models

// Chat roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one role-tagged turn of the style assistant conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
