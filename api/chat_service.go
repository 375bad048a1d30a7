package api

import (
	"context"

	"github.com/raushankrgupta/fitly-wardrobe/models"
)

type chatRequest struct {
	Message string               `json:"message"`
	History []models.ChatMessage `json:"history"`
}

// ChatReply is the assistant's answer
type ChatReply struct {
	Reply string `json:"reply"`
}

// ChatService exchanges messages with the style assistant
type ChatService struct {
	c *Client
}

func NewChatService(c *Client) *ChatService {
	return &ChatService{c: c}
}

// Send posts message together with the prior role-tagged history.
func (s *ChatService) Send(ctx context.Context, message string, history []models.ChatMessage) (*ChatReply, error) {
	if history == nil {
		history = []models.ChatMessage{}
	}
	var reply ChatReply
	if err := s.c.Post(ctx, "/api/chat", chatRequest{Message: message, History: history}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
