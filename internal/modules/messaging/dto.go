package messaging

import "kbtassist/internal/domain"

type SendMessageRequest struct {
	RecipientID int64  `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Visibility  string `json:"visibility"`
}

type MarkReadRequest struct {
	SenderID int64 `json:"sender_id" binding:"required"`
}

// WSEvent is the payload pushed over a live connection.
type WSEvent struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message,omitempty"`
}
