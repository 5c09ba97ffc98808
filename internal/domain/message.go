package domain

import "time"

type MessageVisibility string

const (
	VisibilityPrivate MessageVisibility = "private"
	VisibilityShared  MessageVisibility = "shared"
)

type Message struct {
	ID          int64             `gorm:"primaryKey" json:"id"`
	SenderID    int64             `gorm:"index:idx_messages_pair;not null" json:"sender_id"`
	RecipientID int64             `gorm:"index:idx_messages_pair;not null" json:"recipient_id"`
	Content     string            `gorm:"type:text;not null" json:"content"`
	Visibility  MessageVisibility `gorm:"type:varchar(16);default:'private'" json:"visibility"`
	IsRead      bool              `gorm:"default:false" json:"is_read"`
	ReadAt      *time.Time        `json:"read_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (Message) TableName() string { return "messages" }
