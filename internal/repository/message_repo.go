package repository

import (
	"context"
	"time"

	"kbtassist/internal/domain"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListConversation returns both directions of the exchange between two users,
// oldest first so the transcript reads top to bottom.
func (r *MessageRepository) ListConversation(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	var messages []domain.Message
	tx := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&messages)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return messages, nil
}

// MarkRead flags everything the sender has addressed to the recipient as
// read. Returns how many rows flipped.
func (r *MessageRepository) MarkRead(ctx context.Context, recipientID, senderID int64) (int64, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = ?", recipientID, senderID, false).
		Updates(map[string]any{"is_read": true, "read_at": now})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return count, nil
}
