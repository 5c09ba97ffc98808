package domain

import "time"

type NoticeStatus string

const (
	NoticeSent           NoticeStatus = "sent"
	NoticeDelivered      NoticeStatus = "delivered"
	NoticeViewed         NoticeStatus = "viewed"
	NoticeActionRequired NoticeStatus = "action_required"
	NoticeResolved       NoticeStatus = "resolved"
)

var noticeTransitions = map[NoticeStatus][]NoticeStatus{
	NoticeSent:           {NoticeDelivered},
	NoticeDelivered:      {NoticeViewed},
	NoticeViewed:         {NoticeActionRequired, NoticeResolved},
	NoticeActionRequired: {NoticeResolved},
}

func (current NoticeStatus) CanTransition(next NoticeStatus) bool {
	for _, s := range noticeTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

type Notice struct {
	ID            int64        `json:"id"`
	PropertyID    int64        `json:"property_id" validate:"required"`
	IssuedByID    int64        `json:"issued_by_id"`
	IssuedToID    int64        `json:"issued_to_id" validate:"required"`
	Title         string       `json:"title" validate:"required"`
	Content       string       `json:"content" validate:"required"`
	NoticeType    string       `json:"notice_type"`
	IssuedDate    time.Time    `json:"issued_date"`
	EffectiveDate time.Time    `json:"effective_date"`
	Status        NoticeStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
