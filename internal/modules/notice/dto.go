package notice

import "time"

type CreateNoticeRequest struct {
	PropertyID    int64     `json:"property_id" binding:"required"`
	IssuedToID    int64     `json:"issued_to_id" binding:"required"`
	Title         string    `json:"title" binding:"required"`
	Content       string    `json:"content" binding:"required"`
	NoticeType    string    `json:"notice_type"`
	EffectiveDate time.Time `json:"effective_date"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
