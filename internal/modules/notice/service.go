package notice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kbtassist/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	notices    NoticeRepository
	properties PropertyReader
	users      UserReader
	mailer     Mailer
}

func NewService(notices NoticeRepository, properties PropertyReader, users UserReader, mailer Mailer) *Service {
	return &Service{notices: notices, properties: properties, users: users, mailer: mailer}
}

// CreateNotice issues a legal notice to a recipient in the property circle.
// Only a manager of the property may issue one; it starts in SENT.
func (s *Service) CreateNotice(ctx context.Context, actor domain.Principal, req CreateNoticeRequest) (*domain.Notice, error) {
	property, tenantIDs, err := s.loadProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageProperty(actor, property) {
		return nil, ErrForbidden
	}

	inCircle := req.IssuedToID == property.LandlordID || req.IssuedToID == property.AddedByID
	for _, id := range tenantIDs {
		if id == req.IssuedToID {
			inCircle = true
			break
		}
	}
	if !inCircle {
		return nil, ErrValidation
	}

	n := &domain.Notice{
		PropertyID:    req.PropertyID,
		IssuedByID:    actor.UserID,
		IssuedToID:    req.IssuedToID,
		Title:         req.Title,
		Content:       req.Content,
		NoticeType:    req.NoticeType,
		IssuedDate:    time.Now(),
		EffectiveDate: req.EffectiveDate,
		Status:        domain.NoticeSent,
	}
	if err := s.notices.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if recipient, err := s.users.GetByID(ctx, n.IssuedToID); err == nil {
			body := fmt.Sprintf("<p>Hi %s,</p><p>You have received a notice: %s.</p>", recipient.Name, n.Title)
			_ = s.mailer.Send(ctx, recipient.Email, "New notice received", body)
		}
	}
	return n, nil
}

// UpdateStatus advances a notice along its lifecycle. The recipient moves it
// through DELIVERED/VIEWED and resolves it; the issuer and property managers
// may also resolve or flag action required.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Principal, noticeID int64, next domain.NoticeStatus) (*domain.Notice, error) {
	n, err := s.notices.GetByID(ctx, noticeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	property, tenantIDs, err := s.loadProperty(ctx, n.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessNotice(actor, n, property, tenantIDs) {
		return nil, ErrForbidden
	}

	if !n.Status.CanTransition(next) {
		return nil, ErrInvalidTransition
	}

	if err := s.notices.UpdateStatus(ctx, noticeID, next); err != nil {
		return nil, err
	}
	n.Status = next
	return n, nil
}

func (s *Service) GetNotice(ctx context.Context, actor domain.Principal, noticeID int64) (*domain.Notice, error) {
	n, err := s.notices.GetByID(ctx, noticeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	property, tenantIDs, err := s.loadProperty(ctx, n.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessNotice(actor, n, property, tenantIDs) {
		return nil, ErrForbidden
	}
	return n, nil
}

func (s *Service) ListNotices(ctx context.Context, actor domain.Principal) ([]domain.Notice, error) {
	return s.notices.ListForUser(ctx, actor.UserID)
}

func (s *Service) ListNoticesByProperty(ctx context.Context, actor domain.Principal, propertyID int64) ([]domain.Notice, error) {
	property, tenantIDs, err := s.loadProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessProperty(actor, property, tenantIDs) {
		return nil, ErrForbidden
	}
	return s.notices.ListByProperty(ctx, propertyID)
}

func (s *Service) loadProperty(ctx context.Context, propertyID int64) (*domain.Property, []int64, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	tenantIDs, err := s.properties.TenantIDs(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	return property, tenantIDs, nil
}
