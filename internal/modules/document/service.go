package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"kbtassist/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUploadSize = 15 << 20 // 15 MiB

var allowedMimeTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

var complianceTypes = map[string]bool{
	"gas_safety":     true,
	"epc":            true,
	"eicr":           true,
	"fire_safety":    true,
	"insurance":      true,
	"license":        true,
}

type Service struct {
	documents  DocumentRepository
	properties PropertyReader
	store      BlobStore
}

func NewService(documents DocumentRepository, properties PropertyReader, store BlobStore) *Service {
	return &Service{documents: documents, properties: properties, store: store}
}

type UploadInput struct {
	PropertyID   int64
	DocumentType string
	FileName     string
	MimeType     string
	Size         int64
	Body         io.Reader
}

// Upload stores the file bytes and records the document row. Files land under
// a dated directory with a uuid name so original filenames never collide.
func (s *Service) Upload(ctx context.Context, actor domain.Principal, in UploadInput) (*domain.Document, error) {
	if in.Size <= 0 || in.FileName == "" {
		return nil, ErrValidation
	}
	if in.Size > maxUploadSize {
		return nil, ErrFileTooLarge
	}
	ext, ok := allowedMimeTypes[strings.ToLower(in.MimeType)]
	if !ok {
		return nil, ErrUnsupportedType
	}

	property, tenantIDs, err := s.loadProperty(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessProperty(actor, property, tenantIDs) {
		return nil, ErrForbidden
	}

	docType := strings.ToLower(strings.TrimSpace(in.DocumentType))
	if docType == "" {
		docType = "general"
	}

	now := time.Now()
	path := filepath.ToSlash(filepath.Join(
		fmt.Sprintf("%04d/%02d", now.Year(), now.Month()),
		uuid.NewString()+ext,
	))

	url, err := s.store.Put(ctx, path, in.Body)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		PropertyID:   in.PropertyID,
		UploadedByID: actor.UserID,
		DocumentType: docType,
		FileName:     in.FileName,
		FileURL:      url,
		MimeType:     strings.ToLower(in.MimeType),
		Size:         in.Size,
		Compliance:   complianceTypes[docType],
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		// best effort: don't leave orphaned bytes behind
		_ = s.store.Delete(ctx, url)
		return nil, err
	}
	return doc, nil
}

func (s *Service) GetDocument(ctx context.Context, actor domain.Principal, docID int64) (*domain.Document, error) {
	doc, err := s.documents.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	property, tenantIDs, err := s.loadProperty(ctx, doc.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessDocument(actor, doc, property, tenantIDs) {
		return nil, ErrForbidden
	}
	return doc, nil
}

func (s *Service) ListByProperty(ctx context.Context, actor domain.Principal, propertyID int64, complianceOnly bool) ([]domain.Document, error) {
	property, tenantIDs, err := s.loadProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessProperty(actor, property, tenantIDs) {
		return nil, ErrForbidden
	}
	return s.documents.ListByProperty(ctx, propertyID, complianceOnly)
}

func (s *Service) ListShared(ctx context.Context, actor domain.Principal) ([]domain.Document, error) {
	return s.documents.ListForUser(ctx, actor.UserID)
}

// Delete removes the row and the stored bytes. Uploader or a manager of the
// property only.
func (s *Service) Delete(ctx context.Context, actor domain.Principal, docID int64) error {
	doc, err := s.documents.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	property, err := s.properties.GetByID(ctx, doc.PropertyID)
	if err != nil {
		return err
	}
	if doc.UploadedByID != actor.UserID && !domain.CanManageProperty(actor, property) {
		return ErrForbidden
	}

	if err := s.documents.Delete(ctx, docID); err != nil {
		return err
	}
	_ = s.store.Delete(ctx, doc.FileURL)
	return nil
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
