package document

import (
	"net/http"
	"strconv"

	"kbtassist/internal/middleware"
	"kbtassist/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties/:id/documents", h.Upload)
	rg.GET("/properties/:id/documents", h.ListByProperty)
	rg.GET("/documents", h.ListShared)
	rg.GET("/documents/:id", h.GetDocument)
	rg.DELETE("/documents/:id", h.Delete)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

// Upload expects multipart/form-data with a "file" part and an optional
// "document_type" field.
func (h *Handler) Upload(c *gin.Context) {
	propertyID, ok := idParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing file")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable file")
		return
	}
	defer f.Close()

	doc, err := h.service.Upload(c.Request.Context(), middleware.PrincipalFromContext(c), UploadInput{
		PropertyID:   propertyID,
		DocumentType: c.PostForm("document_type"),
		FileName:     fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Body:         f,
	})
	if err != nil {
		switch err {
		case ErrFileTooLarge:
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the upload limit")
		case ErrUnsupportedType:
			response.Error(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE", "File type not allowed")
		default:
			h.writeError(c, err, "Failed to upload document")
		}
		return
	}
	response.Success(c, http.StatusCreated, doc)
}

func (h *Handler) GetDocument(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	doc, err := h.service.GetDocument(c.Request.Context(), middleware.PrincipalFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to load document")
		return
	}
	response.Success(c, http.StatusOK, doc)
}

func (h *Handler) ListByProperty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	complianceOnly := c.Query("compliance") == "true"
	docs, err := h.service.ListByProperty(c.Request.Context(), middleware.PrincipalFromContext(c), id, complianceOnly)
	if err != nil {
		h.writeError(c, err, "Failed to list documents")
		return
	}
	response.Success(c, http.StatusOK, docs)
}

func (h *Handler) ListShared(c *gin.Context) {
	docs, err := h.service.ListShared(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list documents")
		return
	}
	response.Success(c, http.StatusOK, docs)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.PrincipalFromContext(c), id); err != nil {
		h.writeError(c, err, "Failed to delete document")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
