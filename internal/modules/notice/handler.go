package notice

import (
	"net/http"
	"strconv"
	"strings"

	"kbtassist/internal/domain"
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
	rg.POST("/notices", h.CreateNotice)
	rg.GET("/notices", h.ListNotices)
	rg.GET("/notices/:id", h.GetNotice)
	rg.PATCH("/notices/:id/status", h.UpdateStatus)
	rg.GET("/properties/:id/notices", h.ListNoticesByProperty)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateNotice(c *gin.Context) {
	var req CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	n, err := h.service.CreateNotice(c.Request.Context(), middleware.PrincipalFromContext(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to create notice")
		return
	}
	response.Success(c, http.StatusCreated, n)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	next := domain.NoticeStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	n, err := h.service.UpdateStatus(c.Request.Context(), middleware.PrincipalFromContext(c), id, next)
	if err != nil {
		h.writeError(c, err, "Failed to update notice status")
		return
	}
	response.Success(c, http.StatusOK, n)
}

func (h *Handler) GetNotice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	n, err := h.service.GetNotice(c.Request.Context(), middleware.PrincipalFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to load notice")
		return
	}
	response.Success(c, http.StatusOK, n)
}

func (h *Handler) ListNotices(c *gin.Context) {
	notices, err := h.service.ListNotices(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list notices")
		return
	}
	response.Success(c, http.StatusOK, notices)
}

func (h *Handler) ListNoticesByProperty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	notices, err := h.service.ListNoticesByProperty(c.Request.Context(), middleware.PrincipalFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to list notices")
		return
	}
	response.Success(c, http.StatusOK, notices)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case ErrInvalidTransition:
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status transition not allowed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
