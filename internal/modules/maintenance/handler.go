package maintenance

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
	rg.POST("/jobs", h.ReportJob)
	rg.GET("/jobs", h.ListJobs)
	rg.GET("/jobs/:id", h.GetJob)
	rg.PATCH("/jobs/:id/status", h.Transition)
	rg.POST("/jobs/:id/assign", h.AssignContractor)
	rg.POST("/jobs/:id/comments", h.AddComment)
	rg.GET("/jobs/:id/comments", h.ListComments)
	rg.GET("/properties/:id/jobs", h.ListJobsByProperty)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) ReportJob(c *gin.Context) {
	var req ReportJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	job, err := h.service.ReportJob(c.Request.Context(), middleware.PrincipalFromContext(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to report job")
		return
	}
	response.Success(c, http.StatusCreated, job)
}

func (h *Handler) Transition(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	next := domain.JobStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	job, err := h.service.Transition(c.Request.Context(), middleware.PrincipalFromContext(c), id, next)
	if err != nil {
		h.writeError(c, err, "Failed to update job status")
		return
	}
	response.Success(c, http.StatusOK, job)
}

func (h *Handler) AssignContractor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req AssignContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	job, err := h.service.AssignContractor(c.Request.Context(), middleware.PrincipalFromContext(c), id, req.ContractorID)
	if err != nil {
		if err == ErrNotAContractor {
			response.Error(c, http.StatusBadRequest, "NOT_A_CONTRACTOR", "User does not have the contractor role")
			return
		}
		h.writeError(c, err, "Failed to assign contractor")
		return
	}
	response.Success(c, http.StatusOK, job)
}

func (h *Handler) GetJob(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	job, err := h.service.GetJob(c.Request.Context(), middleware.PrincipalFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to load job")
		return
	}
	response.Success(c, http.StatusOK, job)
}

func (h *Handler) ListJobs(c *gin.Context) {
	jobs, err := h.service.ListJobs(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list jobs")
		return
	}
	response.Success(c, http.StatusOK, jobs)
}

func (h *Handler) ListJobsByProperty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	jobs, err := h.service.ListJobsByProperty(c.Request.Context(), middleware.PrincipalFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to list jobs")
		return
	}
	response.Success(c, http.StatusOK, jobs)
}

func (h *Handler) AddComment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), middleware.PrincipalFromContext(c), id, req.Content)
	if err != nil {
		h.writeError(c, err, "Failed to add comment")
		return
	}
	response.Success(c, http.StatusCreated, comment)
}

func (h *Handler) ListComments(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), middleware.PrincipalFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to list comments")
		return
	}
	response.Success(c, http.StatusOK, comments)
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
