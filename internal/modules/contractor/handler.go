package contractor

import (
	"net/http"
	"strconv"

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
	rg.POST("/contractors", middleware.ManagerOnly(), h.AddContractor)
	rg.GET("/contractors", h.Marketplace)
	rg.GET("/contractors/mine", middleware.ManagerOnly(), h.ListMyContractors)
	rg.GET("/contractors/jobs", middleware.RequireRole(domain.RoleContractor), h.ListJobs)
	rg.GET("/contractors/:id", h.GetProfile)
	rg.POST("/invitations", middleware.ManagerOnly(), h.Invite)
	rg.GET("/invitations", middleware.RequireRole(domain.RoleContractor), h.ListInvitations)
	rg.POST("/invitations/:id/respond", middleware.RequireRole(domain.RoleContractor), h.Respond)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) AddContractor(c *gin.Context) {
	var req AddContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	profile, err := h.service.AddContractor(c.Request.Context(), middleware.PrincipalFromContext(c), req)
	if err != nil {
		if err == ErrEmailExists {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
			return
		}
		h.writeError(c, err, "Failed to add contractor")
		return
	}
	response.Success(c, http.StatusCreated, profile)
}

func (h *Handler) Marketplace(c *gin.Context) {
	profiles, err := h.service.Marketplace(c.Request.Context(), c.Query("specialty"), c.Query("location"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list contractors")
		return
	}
	response.Success(c, http.StatusOK, profiles)
}

func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load contractor")
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) ListMyContractors(c *gin.Context) {
	profiles, err := h.service.ListMyContractors(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		h.writeError(c, err, "Failed to list contractors")
		return
	}
	response.Success(c, http.StatusOK, profiles)
}

func (h *Handler) Invite(c *gin.Context) {
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	inv, err := h.service.Invite(c.Request.Context(), middleware.PrincipalFromContext(c), req.ContractorID)
	if err != nil {
		if err == ErrAlreadyInvited {
			response.Error(c, http.StatusConflict, "ALREADY_INVITED", "An open invitation already exists")
			return
		}
		h.writeError(c, err, "Failed to send invitation")
		return
	}
	response.Success(c, http.StatusCreated, inv)
}

func (h *Handler) Respond(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	inv, err := h.service.RespondToInvitation(c.Request.Context(), middleware.PrincipalFromContext(c), id, req.Accept)
	if err != nil {
		h.writeError(c, err, "Failed to respond to invitation")
		return
	}
	response.Success(c, http.StatusOK, inv)
}

func (h *Handler) ListInvitations(c *gin.Context) {
	invs, err := h.service.ListInvitations(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		h.writeError(c, err, "Failed to list invitations")
		return
	}
	response.Success(c, http.StatusOK, invs)
}

func (h *Handler) ListJobs(c *gin.Context) {
	jobs, err := h.service.ListJobsForContractor(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		h.writeError(c, err, "Failed to list jobs")
		return
	}
	response.Success(c, http.StatusOK, jobs)
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
