package property

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
	rg.POST("/properties", middleware.ManagerOnly(), h.CreateProperty)
	rg.GET("/properties", h.ListProperties)
	rg.GET("/properties/:id", h.GetProperty)
	rg.PATCH("/properties/:id", h.UpdateProperty)
	rg.POST("/properties/:id/tenants", h.AddTenant)
	rg.POST("/properties/:id/inventory", h.CreateInventoryItem)
	rg.GET("/properties/:id/inventory", h.ListInventory)
	rg.PATCH("/inventory/:id", h.UpdateInventoryItem)
	rg.DELETE("/inventory/:id", h.DeleteInventoryItem)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.CreateProperty(c.Request.Context(), middleware.PrincipalFromContext(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to create property")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	p, err := h.service.GetProperty(c.Request.Context(), middleware.PrincipalFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to load property")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.UpdateProperty(c.Request.Context(), middleware.PrincipalFromContext(c), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update property")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) ListProperties(c *gin.Context) {
	properties, err := h.service.ListProperties(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list properties")
		return
	}
	response.Success(c, http.StatusOK, properties)
}

func (h *Handler) AddTenant(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req AddTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.AddTenant(c.Request.Context(), middleware.PrincipalFromContext(c), id, req.TenantID)
	if err != nil {
		switch err {
		case ErrNotATenant:
			response.Error(c, http.StatusBadRequest, "NOT_A_TENANT", "User does not have the tenant role")
		case ErrAlreadyTenant:
			response.Error(c, http.StatusConflict, "ALREADY_TENANT", "Tenant already linked to this property")
		default:
			h.writeError(c, err, "Failed to add tenant")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"property_id": id, "tenant_id": req.TenantID})
}

func (h *Handler) CreateInventoryItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.service.CreateInventoryItem(c.Request.Context(), middleware.PrincipalFromContext(c), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to add inventory item")
		return
	}
	response.Success(c, http.StatusCreated, item)
}

func (h *Handler) ListInventory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	items, err := h.service.ListInventory(c.Request.Context(), middleware.PrincipalFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to list inventory")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) UpdateInventoryItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.service.UpdateInventoryItem(c.Request.Context(), middleware.PrincipalFromContext(c), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update inventory item")
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *Handler) DeleteInventoryItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteInventoryItem(c.Request.Context(), middleware.PrincipalFromContext(c), id); err != nil {
		h.writeError(c, err, "Failed to delete inventory item")
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
