package billing

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
	rg.POST("/invoices", middleware.ManagerOnly(), h.CreateInvoice)
	rg.GET("/invoices", h.ListInvoices)
	rg.GET("/invoices/:id", h.GetInvoice)
	rg.POST("/invoices/:id/checkout", h.InitiateCheckout)
	rg.POST("/invoices/:id/mark-paid", middleware.ManagerOnly(), h.MarkAsPaid)
	rg.POST("/payments/confirm", h.ConfirmPayment)
	rg.GET("/payments", h.ListPayments)
	rg.GET("/properties/:id/payments", h.ListPaymentsByProperty)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	inv, err := h.service.CreateInvoice(c.Request.Context(), middleware.PrincipalFromContext(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to create invoice")
		return
	}
	response.Success(c, http.StatusCreated, inv)
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	inv, err := h.service.GetInvoice(c.Request.Context(), middleware.PrincipalFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to load invoice")
		return
	}
	response.Success(c, http.StatusOK, inv)
}

func (h *Handler) ListInvoices(c *gin.Context) {
	invoices, err := h.service.ListInvoices(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list invoices")
		return
	}
	response.Success(c, http.StatusOK, invoices)
}

func (h *Handler) InitiateCheckout(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	res, err := h.service.InitiateCheckout(c.Request.Context(), middleware.PrincipalFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to start checkout")
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.ConfirmPayment(c.Request.Context(), req.Reference)
	if err != nil {
		if err == ErrNotPaid {
			response.Error(c, http.StatusConflict, "NOT_PAID", "Checkout session has not been paid")
			return
		}
		h.writeError(c, err, "Failed to confirm payment")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) MarkAsPaid(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req MarkAsPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.MarkAsPaid(c.Request.Context(), middleware.PrincipalFromContext(c), id, req.PaymentMethod)
	if err != nil {
		h.writeError(c, err, "Failed to mark invoice as paid")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ListPayments(c *gin.Context) {
	payments, err := h.service.ListPaymentsForTenant(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list payments")
		return
	}
	response.Success(c, http.StatusOK, payments)
}

func (h *Handler) ListPaymentsByProperty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	payments, err := h.service.ListPaymentsByProperty(c.Request.Context(), middleware.PrincipalFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to list payments")
		return
	}
	response.Success(c, http.StatusOK, payments)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case ErrAlreadyPaid:
		response.Error(c, http.StatusConflict, "ALREADY_PAID", "Invoice already paid")
	case ErrExternalService:
		response.Error(c, http.StatusBadGateway, "PROVIDER_ERROR", "Payment provider unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
