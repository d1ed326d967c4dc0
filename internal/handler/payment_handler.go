package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"maktab/internal/middleware"
	"maktab/internal/service"
)

// PaymentHandler handles the flat payment endpoints. Payments can also
// be recorded and listed through the invoice routes.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record handles POST /api/v1/payments
func (h *PaymentHandler) Record(c *gin.Context) {
	var input service.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if input.InvoiceID == uuid.Nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invoice_id is required")
		return
	}

	result, err := h.paymentService.Record(c.Request.Context(), input, middleware.GetUsername(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// List handles GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	payments, total, err := h.paymentService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, payments, PagMeta{Total: total, Offset: offset, Limit: limit})
}
