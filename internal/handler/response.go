package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"maktab/internal/domain"
	"maktab/internal/middleware"
	"maktab/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response. Details carries
// error-specific context such as the existing record on duplicate
// client conflicts.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrLoginLockedOut):
		return http.StatusTooManyRequests, "LOGIN_LOCKED_OUT", "too many failed login attempts; try again later"
	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusConflict, "DUPLICATE_USERNAME", "username already exists"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", "request failed validation"
	case errors.Is(err, domain.ErrDuplicateClient):
		return http.StatusConflict, "DUPLICATE_CLIENT", "a client with matching identity details already exists"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT", "line item amounts must not be negative"
	case errors.Is(err, domain.ErrInvalidPaymentAmount):
		return http.StatusBadRequest, "INVALID_PAYMENT_AMOUNT", "payment amount must be greater than zero"
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		return http.StatusBadRequest, "INVALID_PAYMENT_METHOD", "payment method must be one of: cash, card, bank_transfer, cheque"
	case errors.Is(err, domain.ErrOverpayment):
		return http.StatusBadRequest, "OVERPAYMENT", "payment exceeds the invoice's outstanding balance"
	case errors.Is(err, domain.ErrQuotationConverted):
		return http.StatusConflict, "QUOTATION_ALREADY_CONVERTED", "quotation has already been converted to an invoice"
	case errors.Is(err, domain.ErrQuotationLocked):
		return http.StatusConflict, "QUOTATION_LOCKED", "converted quotations cannot be modified or deleted"
	case errors.Is(err, domain.ErrStepMismatch):
		return http.StatusConflict, "STEP_MISMATCH", "step is not the application's current step"
	case errors.Is(err, domain.ErrStepAlreadyDone):
		return http.StatusConflict, "STEP_ALREADY_DONE", "step has already been completed"
	case errors.Is(err, domain.ErrNotFreeformType):
		return http.StatusBadRequest, "NOT_FREEFORM_TYPE", "only freeform applications can be completed directly"
	case errors.Is(err, domain.ErrAlreadyCompleted):
		return http.StatusConflict, "ALREADY_COMPLETED", "application is already completed"
	case errors.Is(err, domain.ErrPasswordResetTokenInvalid):
		return http.StatusUnauthorized, "INVALID_RESET_TOKEN", "password reset token is invalid or has already been used"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// auditMetaFrom builds audit metadata from the authenticated request.
func auditMetaFrom(c *gin.Context) service.AuditMeta {
	return service.AuditMeta{
		Actor:     middleware.GetUsername(c),
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Duplicate client conflicts carry the existing record in the error details
// so callers can link to it.
func HandleError(c *gin.Context, err error) {
	var dup *service.DuplicateClientError
	if errors.As(err, &dup) {
		c.JSON(http.StatusConflict, APIResponse{
			Success: false,
			Error: &APIError{
				Code:    "DUPLICATE_CLIENT",
				Message: "a client with matching identity details already exists",
				Details: gin.H{"existing_client": dup.Existing},
			},
		})
		return
	}

	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
