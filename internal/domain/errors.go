package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrLoginLockedOut     = errors.New("too many failed login attempts")
	ErrDuplicateUsername  = errors.New("username already exists")

	ErrValidation           = errors.New("validation failed")
	ErrDuplicateClient      = errors.New("a client with matching details already exists")
	ErrInvalidAmount        = errors.New("amount must be a non-negative value")
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrOverpayment          = errors.New("payment exceeds the invoice's open balance")

	ErrQuotationConverted = errors.New("quotation has already been converted to an invoice")
	ErrQuotationLocked    = errors.New("converted quotations cannot be modified")

	ErrStepMismatch     = errors.New("step is not the application's current step")
	ErrStepAlreadyDone  = errors.New("step has already been completed")
	ErrNotFreeformType  = errors.New("only freeform applications can be completed directly")
	ErrAlreadyCompleted = errors.New("application is already completed")

	ErrPasswordResetTokenInvalid = errors.New("password reset token is invalid or has already been used")
)
