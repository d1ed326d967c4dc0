package domain

// ClientType distinguishes company clients from walk-in individuals.
type ClientType string

const (
	ClientTypeCompany    ClientType = "company"
	ClientTypeIndividual ClientType = "individual"
)

// QuotationStatus represents the lifecycle of a quotation.
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
)

// AllowedQuotationStatuses is the set of valid quotation statuses.
var AllowedQuotationStatuses = map[QuotationStatus]bool{
	QuotationStatusDraft:    true,
	QuotationStatusSent:     true,
	QuotationStatusAccepted: true,
	QuotationStatusRejected: true,
}

// PaymentStatus is derived from an invoice's total and recorded payments.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// PaymentMethod enumerates the accepted payment methods.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodCheque       PaymentMethod = "cheque"
)

// AllowedPaymentMethods is the set of valid payment methods.
var AllowedPaymentMethods = map[PaymentMethod]bool{
	PaymentMethodCash:         true,
	PaymentMethodBankTransfer: true,
	PaymentMethodCard:         true,
	PaymentMethodCheque:       true,
}

// ApplicationType identifies a visa/license processing workflow.
type ApplicationType string

const (
	AppTypeNewVisa          ApplicationType = "new_visa"
	AppTypeVisaRenewal      ApplicationType = "visa_renewal"
	AppTypeVisaCancellation ApplicationType = "visa_cancellation"
	AppTypeNewLicense       ApplicationType = "new_license"
	AppTypeLicenseRenewal   ApplicationType = "license_renewal"
	AppTypeLicenseAmendment ApplicationType = "license_amendment"
	AppTypeLabourCard       ApplicationType = "labour_card"
	AppTypeEmiratesID       ApplicationType = "emirates_id"
	AppTypeFamilyVisa       ApplicationType = "family_visa"
	AppTypeOther            ApplicationType = "other"
)

// ApplicationStatus represents the overall state of an application.
type ApplicationStatus string

const (
	AppStatusInProgress ApplicationStatus = "in_progress"
	AppStatusCompleted  ApplicationStatus = "completed"
)

// StepCompleted is the synthetic terminal step every catalog ends with.
const StepCompleted = "completed"

// UserRole defines the authorization roles.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// AuditAction enumerates the recorded invoice audit actions.
type AuditAction string

const (
	AuditActionCreated              AuditAction = "created"
	AuditActionUpdated              AuditAction = "updated"
	AuditActionDeleted              AuditAction = "deleted"
	AuditActionCreatedFromQuotation AuditAction = "created_from_quotation"
	AuditActionConvertedToInvoice   AuditAction = "converted_to_invoice"
)
