package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LineItem is a single billable line on a quotation or invoice.
type LineItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// LineItems is stored as a JSONB column.
type LineItems []LineItem

// Value implements driver.Valuer for JSONB storage.
func (li LineItems) Value() (driver.Value, error) {
	if li == nil {
		return "[]", nil
	}
	b, err := json.Marshal(li)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSONB retrieval.
func (li *LineItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*li = nil
		return nil
	case []byte:
		return json.Unmarshal(v, li)
	case string:
		return json.Unmarshal([]byte(v), li)
	default:
		return fmt.Errorf("LineItems.Scan: unsupported type %T", src)
	}
}

// CompletedStep is one entry in an application's completed-step log.
type CompletedStep struct {
	Step          string    `json:"step"`
	CompletedDate time.Time `json:"completed_date"`
	Notes         string    `json:"notes"`
	UpdatedBy     string    `json:"updated_by"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CompletedSteps is stored as a JSONB column.
type CompletedSteps []CompletedStep

// Value implements driver.Valuer for JSONB storage.
func (cs CompletedSteps) Value() (driver.Value, error) {
	if cs == nil {
		return "[]", nil
	}
	b, err := json.Marshal(cs)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSONB retrieval.
func (cs *CompletedSteps) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*cs = nil
		return nil
	case []byte:
		return json.Unmarshal(v, cs)
	case string:
		return json.Unmarshal([]byte(v), cs)
	default:
		return fmt.Errorf("CompletedSteps.Scan: unsupported type %T", src)
	}
}

// Contains reports whether the step is present in the log.
func (cs CompletedSteps) Contains(step string) bool {
	for _, s := range cs {
		if s.Step == step {
			return true
		}
	}
	return false
}

// StringList is stored as a JSONB array column.
type StringList []string

// Value implements driver.Valuer for JSONB storage.
func (sl StringList) Value() (driver.Value, error) {
	if sl == nil {
		return "[]", nil
	}
	b, err := json.Marshal(sl)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSONB retrieval.
func (sl *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*sl = nil
		return nil
	case []byte:
		return json.Unmarshal(v, sl)
	case string:
		return json.Unmarshal([]byte(v), sl)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
}

// Client represents a company or individual served by the typing center.
// Clients are never hard-deleted; DeletedAt marks soft deletion.
type Client struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	ClientNumber       string     `db:"client_number" json:"client_number"`
	ClientType         ClientType `db:"client_type" json:"client_type"`
	CompanyName        string     `db:"company_name" json:"company_name"`
	ContactPerson      string     `db:"contact_person" json:"contact_person"`
	Phone              string     `db:"phone" json:"phone"`
	Email              string     `db:"email" json:"email"`
	TradeLicenseNumber string     `db:"trade_license_number" json:"trade_license_number"`
	Emirate            string     `db:"emirate" json:"emirate"`
	Address            string     `db:"address" json:"address"`
	IsNewClient        bool       `db:"is_new_client" json:"is_new_client"`
	Notes              string     `db:"notes" json:"notes"`
	DeletedAt          *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// DisplayName returns the name shown on documents for this client.
func (c *Client) DisplayName() string {
	if c.ClientType == ClientTypeCompany && c.CompanyName != "" {
		return c.CompanyName
	}
	return c.ContactPerson
}

// Quotation is a non-binding price estimate. Once converted to an invoice
// it becomes immutable and keeps a permanent reference to the invoice.
type Quotation struct {
	ID                 uuid.UUID       `db:"id" json:"id"`
	QuotationNumber    string          `db:"quotation_number" json:"quotation_number"`
	ClientID           *uuid.UUID      `db:"client_id" json:"client_id,omitempty"`
	ClientName         string          `db:"client_name" json:"client_name"`
	Items              LineItems       `db:"items" json:"items"`
	IncludeVAT         bool            `db:"include_vat" json:"include_vat"`
	Subtotal           float64         `db:"subtotal" json:"subtotal"`
	VATAmount          float64         `db:"vat_amount" json:"vat_amount"`
	Total              float64         `db:"total" json:"total"`
	Status             QuotationStatus `db:"status" json:"status"`
	Notes              string          `db:"notes" json:"notes"`
	ConvertedToInvoice bool            `db:"converted_to_invoice" json:"converted_to_invoice"`
	InvoiceID          *uuid.UUID      `db:"invoice_id" json:"invoice_id,omitempty"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

// Invoice is a billable document with its own payment lifecycle.
type Invoice struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	InvoiceNumber string        `db:"invoice_number" json:"invoice_number"`
	QuotationID   *uuid.UUID    `db:"quotation_id" json:"quotation_id,omitempty"`
	ClientID      *uuid.UUID    `db:"client_id" json:"client_id,omitempty"`
	ClientName    string        `db:"client_name" json:"client_name"`
	Items         LineItems     `db:"items" json:"items"`
	IncludeVAT    bool          `db:"include_vat" json:"include_vat"`
	Subtotal      float64       `db:"subtotal" json:"subtotal"`
	VATAmount     float64       `db:"vat_amount" json:"vat_amount"`
	Total         float64       `db:"total" json:"total"`
	AmountPaid    float64       `db:"amount_paid" json:"amount_paid"`
	Balance       float64       `db:"balance" json:"balance"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	InvoiceDate   time.Time     `db:"invoice_date" json:"invoice_date"`
	Notes         string        `db:"notes" json:"notes"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`

	// Payments is denormalized for display; populated on single-invoice reads.
	Payments []Payment `db:"-" json:"payments,omitempty"`
}

// Payment records money received against an invoice. Creating a payment
// is the sole mutator of the parent invoice's derived payment fields.
type Payment struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	InvoiceID     uuid.UUID     `db:"invoice_id" json:"invoice_id"`
	InvoiceNumber string        `db:"invoice_number" json:"invoice_number"`
	ClientName    string        `db:"client_name" json:"client_name"`
	Amount        float64       `db:"amount" json:"amount"`
	Method        PaymentMethod `db:"method" json:"method"`
	PaymentDate   time.Time     `db:"payment_date" json:"payment_date"`
	Reference     string        `db:"reference" json:"reference"`
	Notes         string        `db:"notes" json:"notes"`
	CreatedBy     string        `db:"created_by" json:"created_by"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// Application is a tracked visa/license case progressing through the
// fixed step sequence of its type.
type Application struct {
	ID                uuid.UUID         `db:"id" json:"id"`
	ApplicationNumber string            `db:"application_number" json:"application_number"`
	ApplicationType   ApplicationType   `db:"application_type" json:"application_type"`
	ClientID          *uuid.UUID        `db:"client_id" json:"client_id,omitempty"`
	ClientName        string            `db:"client_name" json:"client_name"`
	PersonName        string            `db:"person_name" json:"person_name"`
	Emirate           string            `db:"emirate" json:"emirate"`
	CurrentStep       string            `db:"current_step" json:"current_step"`
	StepsCompleted    CompletedSteps    `db:"steps_completed" json:"steps_completed"`
	Status            ApplicationStatus `db:"status" json:"status"`
	StartDate         time.Time         `db:"start_date" json:"start_date"`
	ExpectedDate      *time.Time        `db:"expected_date" json:"expected_date,omitempty"`
	CompletionDate    *time.Time        `db:"completion_date" json:"completion_date,omitempty"`
	Notes             string            `db:"notes" json:"notes"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
}

// AuditLogEntry is an append-only record of an invoice mutation.
type AuditLogEntry struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	TableName     string          `db:"table_name" json:"table_name"`
	RecordID      uuid.UUID       `db:"record_id" json:"record_id"`
	Action        AuditAction     `db:"action" json:"action"`
	ChangedBy     string          `db:"changed_by" json:"changed_by"`
	OldData       json.RawMessage `db:"old_data" json:"old_data,omitempty"`
	NewData       json.RawMessage `db:"new_data" json:"new_data,omitempty"`
	ChangedFields StringList      `db:"changed_fields" json:"changed_fields"`
	IPAddress     string          `db:"ip_address" json:"ip_address"`
	UserAgent     string          `db:"user_agent" json:"user_agent"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// User is a back-office operator account.
type User struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	Username             string     `db:"username" json:"username"`
	PasswordHash         string     `db:"password_hash" json:"-"`
	FullName             string     `db:"full_name" json:"full_name"`
	Role                 UserRole   `db:"role" json:"role"`
	Email                string     `db:"email" json:"email"`
	IsActive             bool       `db:"is_active" json:"is_active"`
	LastLogin            *time.Time `db:"last_login" json:"last_login,omitempty"`
	PasswordResetTokenID *string    `db:"password_reset_token_id" json:"-"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}
