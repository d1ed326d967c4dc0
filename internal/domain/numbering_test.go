package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"maktab/internal/domain"
)

var (
	march2026 = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	jan2027   = time.Date(2027, 1, 2, 9, 0, 0, 0, time.UTC)
)

func TestNextQuotationNumber(t *testing.T) {
	assert.Equal(t, "QT-2026-0001", domain.NextQuotationNumber("", march2026))
	assert.Equal(t, "QT-2026-0042", domain.NextQuotationNumber("QT-2026-0041", march2026))
	assert.Equal(t, "QT-2026-1000", domain.NextQuotationNumber("QT-2026-0999", march2026))
}

func TestNextQuotationNumber_YearRollover(t *testing.T) {
	assert.Equal(t, "QT-2027-0001", domain.NextQuotationNumber("QT-2026-0451", jan2027))
}

func TestNextInvoiceNumber_FiveDigits(t *testing.T) {
	assert.Equal(t, "INV-2026-00001", domain.NextInvoiceNumber("", march2026))
	assert.Equal(t, "INV-2026-00100", domain.NextInvoiceNumber("INV-2026-00099", march2026))
}

func TestNextClientNumber(t *testing.T) {
	assert.Equal(t, "CLI-2026-0001", domain.NextClientNumber("", march2026))
	assert.Equal(t, "CLI-2026-0008", domain.NextClientNumber("CLI-2026-0007", march2026))
}

func TestNextApplicationNumber_DayScoped(t *testing.T) {
	assert.Equal(t, "APP-260315-001", domain.NextApplicationNumber("", march2026))
	assert.Equal(t, "APP-260315-004", domain.NextApplicationNumber("APP-260315-003", march2026))

	// New day restarts the sequence
	nextDay := march2026.AddDate(0, 0, 1)
	assert.Equal(t, "APP-260316-001", domain.NextApplicationNumber("APP-260315-003", nextDay))
}

func TestNextNumber_GarbageLastValue(t *testing.T) {
	assert.Equal(t, "QT-2026-0001", domain.NextQuotationNumber("not-a-number", march2026))
	assert.Equal(t, "INV-2026-00001", domain.NextInvoiceNumber("INV-2026-", march2026))
}
