package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Document number prefixes. The formats are part of the external contract:
// QT-<YYYY>-<NNNN>, INV-<YYYY>-<NNNNN>, CLI-<YYYY>-<NNNN>, APP-<YYMMDD>-<NNN>.
const (
	QuotationNumberPrefix   = "QT"
	InvoiceNumberPrefix     = "INV"
	ClientNumberPrefix      = "CLI"
	ApplicationNumberPrefix = "APP"
)

// NextQuotationNumber derives the next year-scoped quotation number from
// the most recently issued one ("" starts a fresh sequence).
func NextQuotationNumber(last string, now time.Time) string {
	return nextYearScoped(QuotationNumberPrefix, 4, last, now)
}

// NextInvoiceNumber derives the next year-scoped invoice number.
func NextInvoiceNumber(last string, now time.Time) string {
	return nextYearScoped(InvoiceNumberPrefix, 5, last, now)
}

// NextClientNumber derives the next year-scoped client number.
func NextClientNumber(last string, now time.Time) string {
	return nextYearScoped(ClientNumberPrefix, 4, last, now)
}

// NextApplicationNumber derives the next day-scoped application number,
// format APP-<YYMMDD>-<NNN>.
func NextApplicationNumber(last string, now time.Time) string {
	day := now.Format("060102")
	seq := 1
	if scope, n, ok := parseNumber(last, ApplicationNumberPrefix); ok && scope == day {
		seq = n + 1
	}
	return fmt.Sprintf("%s-%s-%03d", ApplicationNumberPrefix, day, seq)
}

// nextYearScoped increments the numeric suffix of the last number when its
// embedded year matches the current year, otherwise restarts at 1.
//
// Reading the last issued number and incrementing is not collision-safe
// under concurrent creation; the unique index on the number column turns
// a race into a constraint error. Acceptable for single-front-desk usage.
func nextYearScoped(prefix string, width int, last string, now time.Time) string {
	year := now.Format("2006")
	seq := 1
	if scope, n, ok := parseNumber(last, prefix); ok && scope == year {
		seq = n + 1
	}
	return fmt.Sprintf("%s-%s-%0*d", prefix, year, width, seq)
}

// parseNumber splits "<prefix>-<scope>-<seq>" into its scope and sequence.
func parseNumber(number, prefix string) (scope string, seq int, ok bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != prefix {
		return "", 0, false
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return parts[1], n, true
}
