package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// MoneyScale is the number of decimal places kept on fees and payment amounts.
const MoneyScale = 2

// MaxAmount bounds fees and payment amounts.
var MaxAmount = decimal.New(1, 10)

var (
	ErrAmountSyntax    = errors.New("must be a number")
	ErrAmountPrecision = errors.New("must have at most 2 decimal places")
	ErrAmountTooLarge  = errors.New("must not exceed " + MaxAmount.String())
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NullString cleans `s` and maps the empty string to NULL.
func NullString(s string, lower ...bool) null.String {
	s = CleanString(s, lower...)
	return null.NewString(s, s != "")
}

// ParseAmount parses a monetary amount of at most MoneyScale decimal places
// whose magnitude does not exceed MaxAmount. A blank string yields `def`.
func ParseAmount(s string, def decimal.Decimal) (decimal.Decimal, error) {
	s = CleanString(s)
	if s == "" {
		return def, nil
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrAmountSyntax
	}
	if amount.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero, ErrAmountTooLarge
	}
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return decimal.Zero, ErrAmountPrecision
	}
	return amount, nil
}

// NewAmountError reports a ParseAmount failure on `field`.
func NewAmountError(field string, err error) error {
	return NewValidationError(nil, FieldError{Field: field, Error: field + " " + err.Error()})
}

// FormatDate formats t as a calendar day (YYYY-MM-DD).
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// FormatMonth formats t as a month tag (YYYY-MM).
func FormatMonth(t time.Time) string { return t.Format(MonthLayout) }

// Getwd tries to find the project root (the directory holding go.mod).
// go-test changes the working directory to the test package being run during tests,
// binaries run from anywhere: fall back to the working directory when no root is found.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
