package payment

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/coachdesk/core"
)

// Statuses
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// Methods commonly used to pay fees. Any other tag is accepted.
const (
	MethodCash = "cash"
	MethodUPI  = "upi"
	MethodBank = "bank"
	MethodCard = "card"
)

type Payment struct {
	ID            int             `db:"id" json:"id"`
	StudentID     int             `db:"student_id" json:"student_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentDate   time.Time       `db:"payment_date" json:"payment_date"` // UTC
	PaymentMethod null.String     `db:"payment_method" json:"payment_method"`
	Status        string          `db:"status" json:"status"`
	Month         string          `db:"month" json:"month"` // YYYY-MM reporting tag
	Notes         null.String     `db:"notes" json:"notes"`
	TransactionID string          `db:"transaction_id" json:"transaction_id"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"` // UTC
}

func (p Payment) IsPending() bool { return p.Status == StatusPending }

// StudentPayment is a Payment joined with its student's name.
type StudentPayment struct {
	Payment
	CoachID     int    `db:"coach_id" json:"coach_id"`
	StudentName string `db:"student_name" json:"student_name"`
}

// NewPayment contains information needed to record a Payment.
// Blank Month defaults to the payment date's month, blank PaymentDate to now,
// and a blank TransactionID is generated.
type NewPayment struct {
	StudentID     int    `json:"student_id" validate:"required,gt=0"`
	Amount        string `json:"amount" validate:"required,decimal"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status" validate:"oneof=completed pending"`
	Month         string `json:"month" validate:"omitempty,month"`
	PaymentDate   string `json:"payment_date" validate:"omitempty,isodate"`
	Notes         string `json:"notes"`
	TransactionID string `json:"transaction_id"`

	amount      decimal.Decimal
	paymentDate time.Time
}

func (np *NewPayment) Validate() error {
	np.Amount = core.CleanString(np.Amount)
	np.PaymentMethod = core.CleanString(np.PaymentMethod, true /* lower */)
	np.Status = cleanStatus(np.Status)
	np.Month = core.CleanString(np.Month)
	np.PaymentDate = core.CleanString(np.PaymentDate)
	np.Notes = core.CleanString(np.Notes)
	np.TransactionID = core.CleanString(np.TransactionID)

	if err := core.ValidateStruct(np); err != nil {
		return err
	}

	amount, err := core.ParseAmount(np.Amount, decimal.Zero)
	if err != nil {
		return core.NewAmountError("amount", err)
	}
	if !amount.IsPositive() {
		return core.NewValidationError(nil, core.FieldError{Field: "amount", Error: "amount must be greater than 0"})
	}
	np.amount = amount

	np.paymentDate = time.Now().UTC()
	if np.PaymentDate != "" {
		np.paymentDate, _ = time.Parse(core.DateLayout, np.PaymentDate) // validated above
	}
	if np.Month == "" {
		np.Month = core.FormatMonth(np.paymentDate)
	}
	return nil
}

// Summary is the completed revenue of a month.
type Summary struct {
	Total decimal.Decimal `db:"total" json:"total"`
	Count int             `db:"count" json:"count"`
}

// Average returns the mean completed payment, 0 when there is none.
func (s Summary) Average() decimal.Decimal {
	if s.Count == 0 {
		return decimal.Zero
	}
	return s.Total.Div(decimal.NewFromInt(int64(s.Count)))
}

// Patch holds partial changes to merge onto a cached Payment; nil fields are left untouched.
type Patch struct {
	Status *string
	Notes  *null.String
}

func (p Patch) Apply(pmt *Payment) {
	if p.Status != nil {
		pmt.Status = *p.Status
	}
	if p.Notes != nil {
		pmt.Notes = *p.Notes
	}
}

type QueryFilter struct {
	ID        int
	CoachID   int
	StudentID int
	Status    string
	Month     string
	Ordering  []core.DBOrdering
}

func cleanStatus(status string) string {
	status = core.CleanString(status, true /* lower */)
	if status == "" {
		return StatusCompleted
	}
	return status
}
