package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/trezcool/coachdesk/core"
)

var ErrNotFound = errors.New("payment not found")

var (
	newestFirst = []core.DBOrdering{{Field: "p.payment_date"}, {Field: "p.id"}}
	oldestFirst = []core.DBOrdering{{Field: "p.payment_date", Ascending: true}, {Field: "p.id", Ascending: true}}
)

type (
	Repository interface {
		CreatePayment(ctx context.Context, p Payment) (Payment, error)
		QueryPayments(ctx context.Context, filter QueryFilter) ([]StudentPayment, error)
		// SummarizeMonth sums the coach's completed payments tagged with month.
		SummarizeMonth(ctx context.Context, coachID int, month string) (Summary, error)
		// TotalPaid sums a student's completed payments.
		TotalPaid(ctx context.Context, studentID int) (decimal.Decimal, error)
		UpdateStatus(ctx context.Context, id int, status string) (int64, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewTransactionID returns a unique, opaque transaction id.
func NewTransactionID() string {
	return "TXN-" + uuid.New().String()
}

func (svc *Service) Create(ctx context.Context, np NewPayment) (Payment, error) {
	if err := np.Validate(); err != nil {
		return Payment{}, err
	}
	txnID := np.TransactionID
	if txnID == "" {
		txnID = NewTransactionID()
	}
	p := Payment{
		StudentID:     np.StudentID,
		Amount:        np.amount,
		PaymentDate:   np.paymentDate,
		PaymentMethod: core.NullString(np.PaymentMethod),
		Status:        np.Status,
		Month:         np.Month,
		Notes:         core.NullString(np.Notes),
		TransactionID: txnID,
		CreatedAt:     time.Now().UTC(),
	}
	p, err := svc.repo.CreatePayment(ctx, p)
	if err != nil {
		return Payment{}, errors.Wrap(err, "creating payment")
	}
	return p, nil
}

// GetByID returns the payment with the given id along with its student's name and coach.
func (svc *Service) GetByID(ctx context.Context, id int) (p StudentPayment, found bool, err error) {
	payments, err := svc.repo.QueryPayments(ctx, QueryFilter{ID: id})
	if err != nil {
		return StudentPayment{}, false, errors.Wrap(err, "getting payment")
	}
	if len(payments) == 0 {
		return StudentPayment{}, false, nil
	}
	return payments[0], true, nil
}

// ListByStudent returns a student's payments, newest first.
func (svc *Service) ListByStudent(ctx context.Context, studentID int) ([]StudentPayment, error) {
	payments, err := svc.repo.QueryPayments(ctx, QueryFilter{StudentID: studentID, Ordering: newestFirst})
	if err != nil {
		return nil, errors.Wrap(err, "listing student payments")
	}
	return payments, nil
}

// ListByCoach returns all payments of the coach's students, newest first.
func (svc *Service) ListByCoach(ctx context.Context, coachID int) ([]StudentPayment, error) {
	payments, err := svc.repo.QueryPayments(ctx, QueryFilter{CoachID: coachID, Ordering: newestFirst})
	if err != nil {
		return nil, errors.Wrap(err, "listing payments")
	}
	return payments, nil
}

// ListByMonth returns the coach's payments tagged with month (YYYY-MM), oldest first.
func (svc *Service) ListByMonth(ctx context.Context, coachID int, month string) ([]StudentPayment, error) {
	month, err := cleanMonth(month)
	if err != nil {
		return nil, err
	}
	payments, err := svc.repo.QueryPayments(ctx, QueryFilter{CoachID: coachID, Month: month, Ordering: oldestFirst})
	if err != nil {
		return nil, errors.Wrap(err, "listing payments of month")
	}
	return payments, nil
}

// ListPending returns the coach's pending payments, oldest first.
func (svc *Service) ListPending(ctx context.Context, coachID int) ([]StudentPayment, error) {
	payments, err := svc.repo.QueryPayments(ctx, QueryFilter{CoachID: coachID, Status: StatusPending, Ordering: oldestFirst})
	if err != nil {
		return nil, errors.Wrap(err, "listing pending payments")
	}
	return payments, nil
}

// Summarize returns the completed revenue of month (YYYY-MM). It is {0, 0} when nothing matches.
func (svc *Service) Summarize(ctx context.Context, coachID int, month string) (Summary, error) {
	month, err := cleanMonth(month)
	if err != nil {
		return Summary{}, err
	}
	summary, err := svc.repo.SummarizeMonth(ctx, coachID, month)
	if err != nil {
		return Summary{}, errors.Wrap(err, "summarizing payments")
	}
	return summary, nil
}

// TotalPaid returns the sum of a student's completed payments.
func (svc *Service) TotalPaid(ctx context.Context, studentID int) (decimal.Decimal, error) {
	total, err := svc.repo.TotalPaid(ctx, studentID)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "summing student payments")
	}
	return total, nil
}

// UpdateStatus changes a payment's status and returns the number of affected rows.
func (svc *Service) UpdateStatus(ctx context.Context, id int, status string) (int64, error) {
	status = core.CleanString(status, true /* lower */)
	if status != StatusCompleted && status != StatusPending {
		return 0, core.NewValidationError(nil, core.FieldError{Field: "status", Error: "status must be one of [completed pending]"})
	}
	n, err := svc.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return 0, errors.Wrap(err, "updating payment status")
	}
	return n, nil
}

func cleanMonth(month string) (string, error) {
	month = core.CleanString(month)
	if _, err := time.Parse(core.MonthLayout, month); err != nil {
		return "", core.NewValidationError(nil, core.FieldError{Field: "month", Error: "month must be a month formatted as YYYY-MM"})
	}
	return month, nil
}
