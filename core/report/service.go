package report

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/attendance"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/student"
)

type (
	StudentLister interface {
		ListByCoach(ctx context.Context, coachID int) ([]student.Student, error)
	}

	AttendanceLister interface {
		ListByDate(ctx context.Context, coachID int, date string) ([]attendance.DailyRecord, error)
	}

	PaymentSummarizer interface {
		Summarize(ctx context.Context, coachID int, month string) (payment.Summary, error)
		ListPending(ctx context.Context, coachID int) ([]payment.StudentPayment, error)
	}
)

// Dashboard is a coach's business overview as of one day.
type Dashboard struct {
	CoachID          int             `json:"coach_id"`
	Date             string          `json:"date"`  // YYYY-MM-DD
	Month            string          `json:"month"` // YYYY-MM
	TotalStudents    int             `json:"total_students"`
	ActiveStudents   int             `json:"active_students"`
	MonthlyRevenue   decimal.Decimal `json:"monthly_revenue"`
	PaymentsCount    int             `json:"payments_count"`
	PresentToday     int             `json:"present_today"`
	AbsentToday      int             `json:"absent_today"`
	PotentialRevenue decimal.Decimal `json:"potential_revenue"` // sum of active students' monthly fees
	PendingCount     int             `json:"pending_count"`
	PendingTotal     decimal.Decimal `json:"pending_total"`
}

// Outstanding returns how much of the potential revenue has not been collected this month.
func (d Dashboard) Outstanding() decimal.Decimal {
	out := d.PotentialRevenue.Sub(d.MonthlyRevenue)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

type Service struct {
	students   StudentLister
	attendance AttendanceLister
	payments   PaymentSummarizer
}

func NewService(students StudentLister, att AttendanceLister, payments PaymentSummarizer) *Service {
	return &Service{students: students, attendance: att, payments: payments}
}

// Dashboard computes the coach's overview for today and today's month.
func (svc *Service) Dashboard(ctx context.Context, coachID int, today time.Time) (Dashboard, error) {
	d := Dashboard{
		CoachID:          coachID,
		Date:             core.FormatDate(today),
		Month:            core.FormatMonth(today),
		MonthlyRevenue:   decimal.Zero,
		PotentialRevenue: decimal.Zero,
		PendingTotal:     decimal.Zero,
	}

	students, err := svc.students.ListByCoach(ctx, coachID)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "loading students")
	}
	d.TotalStudents = len(students)
	for _, s := range students {
		if s.IsActive() {
			d.ActiveStudents++
			d.PotentialRevenue = d.PotentialRevenue.Add(s.MonthlyFee)
		}
	}

	summary, err := svc.payments.Summarize(ctx, coachID, d.Month)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "loading revenue")
	}
	d.MonthlyRevenue = summary.Total
	d.PaymentsCount = summary.Count

	pending, err := svc.payments.ListPending(ctx, coachID)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "loading pending payments")
	}
	d.PendingCount = len(pending)
	for _, p := range pending {
		d.PendingTotal = d.PendingTotal.Add(p.Amount)
	}

	records, err := svc.attendance.ListByDate(ctx, coachID, d.Date)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "loading attendance")
	}
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			d.PresentToday++
		case attendance.StatusAbsent:
			d.AbsentToday++
		}
	}
	return d, nil
}
