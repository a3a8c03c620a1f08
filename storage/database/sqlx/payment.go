package sqlxrepos

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/payment"
)

type paymentRepository struct {
	exec core.DBExecutor
}

var _ payment.Repository = (*paymentRepository)(nil) // interface compliance check

func NewPaymentRepository(exec core.DBExecutor) *paymentRepository {
	return &paymentRepository{exec: exec}
}

func (repo paymentRepository) CreatePayment(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	res, err := repo.exec.ExecContext(ctx,
		`INSERT INTO payments (student_id, amount, payment_date, payment_method, status, month, notes, transaction_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.StudentID, p.Amount, p.PaymentDate.UTC(), p.PaymentMethod, p.Status, p.Month, p.Notes, p.TransactionID, p.CreatedAt.UTC(),
	)
	if err != nil {
		return payment.Payment{}, mapErr(err, "inserting payment")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return payment.Payment{}, mapErr(err, "inserting payment")
	}
	p.ID = int(id)
	return p, nil
}

func (repo paymentRepository) QueryPayments(ctx context.Context, filter payment.QueryFilter) ([]payment.StudentPayment, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.ID != 0 {
		where = append(where, "p.id = ?")
		args = append(args, filter.ID)
	}
	if filter.CoachID != 0 {
		where = append(where, "s.coach_id = ?")
		args = append(args, filter.CoachID)
	}
	if filter.StudentID != 0 {
		where = append(where, "p.student_id = ?")
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		where = append(where, "p.status = ?")
		args = append(args, filter.Status)
	}
	if filter.Month != "" {
		where = append(where, "p.month = ?")
		args = append(args, filter.Month)
	}

	q := `SELECT p.id, p.student_id, p.amount, p.payment_date, p.payment_method, p.status, p.month, p.notes,
		COALESCE(p.transaction_id, '') AS transaction_id, p.created_at, s.coach_id, s.name AS student_name
		FROM payments p
		JOIN students s ON s.id = p.student_id`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	if len(filter.Ordering) > 0 {
		orderList := make([]string, 0, len(filter.Ordering))
		for _, ord := range filter.Ordering {
			orderList = append(orderList, ord.String())
		}
		q += ` ORDER BY ` + strings.Join(orderList, ", ")
	}

	payments := make([]payment.StudentPayment, 0)
	if err := sqlx.SelectContext(ctx, repo.exec, &payments, q, args...); err != nil {
		return nil, mapErr(err, "querying payments")
	}
	return payments, nil
}

func (repo paymentRepository) SummarizeMonth(ctx context.Context, coachID int, month string) (payment.Summary, error) {
	var summary payment.Summary
	if err := sqlx.GetContext(ctx, repo.exec, &summary,
		`SELECT COALESCE(SUM(p.amount), 0) AS total, COUNT(p.id) AS count
		FROM payments p
		JOIN students s ON s.id = p.student_id
		WHERE s.coach_id = ? AND p.month = ? AND p.status = ?`,
		coachID, month, payment.StatusCompleted,
	); err != nil {
		return payment.Summary{}, mapErr(err, "summarizing payments")
	}
	summary.Total = summary.Total.Round(core.MoneyScale)
	return summary, nil
}

func (repo paymentRepository) TotalPaid(ctx context.Context, studentID int) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := sqlx.GetContext(ctx, repo.exec, &total,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE student_id = ? AND status = ?`,
		studentID, payment.StatusCompleted,
	); err != nil {
		return decimal.Zero, mapErr(err, "summing payments")
	}
	return total.Round(core.MoneyScale), nil
}

func (repo paymentRepository) UpdateStatus(ctx context.Context, id int, status string) (int64, error) {
	res, err := repo.exec.ExecContext(ctx, `UPDATE payments SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return 0, mapErr(err, "updating payment status")
	}
	return rowsAffected(res, "updating payment status")
}
