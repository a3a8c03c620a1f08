package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/paymethod"
)

const paymethodColumns = "id, coach_id, method_type, provider, api_key, api_key_last4, is_active, created_at"

type paymethodRepository struct {
	exec core.DBExecutor
}

var _ paymethod.Repository = (*paymethodRepository)(nil) // interface compliance check

func NewPaymethodRepository(exec core.DBExecutor) *paymethodRepository {
	return &paymethodRepository{exec: exec}
}

func (repo paymethodRepository) CreateMethod(ctx context.Context, m paymethod.Method) (paymethod.Method, error) {
	res, err := repo.exec.ExecContext(ctx,
		`INSERT INTO payment_methods (coach_id, method_type, provider, api_key, api_key_last4, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.CoachID, m.MethodType, m.Provider, m.SealedKey, m.KeyLast4, m.IsActive, m.CreatedAt.UTC(),
	)
	if err != nil {
		return paymethod.Method{}, mapErr(err, "inserting payment method")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return paymethod.Method{}, mapErr(err, "inserting payment method")
	}
	m.ID = int(id)
	return m, nil
}

func (repo paymethodRepository) GetMethod(ctx context.Context, id int) (paymethod.Method, error) {
	var m paymethod.Method
	if err := sqlx.GetContext(ctx, repo.exec, &m, `SELECT `+paymethodColumns+` FROM payment_methods WHERE id = ?`, id); err != nil {
		return paymethod.Method{}, trapNoRowsErr(err, paymethod.ErrNotFound, "getting payment method")
	}
	return m, nil
}

func (repo paymethodRepository) QueryActiveMethods(ctx context.Context, coachID int) ([]paymethod.Method, error) {
	methods := make([]paymethod.Method, 0)
	if err := sqlx.SelectContext(ctx, repo.exec, &methods,
		`SELECT `+paymethodColumns+` FROM payment_methods WHERE coach_id = ? AND is_active = 1 ORDER BY id ASC`,
		coachID,
	); err != nil {
		return nil, mapErr(err, "querying payment methods")
	}
	return methods, nil
}

func (repo paymethodRepository) UpdateMethod(ctx context.Context, m paymethod.Method) (int64, error) {
	res, err := repo.exec.ExecContext(ctx,
		`UPDATE payment_methods SET method_type = ?, provider = ?, api_key = ?, api_key_last4 = ?, is_active = ?
		WHERE id = ?`,
		m.MethodType, m.Provider, m.SealedKey, m.KeyLast4, m.IsActive, m.ID,
	)
	if err != nil {
		return 0, mapErr(err, "updating payment method")
	}
	return rowsAffected(res, "updating payment method")
}

func (repo paymethodRepository) SetActive(ctx context.Context, id int, active bool) (int64, error) {
	res, err := repo.exec.ExecContext(ctx, `UPDATE payment_methods SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return 0, mapErr(err, "updating payment method")
	}
	return rowsAffected(res, "updating payment method")
}
