package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/coach"
)

const coachColumns = "id, name, email, phone, specialization, business_name, created_at"

type coachRepository struct {
	exec core.DBExecutor
}

var _ coach.Repository = (*coachRepository)(nil) // interface compliance check

func NewCoachRepository(exec core.DBExecutor) *coachRepository {
	return &coachRepository{exec: exec}
}

func (repo coachRepository) CreateCoach(ctx context.Context, c coach.Coach) (coach.Coach, error) {
	res, err := repo.exec.ExecContext(ctx,
		`INSERT INTO coaches (name, email, phone, specialization, business_name, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, c.Email, c.Phone, c.Specialization, c.BusinessName, c.CreatedAt.UTC(),
	)
	if err != nil {
		return coach.Coach{}, mapErr(err, "inserting coach")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return coach.Coach{}, mapErr(err, "inserting coach")
	}
	c.ID = int(id)
	return c, nil
}

func (repo coachRepository) GetCoach(ctx context.Context, filter coach.GetFilter) (coach.Coach, error) {
	var c coach.Coach
	var err error
	switch {
	case filter.ID != 0:
		err = sqlx.GetContext(ctx, repo.exec, &c, `SELECT `+coachColumns+` FROM coaches WHERE id = ?`, filter.ID)
	case filter.Email != "":
		err = sqlx.GetContext(ctx, repo.exec, &c, `SELECT `+coachColumns+` FROM coaches WHERE email = ?`, filter.Email)
	default:
		return coach.Coach{}, coach.ErrNotFound
	}
	if err != nil {
		return coach.Coach{}, trapNoRowsErr(err, coach.ErrNotFound, "getting coach")
	}
	return c, nil
}
