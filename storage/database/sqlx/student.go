package sqlxrepos

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/student"
)

const studentColumns = "id, coach_id, name, email, phone, sport_or_subject, batch, enrollment_date, status, monthly_fee, created_at"

type studentRepository struct {
	exec core.DBExecutor
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(exec core.DBExecutor) *studentRepository {
	return &studentRepository{exec: exec}
}

func (repo studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	res, err := repo.exec.ExecContext(ctx,
		`INSERT INTO students (coach_id, name, email, phone, sport_or_subject, batch, enrollment_date, status, monthly_fee, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.CoachID, s.Name, s.Email, s.Phone, s.SportOrSubject, s.Batch,
		s.EnrollmentDate.UTC(), s.Status, s.MonthlyFee, s.CreatedAt.UTC(),
	)
	if err != nil {
		return student.Student{}, mapErr(err, "inserting student")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return student.Student{}, mapErr(err, "inserting student")
	}
	s.ID = int(id)
	return s, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, id int) (student.Student, error) {
	var s student.Student
	if err := sqlx.GetContext(ctx, repo.exec, &s, `SELECT `+studentColumns+` FROM students WHERE id = ?`, id); err != nil {
		return student.Student{}, trapNoRowsErr(err, student.ErrNotFound, "getting student")
	}
	return s, nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, filter student.QueryFilter) ([]student.Student, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.CoachID != 0 {
		where = append(where, "coach_id = ?")
		args = append(args, filter.CoachID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	q := `SELECT ` + studentColumns + ` FROM students`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY name ASC, id ASC`

	students := make([]student.Student, 0)
	if err := sqlx.SelectContext(ctx, repo.exec, &students, q, args...); err != nil {
		return nil, mapErr(err, "querying students")
	}
	return students, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, s student.Student) (int64, error) {
	res, err := repo.exec.ExecContext(ctx,
		`UPDATE students SET name = ?, email = ?, phone = ?, sport_or_subject = ?, batch = ?, status = ?, monthly_fee = ?
		WHERE id = ?`,
		s.Name, s.Email, s.Phone, s.SportOrSubject, s.Batch, s.Status, s.MonthlyFee, s.ID,
	)
	if err != nil {
		return 0, mapErr(err, "updating student")
	}
	return rowsAffected(res, "updating student")
}

// DeleteStudent relies on ON DELETE CASCADE to drop attendance and payments.
func (repo studentRepository) DeleteStudent(ctx context.Context, id int) (int64, error) {
	res, err := repo.exec.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		return 0, mapErr(err, "deleting student")
	}
	return rowsAffected(res, "deleting student")
}
