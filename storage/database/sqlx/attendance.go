package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/attendance"
)

const attendanceColumns = "id, student_id, date, status, notes, created_at"

type attendanceRepository struct {
	exec core.DBExecutor
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(exec core.DBExecutor) *attendanceRepository {
	return &attendanceRepository{exec: exec}
}

func (repo attendanceRepository) UpsertRecord(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	_, err := repo.exec.ExecContext(ctx,
		`INSERT INTO attendance (student_id, date, status, notes, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (student_id, date) DO UPDATE SET status = excluded.status, notes = excluded.notes`,
		r.StudentID, r.Date, r.Status, r.Notes, r.CreatedAt.UTC(),
	)
	if err != nil {
		return attendance.Record{}, mapErr(err, "upserting attendance")
	}

	var stored attendance.Record
	if err = sqlx.GetContext(ctx, repo.exec, &stored,
		`SELECT `+attendanceColumns+` FROM attendance WHERE student_id = ? AND date = ?`, r.StudentID, r.Date,
	); err != nil {
		return attendance.Record{}, mapErr(err, "reading upserted attendance")
	}
	return stored, nil
}

func (repo attendanceRepository) QueryByStudent(ctx context.Context, studentID int, rng attendance.DateRange) ([]attendance.Record, error) {
	records := make([]attendance.Record, 0)
	if err := sqlx.SelectContext(ctx, repo.exec, &records,
		`SELECT `+attendanceColumns+` FROM attendance
		WHERE student_id = ? AND date BETWEEN ? AND ?
		ORDER BY date DESC`,
		studentID, rng.Start, rng.End,
	); err != nil {
		return nil, mapErr(err, "querying attendance")
	}
	return records, nil
}

func (repo attendanceRepository) QueryByDate(ctx context.Context, coachID int, date string) ([]attendance.DailyRecord, error) {
	records := make([]attendance.DailyRecord, 0)
	if err := sqlx.SelectContext(ctx, repo.exec, &records,
		`SELECT a.id, a.student_id, a.date, a.status, a.notes, a.created_at, s.name AS student_name
		FROM attendance a
		JOIN students s ON s.id = a.student_id
		WHERE s.coach_id = ? AND a.date = ?
		ORDER BY s.name ASC, s.id ASC`,
		coachID, date,
	); err != nil {
		return nil, mapErr(err, "querying attendance by date")
	}
	return records, nil
}

func (repo attendanceRepository) CountByStatus(ctx context.Context, studentID int, rng attendance.DateRange) (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := sqlx.SelectContext(ctx, repo.exec, &rows,
		`SELECT status, COUNT(*) AS count FROM attendance
		WHERE student_id = ? AND date BETWEEN ? AND ?
		GROUP BY status`,
		studentID, rng.Start, rng.End,
	); err != nil {
		return nil, mapErr(err, "counting attendance")
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
