package attendance

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core"
)

type (
	Repository interface {
		// UpsertRecord inserts the record or, when one exists for the same (student, date),
		// replaces its status and notes. It returns the stored record.
		UpsertRecord(ctx context.Context, r Record) (Record, error)
		// QueryByStudent returns records in [start, end], newest first.
		QueryByStudent(ctx context.Context, studentID int, rng DateRange) ([]Record, error)
		// QueryByDate returns the records of the coach's students on date, ordered by student name.
		QueryByDate(ctx context.Context, coachID int, date string) ([]DailyRecord, error)
		// CountByStatus groups the student's records in rng by status.
		CountByStatus(ctx context.Context, studentID int, rng DateRange) (map[string]int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Mark records attendance for a student on a day; marking the same day again overwrites it.
func (svc *Service) Mark(ctx context.Context, ma MarkAttendance) (Record, error) {
	if err := ma.Validate(); err != nil {
		return Record{}, err
	}
	r := Record{
		StudentID: ma.StudentID,
		Date:      ma.Date,
		Status:    ma.Status,
		Notes:     core.NullString(ma.Notes),
		CreatedAt: time.Now().UTC(),
	}
	r, err := svc.repo.UpsertRecord(ctx, r)
	if err != nil {
		return Record{}, errors.Wrap(err, "marking attendance")
	}
	return r, nil
}

// ListByStudent returns a student's records between start and end (inclusive), newest first.
func (svc *Service) ListByStudent(ctx context.Context, studentID int, start, end string) ([]Record, error) {
	rng := DateRange{Start: core.CleanString(start), End: core.CleanString(end)}
	if err := core.ValidateStruct(rng); err != nil {
		return nil, err
	}
	records, err := svc.repo.QueryByStudent(ctx, studentID, rng)
	if err != nil {
		return nil, errors.Wrap(err, "listing attendance")
	}
	return records, nil
}

// ListByDate returns the attendance marked on date for the coach's students.
// Students without a record that day are not part of the result.
func (svc *Service) ListByDate(ctx context.Context, coachID int, date string) ([]DailyRecord, error) {
	date = core.CleanString(date)
	if _, err := time.Parse(core.DateLayout, date); err != nil {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "date", Error: "date must be a date formatted as YYYY-MM-DD"})
	}
	records, err := svc.repo.QueryByDate(ctx, coachID, date)
	if err != nil {
		return nil, errors.Wrap(err, "listing attendance by date")
	}
	return records, nil
}

// Summarize counts a student's records per status for month (YYYY-MM).
// Present and absent are always part of the summary, possibly as 0.
func (svc *Service) Summarize(ctx context.Context, studentID int, month string) (Summary, error) {
	rng, err := MonthRange(month)
	if err != nil {
		return nil, err
	}
	counts, err := svc.repo.CountByStatus(ctx, studentID, rng)
	if err != nil {
		return nil, errors.Wrap(err, "summarizing attendance")
	}
	summary := Summary{StatusPresent: 0, StatusAbsent: 0}
	for status, n := range counts {
		summary[status] = n
	}
	return summary, nil
}
