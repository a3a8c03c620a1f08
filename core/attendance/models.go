package attendance

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/coachdesk/core"
)

// Statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// Record is a student's attendance for one calendar day.
type Record struct {
	ID        int         `db:"id" json:"id"`
	StudentID int         `db:"student_id" json:"student_id"`
	Date      string      `db:"date" json:"date"` // YYYY-MM-DD
	Status    string      `db:"status" json:"status"`
	Notes     null.String `db:"notes" json:"notes"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"` // UTC
}

func (r Record) IsPresent() bool { return r.Status == StatusPresent }

// DailyRecord is a Record joined with its student's name.
type DailyRecord struct {
	Record
	StudentName string `db:"student_name" json:"student_name"`
}

// MarkAttendance marks a student present or absent on a day.
type MarkAttendance struct {
	StudentID int    `json:"student_id" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,isodate"`
	Status    string `json:"status" validate:"oneof=present absent"`
	Notes     string `json:"notes"`
}

func (ma *MarkAttendance) Validate() error {
	ma.Date = core.CleanString(ma.Date)
	ma.Status = core.CleanString(ma.Status, true /* lower */)
	if ma.Status == "" {
		ma.Status = StatusPresent
	}
	ma.Notes = core.CleanString(ma.Notes)
	return core.ValidateStruct(ma)
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start string `json:"start_date" validate:"required,isodate"`
	End   string `json:"end_date" validate:"required,isodate"`
}

// MonthRange returns the range covering every day of `month` (YYYY-MM).
func MonthRange(month string) (DateRange, error) {
	start, err := time.Parse(core.MonthLayout, core.CleanString(month))
	if err != nil {
		return DateRange{}, core.NewValidationError(nil, core.FieldError{Field: "month", Error: "month must be a month formatted as YYYY-MM"})
	}
	end := start.AddDate(0, 1, -1)
	return DateRange{Start: core.FormatDate(start), End: core.FormatDate(end)}, nil
}

// Summary maps an attendance status to its number of records.
type Summary map[string]int

func (s Summary) Present() int { return s[StatusPresent] }
func (s Summary) Absent() int  { return s[StatusAbsent] }

func (s Summary) Total() int {
	var total int
	for _, n := range s {
		total += n
	}
	return total
}
