package sqlxrepos_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/attendance"
	"github.com/trezcool/coachdesk/core/student"
	sqlxrepos "github.com/trezcool/coachdesk/storage/database/sqlx"
	"github.com/trezcool/coachdesk/tests"
)

func TestAttendanceService_Mark(t *testing.T) {
	db := testutil.PrepareDB(t)
	c := testutil.CreateCoach(t, sqlxrepos.NewCoachRepository(db), "Ravi", "ravi@test.in")
	asha := testutil.CreateStudent(t, sqlxrepos.NewStudentRepository(db), c.ID, "Asha", student.StatusActive, 1500)
	svc := attendance.NewService(sqlxrepos.NewAttendanceRepository(db))
	ctx := context.Background()

	tests := []struct {
		name       string
		ma         attendance.MarkAttendance
		wantStatus string
		wantErr    error
	}{
		{name: "blank status is present", ma: attendance.MarkAttendance{StudentID: asha.ID, Date: "2024-03-02"}, wantStatus: attendance.StatusPresent},
		{name: "absent", ma: attendance.MarkAttendance{StudentID: asha.ID, Date: "2024-03-03", Status: "ABSENT", Notes: "sick"}, wantStatus: attendance.StatusAbsent},
		{name: "bad date", ma: attendance.MarkAttendance{StudentID: asha.ID, Date: "03/04/2024"}, wantErr: core.ErrInvalidInput},
		{name: "bad status", ma: attendance.MarkAttendance{StudentID: asha.ID, Date: "2024-03-04", Status: "late"}, wantErr: core.ErrInvalidInput},
		{name: "unknown student", ma: attendance.MarkAttendance{StudentID: asha.ID + 100, Date: "2024-03-04"}, wantErr: core.ErrConstraintViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := svc.Mark(ctx, tt.ma)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("svc.Mark() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, r.ID)
			assert.Equal(t, tt.wantStatus, r.Status)
			assert.Equal(t, tt.ma.Date, r.Date)
		})
	}
}

// Marking the same day twice keeps one record holding the last status.
func TestAttendanceService_MarkTwice(t *testing.T) {
	db := testutil.PrepareDB(t)
	c := testutil.CreateCoach(t, sqlxrepos.NewCoachRepository(db), "Ravi", "ravi@test.in")
	asha := testutil.CreateStudent(t, sqlxrepos.NewStudentRepository(db), c.ID, "Asha", student.StatusActive, 1500)
	svc := attendance.NewService(sqlxrepos.NewAttendanceRepository(db))
	ctx := context.Background()

	first, err := svc.Mark(ctx, attendance.MarkAttendance{StudentID: asha.ID, Date: "2024-03-01", Status: "present", Notes: "on time"})
	require.NoError(t, err)
	second, err := svc.Mark(ctx, attendance.MarkAttendance{StudentID: asha.ID, Date: "2024-03-01", Status: "absent"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	records, err := svc.ListByStudent(ctx, asha.ID, "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusAbsent, records[0].Status)
	assert.False(t, records[0].Notes.Valid)
}

func TestAttendanceService_ListByStudent(t *testing.T) {
	db := testutil.PrepareDB(t)
	c := testutil.CreateCoach(t, sqlxrepos.NewCoachRepository(db), "Ravi", "ravi@test.in")
	asha := testutil.CreateStudent(t, sqlxrepos.NewStudentRepository(db), c.ID, "Asha", student.StatusActive, 1500)
	repo := sqlxrepos.NewAttendanceRepository(db)
	svc := attendance.NewService(repo)
	ctx := context.Background()

	for _, date := range []string{"2024-02-29", "2024-03-01", "2024-03-15", "2024-03-31", "2024-04-01"} {
		testutil.MarkAttendance(t, repo, asha.ID, date, attendance.StatusPresent)
	}

	records, err := svc.ListByStudent(ctx, asha.ID, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	dates := make([]string, 0, len(records))
	for _, r := range records {
		dates = append(dates, r.Date)
	}
	assert.Equal(t, []string{"2024-03-31", "2024-03-15", "2024-03-01"}, dates)

	_, err = svc.ListByStudent(ctx, asha.ID, "", "2024-03-31")
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
	assert.Contains(t, core.FieldErrors(err), "start_date")
}

func TestAttendanceService_ListByDate(t *testing.T) {
	db := testutil.PrepareDB(t)
	coachRepo := sqlxrepos.NewCoachRepository(db)
	studentRepo := sqlxrepos.NewStudentRepository(db)
	repo := sqlxrepos.NewAttendanceRepository(db)
	svc := attendance.NewService(repo)
	ctx := context.Background()

	c := testutil.CreateCoach(t, coachRepo, "Ravi", "ravi@test.in")
	other := testutil.CreateCoach(t, coachRepo, "Meera", "meera@test.in")
	zara := testutil.CreateStudent(t, studentRepo, c.ID, "Zara", student.StatusActive, 1000)
	asha := testutil.CreateStudent(t, studentRepo, c.ID, "Asha", student.StatusActive, 1000)
	testutil.CreateStudent(t, studentRepo, c.ID, "Mohan", student.StatusActive, 1000) // unmarked
	aaron := testutil.CreateStudent(t, studentRepo, other.ID, "Aaron", student.StatusActive, 1000)

	testutil.MarkAttendance(t, repo, zara.ID, "2024-03-01", attendance.StatusAbsent)
	testutil.MarkAttendance(t, repo, asha.ID, "2024-03-01", attendance.StatusPresent)
	testutil.MarkAttendance(t, repo, asha.ID, "2024-03-02", attendance.StatusPresent)
	testutil.MarkAttendance(t, repo, aaron.ID, "2024-03-01", attendance.StatusPresent)

	records, err := svc.ListByDate(ctx, c.ID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Asha", records[0].StudentName)
	assert.Equal(t, attendance.StatusPresent, records[0].Status)
	assert.Equal(t, "Zara", records[1].StudentName)
	assert.Equal(t, attendance.StatusAbsent, records[1].Status)

	_, err = svc.ListByDate(ctx, c.ID, "yesterday")
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestAttendanceService_Summarize(t *testing.T) {
	db := testutil.PrepareDB(t)
	c := testutil.CreateCoach(t, sqlxrepos.NewCoachRepository(db), "Ravi", "ravi@test.in")
	asha := testutil.CreateStudent(t, sqlxrepos.NewStudentRepository(db), c.ID, "Asha", student.StatusActive, 1500)
	repo := sqlxrepos.NewAttendanceRepository(db)
	svc := attendance.NewService(repo)
	ctx := context.Background()

	testutil.MarkAttendance(t, repo, asha.ID, "2024-02-29", attendance.StatusAbsent)
	testutil.MarkAttendance(t, repo, asha.ID, "2024-03-01", attendance.StatusPresent)
	testutil.MarkAttendance(t, repo, asha.ID, "2024-03-02", attendance.StatusPresent)
	testutil.MarkAttendance(t, repo, asha.ID, "2024-03-31", attendance.StatusAbsent)

	tests := []struct {
		name        string
		month       string
		wantPresent int
		wantAbsent  int
		wantErr     bool
	}{
		{name: "march", month: "2024-03", wantPresent: 2, wantAbsent: 1},
		{name: "february (leap)", month: "2024-02", wantPresent: 0, wantAbsent: 1},
		{name: "empty month", month: "2023-01", wantPresent: 0, wantAbsent: 0},
		{name: "bad month", month: "March", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := svc.Summarize(ctx, asha.ID, tt.month)
			if (err != nil) != tt.wantErr {
				t.Fatalf("svc.Summarize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			assert.Contains(t, summary, attendance.StatusPresent)
			assert.Contains(t, summary, attendance.StatusAbsent)
			assert.Equal(t, tt.wantPresent, summary.Present())
			assert.Equal(t, tt.wantAbsent, summary.Absent())
			assert.Equal(t, tt.wantPresent+tt.wantAbsent, summary.Total())
		})
	}
}
