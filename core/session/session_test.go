package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/attendance"
	"github.com/trezcool/coachdesk/core/coach"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/report"
	"github.com/trezcool/coachdesk/core/session"
	"github.com/trezcool/coachdesk/core/state"
	"github.com/trezcool/coachdesk/core/student"
	sqlxrepos "github.com/trezcool/coachdesk/storage/database/sqlx"
	"github.com/trezcool/coachdesk/tests"
)

func setup(t *testing.T, defaultCoachID int) *session.Session {
	db := testutil.PrepareDB(t)
	students := student.NewService(sqlxrepos.NewStudentRepository(db))
	att := attendance.NewService(sqlxrepos.NewAttendanceRepository(db))
	payments := payment.NewService(sqlxrepos.NewPaymentRepository(db))
	deps := session.Deps{
		Coaches:    coach.NewService(sqlxrepos.NewCoachRepository(db)),
		Students:   students,
		Attendance: att,
		Payments:   payments,
		Reports:    report.NewService(students, att, payments),
	}
	return session.New(deps, state.New(), testutil.NopLogger{}, defaultCoachID)
}

func TestSession_SignIn(t *testing.T) {
	ctx := context.Background()
	sess := setup(t, 0)

	_, err := sess.LoadStudents(ctx)
	assert.Equal(t, session.ErrNotSignedIn, err)

	ravi, err := sess.Register(ctx, coach.NewCoach{Name: "Ravi", Email: "ravi@test.in"})
	require.NoError(t, err)
	c, ok := sess.Store().Coach()
	require.True(t, ok)
	assert.Equal(t, ravi.ID, c.ID)

	_, err = sess.Register(ctx, coach.NewCoach{Name: "Ravi", Email: "ravi@test.in"})
	assert.True(t, errors.Is(err, core.ErrConstraintViolation))

	sess.Logout()
	_, ok = sess.Store().Coach()
	assert.False(t, ok)

	// any password works; only the email is looked up
	c, err = sess.Login(ctx, "RAVI@test.in")
	require.NoError(t, err)
	assert.Equal(t, ravi.ID, c.ID)

	_, err = sess.Login(ctx, "ghost@test.in")
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestSession_LoginFallsBackToDefaultCoach(t *testing.T) {
	ctx := context.Background()
	sess := setup(t, 1)

	ravi, err := sess.Register(ctx, coach.NewCoach{Name: "Ravi", Email: "ravi@test.in"})
	require.NoError(t, err)
	require.Equal(t, 1, ravi.ID)
	sess.Logout()

	c, err := sess.Login(ctx, "someone@else.in")
	require.NoError(t, err)
	assert.Equal(t, ravi.ID, c.ID)
}

func TestSession_Students(t *testing.T) {
	ctx := context.Background()
	sess := setup(t, 0)
	_, err := sess.Register(ctx, coach.NewCoach{Name: "Ravi", Email: "ravi@test.in"})
	require.NoError(t, err)

	zara, err := sess.AddStudent(ctx, student.NewStudent{Name: "Zara", MonthlyFee: "1000"})
	require.NoError(t, err)
	asha, err := sess.AddStudent(ctx, student.NewStudent{Name: "Asha", MonthlyFee: "1500"})
	require.NoError(t, err)
	assert.Len(t, sess.Store().Students(), 2)

	_, err = sess.AddStudent(ctx, student.NewStudent{Name: "Bad", MonthlyFee: "x"})
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
	assert.Len(t, sess.Store().Students(), 2)

	students, err := sess.LoadStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, asha.ID, students[0].ID)
	assert.Equal(t, zara.ID, students[1].ID)

	require.NoError(t, sess.UpdateStudent(ctx, zara.ID, student.UpdateStudent{Name: "Zara B", MonthlyFee: "1100", Status: "inactive"}))
	cached, ok := sess.Store().Student(zara.ID)
	require.True(t, ok)
	assert.Equal(t, "Zara B", cached.Name)
	assert.Equal(t, student.StatusInactive, cached.Status)
	assert.True(t, decimal.NewFromInt(1100).Equal(cached.MonthlyFee))

	require.NoError(t, sess.DeleteStudent(ctx, zara.ID))
	_, ok = sess.Store().Student(zara.ID)
	assert.False(t, ok)
	students, err = sess.LoadStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestSession_Attendance(t *testing.T) {
	ctx := context.Background()
	sess := setup(t, 0)
	_, err := sess.Register(ctx, coach.NewCoach{Name: "Ravi", Email: "ravi@test.in"})
	require.NoError(t, err)
	asha, err := sess.AddStudent(ctx, student.NewStudent{Name: "Asha"})
	require.NoError(t, err)
	bilal, err := sess.AddStudent(ctx, student.NewStudent{Name: "Bilal"})
	require.NoError(t, err)
	chen, err := sess.AddStudent(ctx, student.NewStudent{Name: "Chen"})
	require.NoError(t, err)
	_, err = sess.LoadStudents(ctx)
	require.NoError(t, err)

	saved, err := sess.SaveAttendance(ctx, "2024-03-01", map[int]string{asha.ID: "present", bilal.ID: "absent"})
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	// the batch stops at the first failure, keeping what was saved before it
	saved, err = sess.SaveAttendance(ctx, "2024-03-02", map[int]string{asha.ID: "present", bilal.ID: "late", chen.ID: "present"})
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
	assert.Equal(t, 1, saved)

	daily, err := sess.LoadAttendance(ctx, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "Asha", daily[0].StudentName)
	assert.Len(t, sess.Store().Attendance(), 2)

	daily, err = sess.LoadAttendance(ctx, "2024-03-02")
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, asha.ID, daily[0].StudentID)
}

func TestSession_PaymentsAndDashboard(t *testing.T) {
	ctx := context.Background()
	sess := setup(t, 0)
	_, err := sess.Register(ctx, coach.NewCoach{Name: "Ravi", Email: "ravi@test.in"})
	require.NoError(t, err)
	asha, err := sess.AddStudent(ctx, student.NewStudent{Name: "Asha", MonthlyFee: "1500"})
	require.NoError(t, err)
	_, err = sess.AddStudent(ctx, student.NewStudent{Name: "Bilal", MonthlyFee: "1000"})
	require.NoError(t, err)

	paid, err := sess.RecordPayment(ctx, payment.NewPayment{StudentID: asha.ID, Amount: "1500", PaymentDate: "2024-03-05"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", paid.StudentName)
	pending, err := sess.RecordPayment(ctx, payment.NewPayment{StudentID: asha.ID, Amount: "200", PaymentDate: "2024-03-06", Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, sess.Store().Payments(), 2)

	_, err = sess.SaveAttendance(ctx, "2024-03-15", map[int]string{asha.ID: "present"})
	require.NoError(t, err)

	today := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	d, err := sess.Dashboard(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 2, d.ActiveStudents)
	assert.True(t, decimal.NewFromInt(2500).Equal(d.PotentialRevenue))
	assert.True(t, decimal.NewFromInt(1500).Equal(d.MonthlyRevenue))
	assert.Equal(t, 1, d.PendingCount)
	assert.Equal(t, 1, d.PresentToday)

	require.NoError(t, sess.SetPaymentStatus(ctx, pending.ID, "Completed"))
	for _, p := range sess.Store().Payments() {
		assert.Equal(t, payment.StatusCompleted, p.Status)
	}
	assert.Error(t, sess.SetPaymentStatus(ctx, pending.ID, "refunded"))

	d, err = sess.Dashboard(ctx, today)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1700).Equal(d.MonthlyRevenue))
	assert.Zero(t, d.PendingCount)

	payments, err := sess.LoadPayments(ctx)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, pending.ID, payments[0].ID)
}

func TestSession_SaveAttendanceRejectsStudentsOffRoster(t *testing.T) {
	ctx := context.Background()
	sess := setup(t, 0)
	_, err := sess.Register(ctx, coach.NewCoach{Name: "Ravi", Email: "ravi@test.in"})
	require.NoError(t, err)
	asha, err := sess.AddStudent(ctx, student.NewStudent{Name: "Asha"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		marks map[int]string
		want  string
	}{
		{name: "only unknown", marks: map[int]string{999: "present"}, want: "not on the loaded roster: 999"},
		{name: "mixed", marks: map[int]string{asha.ID: "present", 1001: "absent", 1000: "present"}, want: "not on the loaded roster: 1000, 1001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved, err := sess.SaveAttendance(ctx, "2024-03-01", tt.marks)
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Fatalf("sess.SaveAttendance() error = %v, wantErr %v", err, core.ErrInvalidInput)
			}
			assert.Zero(t, saved)
			assert.Equal(t, tt.want, core.FieldErrors(err)["student_id"])
		})
	}

	daily, err := sess.LoadAttendance(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, daily)
}

func TestSession_KeepsToSignedInCoach(t *testing.T) {
	ctx := context.Background()
	sess := setup(t, 0)
	_, err := sess.Register(ctx, coach.NewCoach{Name: "Ravi", Email: "ravi@test.in"})
	require.NoError(t, err)
	asha, err := sess.AddStudent(ctx, student.NewStudent{Name: "Asha", MonthlyFee: "1500"})
	require.NoError(t, err)
	paid, err := sess.RecordPayment(ctx, payment.NewPayment{StudentID: asha.ID, Amount: "1500", Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, asha.CoachID, paid.CoachID)

	sess.Logout()
	_, err = sess.Register(ctx, coach.NewCoach{Name: "Meera", Email: "meera@test.in"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		call      func() error
		wantField string
	}{
		{name: "update student", call: func() error {
			return sess.UpdateStudent(ctx, asha.ID, student.UpdateStudent{Name: "Taken"})
		}, wantField: "id"},
		{name: "delete student", call: func() error { return sess.DeleteStudent(ctx, asha.ID) }, wantField: "id"},
		{name: "set payment status", call: func() error { return sess.SetPaymentStatus(ctx, paid.ID, "completed") }, wantField: "id"},
		{name: "record payment", call: func() error {
			_, err := sess.RecordPayment(ctx, payment.NewPayment{StudentID: asha.ID, Amount: "10"})
			return err
		}, wantField: "student_id"},
		{name: "unknown payment", call: func() error { return sess.SetPaymentStatus(ctx, paid.ID+100, "completed") }, wantField: "id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Fatalf("%s error = %v, wantErr %v", tt.name, err, core.ErrInvalidInput)
			}
			assert.Contains(t, core.FieldErrors(err), tt.wantField)
		})
	}

	sess.Logout()
	_, err = sess.Login(ctx, "ravi@test.in")
	require.NoError(t, err)
	students, err := sess.LoadStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Asha", students[0].Name)
	payments, err := sess.LoadPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, payment.StatusPending, payments[0].Status)
	assert.Equal(t, "Asha", payments[0].StudentName)
}
