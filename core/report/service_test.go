package report

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/coachdesk/core/attendance"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/student"
)

type fakeStudents struct {
	students []student.Student
	err      error
}

func (f fakeStudents) ListByCoach(context.Context, int) ([]student.Student, error) {
	return f.students, f.err
}

type fakeAttendance struct {
	byDate map[string][]attendance.DailyRecord
}

func (f fakeAttendance) ListByDate(_ context.Context, _ int, date string) ([]attendance.DailyRecord, error) {
	return f.byDate[date], nil
}

type fakePayments struct {
	byMonth map[string]payment.Summary
	pending []payment.StudentPayment
}

func (f fakePayments) Summarize(_ context.Context, _ int, month string) (payment.Summary, error) {
	return f.byMonth[month], nil
}

func (f fakePayments) ListPending(context.Context, int) ([]payment.StudentPayment, error) {
	return f.pending, nil
}

func dailyRecord(status string) attendance.DailyRecord {
	return attendance.DailyRecord{Record: attendance.Record{Status: status}}
}

func TestService_Dashboard(t *testing.T) {
	students := fakeStudents{students: []student.Student{
		{ID: 1, Status: student.StatusActive, MonthlyFee: decimal.NewFromInt(1500)},
		{ID: 2, Status: student.StatusActive, MonthlyFee: decimal.NewFromInt(1000)},
		{ID: 3, Status: student.StatusInactive, MonthlyFee: decimal.NewFromInt(900)},
	}}
	att := fakeAttendance{byDate: map[string][]attendance.DailyRecord{
		"2024-03-15": {dailyRecord(attendance.StatusPresent), dailyRecord(attendance.StatusAbsent), dailyRecord(attendance.StatusPresent)},
	}}
	payments := fakePayments{
		byMonth: map[string]payment.Summary{"2024-03": {Total: decimal.NewFromInt(1500), Count: 1}},
		pending: []payment.StudentPayment{
			{Payment: payment.Payment{Amount: decimal.NewFromInt(400)}},
			{Payment: payment.Payment{Amount: decimal.NewFromInt(600)}},
		},
	}
	svc := NewService(students, att, payments)

	today := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	d, err := svc.Dashboard(context.Background(), 1, today)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", d.Date)
	assert.Equal(t, "2024-03", d.Month)
	assert.Equal(t, 3, d.TotalStudents)
	assert.Equal(t, 2, d.ActiveStudents)
	assert.True(t, decimal.NewFromInt(2500).Equal(d.PotentialRevenue))
	assert.True(t, decimal.NewFromInt(1500).Equal(d.MonthlyRevenue))
	assert.True(t, decimal.NewFromInt(1000).Equal(d.Outstanding()))
	assert.Equal(t, 1, d.PaymentsCount)
	assert.Equal(t, 2, d.PresentToday)
	assert.Equal(t, 1, d.AbsentToday)
	assert.Equal(t, 2, d.PendingCount)
	assert.True(t, decimal.NewFromInt(1000).Equal(d.PendingTotal))

	// a quiet day in another month
	d, err = svc.Dashboard(context.Background(), 1, today.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Zero(t, d.PresentToday)
	assert.True(t, d.MonthlyRevenue.IsZero())
	assert.True(t, decimal.NewFromInt(2500).Equal(d.Outstanding()))
}

func TestService_DashboardError(t *testing.T) {
	errBoom := errors.New("boom")
	svc := NewService(fakeStudents{err: errBoom}, fakeAttendance{}, fakePayments{})

	_, err := svc.Dashboard(context.Background(), 1, time.Now())
	if errors.Cause(err) != errBoom {
		t.Errorf("svc.Dashboard() error = %v, wantErr %v", err, errBoom)
	}
}
