package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/attendance"
	"github.com/trezcool/coachdesk/core/coach"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/student"
	"github.com/trezcool/coachdesk/storage/database"
)

// Config returns a test configuration backed by an in-memory database.
func Config() *core.Config {
	return &core.Config{
		Env:       "TEST",
		Build:     "test",
		Debug:     true,
		TestMode:  true,
		AppName:   "Coachdesk",
		SecretKey: "test-secret-key",
		Database: core.DatabaseConfig{
			Path:        ":memory:",
			BusyTimeout: time.Second,
		},
	}
}

// PrepareDB opens a fresh, migrated in-memory database closed at the end of the test.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(Config())
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(context.Background(), db, nil); err != nil {
		t.Fatalf("database.Migrate() failed: %v", err)
	}
	return db
}

// NopLogger discards everything.
type NopLogger struct{}

var _ core.Logger = NopLogger{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}

func CreateCoach(t *testing.T, repo coach.Repository, name, email string) coach.Coach {
	t.Helper()
	c, err := repo.CreateCoach(context.Background(), coach.Coach{
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createCoach() failed: %v", err)
	}
	return c
}

func CreateStudent(t *testing.T, repo student.Repository, coachID int, name, status string, fee int64) student.Student {
	t.Helper()
	now := time.Now().UTC()
	s, err := repo.CreateStudent(context.Background(), student.Student{
		CoachID:        coachID,
		Name:           name,
		EnrollmentDate: now,
		Status:         status,
		MonthlyFee:     decimal.NewFromInt(fee),
		CreatedAt:      now,
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return s
}

func MarkAttendance(t *testing.T, repo attendance.Repository, studentID int, date, status string) attendance.Record {
	t.Helper()
	r, err := repo.UpsertRecord(context.Background(), attendance.Record{
		StudentID: studentID,
		Date:      date,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("markAttendance() failed: %v", err)
	}
	return r
}

// CreatePayment records a payment on date (YYYY-MM-DD), tagged with date's month.
func CreatePayment(t *testing.T, repo payment.Repository, studentID int, amount int64, date, status string) payment.Payment {
	t.Helper()
	paidAt, err := time.Parse(core.DateLayout, date)
	if err != nil {
		t.Fatalf("createPayment() bad date: %v", err)
	}
	p, err := repo.CreatePayment(context.Background(), payment.Payment{
		StudentID:     studentID,
		Amount:        decimal.NewFromInt(amount),
		PaymentDate:   paidAt,
		PaymentMethod: null.StringFrom(payment.MethodCash),
		Status:        status,
		Month:         core.FormatMonth(paidAt),
		TransactionID: payment.NewTransactionID(),
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createPayment() failed: %v", err)
	}
	return p
}
