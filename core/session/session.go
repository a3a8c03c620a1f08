// Package session is what the screens call: it runs the services and keeps the cache in sync with them.
package session

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/attendance"
	"github.com/trezcool/coachdesk/core/coach"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/report"
	"github.com/trezcool/coachdesk/core/state"
	"github.com/trezcool/coachdesk/core/student"
)

var ErrNotSignedIn = errors.New("no coach signed in")

type Deps struct {
	Coaches    *coach.Service
	Students   *student.Service
	Attendance *attendance.Service
	Payments   *payment.Service
	Reports    *report.Service
}

type Session struct {
	Deps
	store          *state.Store
	logger         core.Logger
	defaultCoachID int
}

func New(deps Deps, store *state.Store, logger core.Logger, defaultCoachID int) *Session {
	return &Session{Deps: deps, store: store, logger: logger, defaultCoachID: defaultCoachID}
}

func (s *Session) Store() *state.Store { return s.store }

func (s *Session) coachID() (int, error) {
	c, ok := s.store.Coach()
	if !ok {
		return 0, ErrNotSignedIn
	}
	return c.ID, nil
}

// ownStudent fails with a ValidationError on `field` unless student id belongs to the signed-in coach.
func (s *Session) ownStudent(ctx context.Context, id int, field string) (student.Student, error) {
	coachID, err := s.coachID()
	if err != nil {
		return student.Student{}, err
	}
	st, found, err := s.Students.GetByID(ctx, id)
	if err != nil {
		return student.Student{}, err
	}
	if !found || st.CoachID != coachID {
		return student.Student{}, core.NewValidationError(nil, core.FieldError{Field: field, Error: student.ErrNotFound.Error()})
	}
	return st, nil
}

// Register creates a coach account and signs it in.
func (s *Session) Register(ctx context.Context, nc coach.NewCoach) (coach.Coach, error) {
	c, err := s.Coaches.Create(ctx, nc)
	if err != nil {
		return coach.Coach{}, err
	}
	s.store.Reset()
	s.store.SetCoach(&c)
	s.logger.Info("coach registered", c)
	return c, nil
}

// Login signs in the coach with the given email, falling back to the configured default coach.
// Credentials are not checked.
func (s *Session) Login(ctx context.Context, email string) (coach.Coach, error) {
	c, found, err := s.Coaches.GetByEmail(ctx, email)
	if err != nil {
		return coach.Coach{}, err
	}
	if !found && s.defaultCoachID > 0 {
		c, found, err = s.Coaches.GetByID(ctx, s.defaultCoachID)
		if err != nil {
			return coach.Coach{}, err
		}
	}
	if !found {
		return coach.Coach{}, core.NewValidationError(nil, core.FieldError{Field: "email", Error: coach.ErrNotFound.Error()})
	}
	s.store.Reset()
	s.store.SetCoach(&c)
	s.logger.Info("coach signed in", c)
	return c, nil
}

func (s *Session) Logout() {
	s.store.Reset()
}

func (s *Session) LoadStudents(ctx context.Context) ([]student.Student, error) {
	coachID, err := s.coachID()
	if err != nil {
		return nil, err
	}
	students, err := s.Students.ListByCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}
	s.store.SetStudents(students)
	return students, nil
}

func (s *Session) AddStudent(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	coachID, err := s.coachID()
	if err != nil {
		return student.Student{}, err
	}
	ns.CoachID = coachID
	st, err := s.Students.Create(ctx, ns)
	if err != nil {
		return student.Student{}, err
	}
	s.store.AddStudent(st)
	return st, nil
}

func (s *Session) UpdateStudent(ctx context.Context, id int, us student.UpdateStudent) error {
	if _, err := s.ownStudent(ctx, id, "id"); err != nil {
		return err
	}
	if _, err := s.Students.Update(ctx, id, &us); err != nil {
		return err
	}
	s.store.UpdateStudent(id, us.Patch())
	return nil
}

func (s *Session) DeleteStudent(ctx context.Context, id int) error {
	if _, err := s.ownStudent(ctx, id, "id"); err != nil {
		return err
	}
	if _, err := s.Students.Delete(ctx, id); err != nil {
		return err
	}
	s.store.RemoveStudent(id)
	return nil
}

// LoadAttendance caches the attendance marked on date for the coach's students.
func (s *Session) LoadAttendance(ctx context.Context, date string) ([]attendance.DailyRecord, error) {
	coachID, err := s.coachID()
	if err != nil {
		return nil, err
	}
	daily, err := s.Attendance.ListByDate(ctx, coachID, date)
	if err != nil {
		return nil, err
	}
	records := make([]attendance.Record, len(daily))
	for i, d := range daily {
		records[i] = d.Record
	}
	s.store.SetAttendance(records)
	return daily, nil
}

// SaveAttendance marks every student in marks (student id -> status) on date, one at a time, in roster order.
// Marks for students missing from the loaded roster fail the whole batch before anything is written.
// Otherwise the first failure stops the batch; marks saved before it are kept.
func (s *Session) SaveAttendance(ctx context.Context, date string, marks map[int]string) (int, error) {
	c, ok := s.store.Coach()
	if !ok {
		return 0, ErrNotSignedIn
	}
	var unknown []int
	for id := range marks {
		if _, ok := s.store.Student(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Ints(unknown)
		ids := make([]string, len(unknown))
		for i, id := range unknown {
			ids[i] = fmt.Sprint(id)
		}
		return 0, core.NewValidationError(nil, core.FieldError{
			Field: "student_id",
			Error: "not on the loaded roster: " + strings.Join(ids, ", "),
		})
	}

	var saved int
	for _, st := range s.store.Students() {
		status, ok := marks[st.ID]
		if !ok {
			continue
		}
		r, err := s.Attendance.Mark(ctx, attendance.MarkAttendance{StudentID: st.ID, Date: date, Status: status})
		if err != nil {
			s.logger.Error("saving attendance failed", c, "student_id", st.ID, "date", date, "error", err)
			return saved, errors.Wrapf(err, "saving attendance of %s", st.Name)
		}
		s.store.AddAttendanceRecord(r)
		saved++
	}
	return saved, nil
}

func (s *Session) LoadPayments(ctx context.Context) ([]payment.StudentPayment, error) {
	coachID, err := s.coachID()
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.ListByCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}
	s.store.SetPayments(payments)
	return payments, nil
}

func (s *Session) RecordPayment(ctx context.Context, np payment.NewPayment) (payment.StudentPayment, error) {
	st, err := s.ownStudent(ctx, np.StudentID, "student_id")
	if err != nil {
		return payment.StudentPayment{}, err
	}
	p, err := s.Payments.Create(ctx, np)
	if err != nil {
		return payment.StudentPayment{}, err
	}
	sp := payment.StudentPayment{Payment: p, CoachID: st.CoachID, StudentName: st.Name}
	s.store.AddPayment(sp)
	return sp, nil
}

func (s *Session) SetPaymentStatus(ctx context.Context, id int, status string) error {
	coachID, err := s.coachID()
	if err != nil {
		return err
	}
	p, found, err := s.Payments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !found || p.CoachID != coachID {
		return core.NewValidationError(nil, core.FieldError{Field: "id", Error: payment.ErrNotFound.Error()})
	}
	if _, err := s.Payments.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	status = core.CleanString(status, true /* lower */)
	s.store.UpdatePayment(id, payment.Patch{Status: &status})
	return nil
}

func (s *Session) Dashboard(ctx context.Context, today time.Time) (report.Dashboard, error) {
	coachID, err := s.coachID()
	if err != nil {
		return report.Dashboard{}, err
	}
	return s.Reports.Dashboard(ctx, coachID, today)
}
