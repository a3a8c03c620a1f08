// Package state keeps an in-memory mirror of what the current session has loaded from the database.
package state

import (
	"sync"

	"github.com/trezcool/coachdesk/core/attendance"
	"github.com/trezcool/coachdesk/core/coach"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/student"
)

// Store is safe for concurrent use. It is never persisted.
type Store struct {
	mu sync.RWMutex

	coach           *coach.Coach
	students        []student.Student
	attendance      []attendance.Record
	payments        []payment.StudentPayment
	selectedMonth   string
	selectedStudent int
}

func New() *Store {
	return &Store{}
}

// SetCoach sets the signed-in coach; nil signs out.
func (s *Store) SetCoach(c *coach.Coach) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == nil {
		s.coach = nil
		return
	}
	cp := *c
	s.coach = &cp
}

// Coach returns the signed-in coach, if any.
func (s *Store) Coach() (coach.Coach, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.coach == nil {
		return coach.Coach{}, false
	}
	return *s.coach, true
}

func (s *Store) SetStudents(students []student.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = append([]student.Student(nil), students...)
}

func (s *Store) AddStudent(st student.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = append(s.students, st)
}

// UpdateStudent merges patch onto the cached student with the given id.
// It returns false when no such student is cached.
func (s *Store) UpdateStudent(id int, patch student.Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.students {
		if s.students[i].ID == id {
			patch.Apply(&s.students[i])
			return true
		}
	}
	return false
}

// RemoveStudent drops the student along with its cached attendance and payments.
func (s *Store) RemoveStudent(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students := s.students[:0]
	for _, st := range s.students {
		if st.ID != id {
			students = append(students, st)
		}
	}
	s.students = students

	records := s.attendance[:0]
	for _, r := range s.attendance {
		if r.StudentID != id {
			records = append(records, r)
		}
	}
	s.attendance = records

	payments := s.payments[:0]
	for _, p := range s.payments {
		if p.StudentID != id {
			payments = append(payments, p)
		}
	}
	s.payments = payments

	if s.selectedStudent == id {
		s.selectedStudent = 0
	}
}

func (s *Store) Students() []student.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]student.Student(nil), s.students...)
}

// Student returns the cached student with the given id.
func (s *Store) Student(id int) (student.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.ID == id {
			return st, true
		}
	}
	return student.Student{}, false
}

func (s *Store) SetAttendance(records []attendance.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendance = append([]attendance.Record(nil), records...)
}

// AddAttendanceRecord appends r, replacing any cached record of the same student on the same day.
func (s *Store) AddAttendanceRecord(r attendance.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.attendance {
		if s.attendance[i].StudentID == r.StudentID && s.attendance[i].Date == r.Date {
			s.attendance[i] = r
			return
		}
	}
	s.attendance = append(s.attendance, r)
}

func (s *Store) Attendance() []attendance.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]attendance.Record(nil), s.attendance...)
}

func (s *Store) SetPayments(payments []payment.StudentPayment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append([]payment.StudentPayment(nil), payments...)
}

func (s *Store) AddPayment(p payment.StudentPayment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, p)
}

// UpdatePayment merges patch onto the cached payment with the given id.
// It returns false when no such payment is cached.
func (s *Store) UpdatePayment(id int, patch payment.Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].ID == id {
			patch.Apply(&s.payments[i].Payment)
			return true
		}
	}
	return false
}

func (s *Store) Payments() []payment.StudentPayment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]payment.StudentPayment(nil), s.payments...)
}

func (s *Store) SetSelectedMonth(month string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedMonth = month
}

func (s *Store) SelectedMonth() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedMonth
}

// SetSelectedStudent sets the student the views are filtered on; 0 clears the filter.
func (s *Store) SetSelectedStudent(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedStudent = id
}

func (s *Store) SelectedStudent() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedStudent
}

// Reset forgets everything, e.g. on sign out.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coach = nil
	s.students = nil
	s.attendance = nil
	s.payments = nil
	s.selectedMonth = ""
	s.selectedStudent = 0
}
