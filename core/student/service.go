package student

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		CreateStudent(ctx context.Context, s Student) (Student, error)
		// GetStudent returns ErrNotFound when there is no Student with the given id.
		GetStudent(ctx context.Context, id int) (Student, error)
		// QueryStudents returns the students matching filter, ordered by name.
		QueryStudents(ctx context.Context, filter QueryFilter) ([]Student, error)
		UpdateStudent(ctx context.Context, s Student) (int64, error)
		// DeleteStudent also removes the student's attendance records and payments.
		DeleteStudent(ctx context.Context, id int) (int64, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}
	now := time.Now().UTC()
	s := Student{
		CoachID:        ns.CoachID,
		Name:           ns.Name,
		Email:          core.NullString(ns.Email),
		Phone:          core.NullString(ns.Phone),
		SportOrSubject: core.NullString(ns.SportOrSubject),
		Batch:          core.NullString(ns.Batch),
		EnrollmentDate: now,
		Status:         ns.Status,
		MonthlyFee:     ns.fee,
		CreatedAt:      now,
	}
	s, err := svc.repo.CreateStudent(ctx, s)
	if err != nil {
		return Student{}, errors.Wrap(err, "creating student")
	}
	return s, nil
}

// GetByID returns the Student with the given id; found is false when there is none.
func (svc *Service) GetByID(ctx context.Context, id int) (s Student, found bool, err error) {
	s, err = svc.repo.GetStudent(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Student{}, false, nil
		}
		return Student{}, false, errors.Wrap(err, "getting student")
	}
	return s, true, nil
}

// ListByCoach returns all of a coach's students, ordered by name.
func (svc *Service) ListByCoach(ctx context.Context, coachID int) ([]Student, error) {
	students, err := svc.repo.QueryStudents(ctx, QueryFilter{CoachID: coachID})
	if err != nil {
		return nil, errors.Wrap(err, "listing students")
	}
	return students, nil
}

// ListActiveByCoach returns the coach's attendance-eligible roster.
func (svc *Service) ListActiveByCoach(ctx context.Context, coachID int) ([]Student, error) {
	students, err := svc.repo.QueryStudents(ctx, QueryFilter{CoachID: coachID, Status: StatusActive})
	if err != nil {
		return nil, errors.Wrap(err, "listing active students")
	}
	return students, nil
}

// Update replaces all mutable fields of a Student and returns the number of affected rows.
// `us` is validated in place, so on success it can produce the matching cache Patch.
func (svc *Service) Update(ctx context.Context, id int, us *UpdateStudent) (int64, error) {
	if err := us.Validate(); err != nil {
		return 0, err
	}
	s := Student{
		ID:             id,
		Name:           us.Name,
		Email:          core.NullString(us.Email),
		Phone:          core.NullString(us.Phone),
		SportOrSubject: core.NullString(us.SportOrSubject),
		Batch:          core.NullString(us.Batch),
		Status:         us.Status,
		MonthlyFee:     us.fee,
	}
	n, err := svc.repo.UpdateStudent(ctx, s)
	if err != nil {
		return 0, errors.Wrap(err, "updating student")
	}
	return n, nil
}

// Delete removes a Student along with its attendance and payment history.
func (svc *Service) Delete(ctx context.Context, id int) (int64, error) {
	n, err := svc.repo.DeleteStudent(ctx, id)
	if err != nil {
		return 0, errors.Wrap(err, "deleting student")
	}
	return n, nil
}
