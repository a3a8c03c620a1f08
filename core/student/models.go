package student

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/coachdesk/core"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var Statuses = []string{StatusActive, StatusInactive}

type Student struct {
	ID             int             `db:"id" json:"id"`
	CoachID        int             `db:"coach_id" json:"coach_id"`
	Name           string          `db:"name" json:"name"`
	Email          null.String     `db:"email" json:"email"`
	Phone          null.String     `db:"phone" json:"phone"`
	SportOrSubject null.String     `db:"sport_or_subject" json:"sport_or_subject"`
	Batch          null.String     `db:"batch" json:"batch"`
	EnrollmentDate time.Time       `db:"enrollment_date" json:"enrollment_date"` // UTC
	Status         string          `db:"status" json:"status"`
	MonthlyFee     decimal.Decimal `db:"monthly_fee" json:"monthly_fee"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"` // UTC
}

func (s Student) IsActive() bool { return s.Status == StatusActive }

// NewStudent contains information needed to enroll a new Student.
// MonthlyFee is kept as entered; a blank fee means 0.
type NewStudent struct {
	CoachID        int    `json:"coach_id" validate:"required,gt=0"`
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	SportOrSubject string `json:"sport_or_subject"`
	Batch          string `json:"batch"`
	MonthlyFee     string `json:"monthly_fee" validate:"omitempty,decimal"`
	Status         string `json:"status" validate:"oneof=active inactive"`

	fee decimal.Decimal
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	ns.SportOrSubject = core.CleanString(ns.SportOrSubject)
	ns.Batch = core.CleanString(ns.Batch)
	ns.MonthlyFee = core.CleanString(ns.MonthlyFee)
	ns.Status = cleanStatus(ns.Status)

	if err := core.ValidateStruct(ns); err != nil {
		return err
	}
	fee, err := parseFee(ns.MonthlyFee)
	if err != nil {
		return err
	}
	ns.fee = fee
	return nil
}

// UpdateStudent replaces every mutable field of a Student at once.
type UpdateStudent struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	SportOrSubject string `json:"sport_or_subject"`
	Batch          string `json:"batch"`
	MonthlyFee     string `json:"monthly_fee" validate:"omitempty,decimal"`
	Status         string `json:"status" validate:"oneof=active inactive"`

	fee decimal.Decimal
}

func (us *UpdateStudent) Validate() error {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Phone = core.CleanString(us.Phone)
	us.SportOrSubject = core.CleanString(us.SportOrSubject)
	us.Batch = core.CleanString(us.Batch)
	us.MonthlyFee = core.CleanString(us.MonthlyFee)
	us.Status = cleanStatus(us.Status)

	if err := core.ValidateStruct(us); err != nil {
		return err
	}
	fee, err := parseFee(us.MonthlyFee)
	if err != nil {
		return err
	}
	us.fee = fee
	return nil
}

// Patch returns the cache patch matching this (validated) update.
func (us *UpdateStudent) Patch() Patch {
	email := core.NullString(us.Email)
	phone := core.NullString(us.Phone)
	subject := core.NullString(us.SportOrSubject)
	batch := core.NullString(us.Batch)
	return Patch{
		Name:           &us.Name,
		Email:          &email,
		Phone:          &phone,
		SportOrSubject: &subject,
		Batch:          &batch,
		MonthlyFee:     &us.fee,
		Status:         &us.Status,
	}
}

// Patch holds partial changes to merge onto a cached Student; nil fields are left untouched.
type Patch struct {
	Name           *string
	Email          *null.String
	Phone          *null.String
	SportOrSubject *null.String
	Batch          *null.String
	MonthlyFee     *decimal.Decimal
	Status         *string
}

func (p Patch) Apply(s *Student) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.SportOrSubject != nil {
		s.SportOrSubject = *p.SportOrSubject
	}
	if p.Batch != nil {
		s.Batch = *p.Batch
	}
	if p.MonthlyFee != nil {
		s.MonthlyFee = *p.MonthlyFee
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}

type QueryFilter struct {
	CoachID int
	Status  string
}

// blank status defaults to active; anything else is left for validation to reject.
func cleanStatus(status string) string {
	status = core.CleanString(status, true /* lower */)
	if status == "" {
		return StatusActive
	}
	return status
}

func parseFee(s string) (decimal.Decimal, error) {
	fee, err := core.ParseAmount(s, decimal.Zero)
	if err != nil {
		return decimal.Zero, core.NewAmountError("monthly_fee", err)
	}
	if fee.IsNegative() {
		return decimal.Zero, core.NewValidationError(nil, core.FieldError{Field: "monthly_fee", Error: "monthly_fee cannot be negative"})
	}
	return fee, nil
}
