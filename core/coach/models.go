package coach

import (
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/coachdesk/core"
)

// Coach is the business owner every student and payment method belongs to.
type Coach struct {
	ID             int         `db:"id" json:"id"`
	Name           string      `db:"name" json:"name"`
	Email          string      `db:"email" json:"email"`
	Phone          null.String `db:"phone" json:"phone"`
	Specialization null.String `db:"specialization" json:"specialization"`
	BusinessName   null.String `db:"business_name" json:"business_name"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"` // UTC
}

// PersonID is the identifier reported to error trackers.
func (c Coach) PersonID() string { return strconv.Itoa(c.ID) }

// NewCoach contains information needed to register a new Coach.
type NewCoach struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	BusinessName   string `json:"business_name"`
}

func (nc *NewCoach) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Email = core.CleanString(nc.Email, true /* lower */)
	nc.Phone = core.CleanString(nc.Phone)
	nc.Specialization = core.CleanString(nc.Specialization)
	nc.BusinessName = core.CleanString(nc.BusinessName)
	return core.ValidateStruct(nc)
}

type GetFilter struct {
	ID    int
	Email string
}
