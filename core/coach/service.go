package coach

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core"
)

var ErrNotFound = errors.New("coach not found")

type (
	Repository interface {
		CreateCoach(ctx context.Context, c Coach) (Coach, error)
		// GetCoach returns ErrNotFound when no coach matches the filter.
		GetCoach(ctx context.Context, filter GetFilter) (Coach, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new Coach. A duplicate email fails with core.ErrConstraintViolation.
func (svc *Service) Create(ctx context.Context, nc NewCoach) (Coach, error) {
	if err := nc.Validate(); err != nil {
		return Coach{}, err
	}
	c := Coach{
		Name:           nc.Name,
		Email:          nc.Email,
		Phone:          core.NullString(nc.Phone),
		Specialization: core.NullString(nc.Specialization),
		BusinessName:   core.NullString(nc.BusinessName),
		CreatedAt:      time.Now().UTC(),
	}
	c, err := svc.repo.CreateCoach(ctx, c)
	if err != nil {
		return Coach{}, errors.Wrap(err, "creating coach")
	}
	return c, nil
}

// GetByID returns the Coach with the given id; found is false when there is none.
func (svc *Service) GetByID(ctx context.Context, id int) (c Coach, found bool, err error) {
	return svc.get(ctx, GetFilter{ID: id})
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (c Coach, found bool, err error) {
	return svc.get(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
}

func (svc *Service) get(ctx context.Context, filter GetFilter) (Coach, bool, error) {
	c, err := svc.repo.GetCoach(ctx, filter)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Coach{}, false, nil
		}
		return Coach{}, false, errors.Wrap(err, "getting coach")
	}
	return c, true, nil
}
