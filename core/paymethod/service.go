package paymethod

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/coachdesk/core"
)

var ErrNotFound = errors.New("payment method not found")

type (
	Repository interface {
		CreateMethod(ctx context.Context, m Method) (Method, error)
		// GetMethod returns ErrNotFound when there is no method with the given id.
		GetMethod(ctx context.Context, id int) (Method, error)
		// QueryActiveMethods returns the coach's methods with is_active set, oldest first.
		QueryActiveMethods(ctx context.Context, coachID int) ([]Method, error)
		UpdateMethod(ctx context.Context, m Method) (int64, error)
		SetActive(ctx context.Context, id int, active bool) (int64, error)
	}

	Service struct {
		repo Repository
		box  core.SecretBox
	}
)

func NewService(repo Repository, box core.SecretBox) *Service {
	return &Service{repo: repo, box: box}
}

// Save creates a payment method for coachID, or replaces the one identified by sp.ID.
func (svc *Service) Save(ctx context.Context, coachID int, sp SavePaymentMethod) (Method, error) {
	if err := sp.Validate(); err != nil {
		return Method{}, err
	}

	m := Method{
		ID:         sp.ID,
		CoachID:    coachID,
		MethodType: null.StringFrom(sp.MethodType),
		Provider:   null.StringFrom(sp.Provider),
		IsActive:   sp.isActive(),
	}
	if sp.ID != 0 {
		orig, err := svc.repo.GetMethod(ctx, sp.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return Method{}, core.NewValidationError(nil, core.FieldError{Field: "id", Error: ErrNotFound.Error()})
			}
			return Method{}, errors.Wrap(err, "getting payment method")
		}
		m.CoachID = orig.CoachID
		m.SealedKey = orig.SealedKey
		m.KeyLast4 = orig.KeyLast4
		m.CreatedAt = orig.CreatedAt
	}
	if sp.APIKey != "" {
		sealed, err := svc.box.Seal(sp.APIKey)
		if err != nil {
			return Method{}, errors.Wrap(err, "sealing api key")
		}
		m.SealedKey = sealed
		m.KeyLast4 = last4(sp.APIKey)
	}

	if sp.ID == 0 {
		m.CreatedAt = time.Now().UTC()
		created, err := svc.repo.CreateMethod(ctx, m)
		if err != nil {
			return Method{}, errors.Wrap(err, "creating payment method")
		}
		return created, nil
	}
	if _, err := svc.repo.UpdateMethod(ctx, m); err != nil {
		return Method{}, errors.Wrap(err, "updating payment method")
	}
	return m, nil
}

// ListActive returns the coach's active payment methods.
func (svc *Service) ListActive(ctx context.Context, coachID int) ([]Method, error) {
	methods, err := svc.repo.QueryActiveMethods(ctx, coachID)
	if err != nil {
		return nil, errors.Wrap(err, "listing payment methods")
	}
	return methods, nil
}

// Deactivate hides a payment method from ListActive without deleting it.
func (svc *Service) Deactivate(ctx context.Context, id int) (int64, error) {
	n, err := svc.repo.SetActive(ctx, id, false)
	if err != nil {
		return 0, errors.Wrap(err, "deactivating payment method")
	}
	return n, nil
}

// APIKey returns the plaintext API key of a payment method. Never log the result.
func (svc *Service) APIKey(ctx context.Context, id int) (string, error) {
	m, err := svc.repo.GetMethod(ctx, id)
	if err != nil {
		return "", errors.Wrap(err, "getting payment method")
	}
	if m.SealedKey == "" {
		return "", nil
	}
	key, err := svc.box.Open(m.SealedKey)
	if err != nil {
		return "", errors.Wrap(err, "opening api key")
	}
	return key, nil
}
