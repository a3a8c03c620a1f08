package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/coachdesk/core/paymethod"
)

type paymethodRepository struct {
	db *paymethodTable
}

var _ paymethod.Repository = (*paymethodRepository)(nil) // interface compliance check

func NewPaymethodRepository(db *DB) *paymethodRepository {
	return &paymethodRepository{db: db.paymethod}
}

func (repo *paymethodRepository) CreateMethod(_ context.Context, m paymethod.Method) (paymethod.Method, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	m.ID = repo.db.pkCount
	repo.db.table[m.ID] = &m
	return m, nil
}

func (repo *paymethodRepository) GetMethod(_ context.Context, id int) (paymethod.Method, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if m, ok := repo.db.table[id]; ok {
		return *m, nil
	}
	return paymethod.Method{}, paymethod.ErrNotFound
}

func (repo *paymethodRepository) QueryActiveMethods(_ context.Context, coachID int) ([]paymethod.Method, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	methods := make([]paymethod.Method, 0)
	for _, m := range repo.db.table {
		if m.CoachID == coachID && m.IsActive {
			methods = append(methods, *m)
		}
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].ID < methods[j].ID })
	return methods, nil
}

func (repo *paymethodRepository) UpdateMethod(_ context.Context, m paymethod.Method) (int64, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[m.ID]; !ok {
		return 0, nil
	}
	repo.db.table[m.ID] = &m
	return 1, nil
}

func (repo *paymethodRepository) SetActive(_ context.Context, id int, active bool) (int64, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	m, ok := repo.db.table[id]
	if !ok {
		return 0, nil
	}
	m.IsActive = active
	return 1, nil
}
