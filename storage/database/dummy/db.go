// Package dummydb holds map-backed repositories for tests that don't need SQLite.
package dummydb

import (
	"sync"

	"github.com/trezcool/coachdesk/core/paymethod"
)

type (
	DB struct {
		paymethod *paymethodTable
	}

	paymethodTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*paymethod.Method
	}
)

func Open() *DB {
	return &DB{
		paymethod: &paymethodTable{table: make(map[int]*paymethod.Method)},
	}
}
