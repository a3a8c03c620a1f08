package sqlxrepos

import (
	"database/sql"

	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/trezcool/coachdesk/core"
)

// mapErr classifies a driver error as a constraint violation or a storage failure.
func mapErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return errors.Wrapf(core.ErrConstraintViolation, "%s: %v", msg, err)
	}
	return errors.Wrapf(core.ErrStorageFailure, "%s: %v", msg, err)
}

// trapNoRowsErr maps sql.ErrNoRows to notFound, anything else via mapErr.
func trapNoRowsErr(err error, notFound error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return mapErr(err, msg)
}

func rowsAffected(res sql.Result, msg string) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapErr(err, msg)
	}
	return n, nil
}
