package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trezcool/coachdesk/core"
	appfs "github.com/trezcool/coachdesk/fs"
)

const (
	driverName   = "sqlite"
	gooseDialect = "sqlite3"
	migrationDir = "migrations"
)

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// Open opens the SQLite database at conf.Database.Path (":memory:" for a throwaway one).
// The pool holds a single connection: the app has one user, and in-memory databases live per connection.
func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, conf.Database.Path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", conf.Database.BusyTimeout/time.Millisecond),
	}
	if conf.Database.Path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err = db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "setting %q", pragma)
		}
	}
	return db, nil
}

type gooseLogger struct {
	logger core.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal(fmt.Sprintf(format, v...))
}

func setupGoose(logger core.Logger) error {
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return errors.Wrap(err, "setting migrations dialect")
	}
	if logger != nil {
		goose.SetLogger(gooseLogger{logger: logger})
	} else {
		goose.SetLogger(goose.NopLogger())
	}
	return nil
}

// RunMigrations runs a goose command (up, down, status, version, redo, reset, up-by-one, up-to, down-to)
// against the embedded migrations. A nil logger silences goose.
func RunMigrations(ctx context.Context, db *sqlx.DB, logger core.Logger, command string, args ...string) error {
	if err := setupGoose(logger); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db.DB, migrationDir, args...); err != nil {
		return errors.Wrapf(err, "running migrations %s", command)
	}
	return nil
}

// Migrate brings the schema up to date. It is safe to call on every start.
func Migrate(ctx context.Context, db *sqlx.DB, logger core.Logger) error {
	if err := RunMigrations(ctx, db, logger, "up"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
