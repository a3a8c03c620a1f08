package di

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/attendance"
	"github.com/trezcool/coachdesk/core/coach"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/paymethod"
	"github.com/trezcool/coachdesk/core/report"
	"github.com/trezcool/coachdesk/core/session"
	"github.com/trezcool/coachdesk/core/state"
	"github.com/trezcool/coachdesk/core/student"
	logsvc "github.com/trezcool/coachdesk/services/logger"
	"github.com/trezcool/coachdesk/services/secrets"
	"github.com/trezcool/coachdesk/storage/database"
	sqlxrepos "github.com/trezcool/coachdesk/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type SessionParam struct {
	dig.In
	Conf       *core.Config
	Logger     core.Logger
	Store      *state.Store
	Coaches    *coach.Service
	Students   *student.Service
	Attendance *attendance.Service
	Payments   *payment.Service
	Reports    *report.Service
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "APP : ", log.LstdFlags)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) (*sqlx.DB, core.DBExecutor) {
	setUp := func() (*sqlx.DB, error) {
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(context.Background(), db, loggerParam.Logger); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db, db
}

func newReportService(students *student.Service, att *attendance.Service, payments *payment.Service) *report.Service {
	return report.NewService(students, att, payments)
}

func newSession(p SessionParam) *session.Session {
	deps := session.Deps{
		Coaches:    p.Coaches,
		Students:   p.Students,
		Attendance: p.Attendance,
		Payments:   p.Payments,
		Reports:    p.Reports,
	}
	return session.New(deps, p.Store, p.Logger, p.Conf.DefaultCoachID)
}

// New returns a new dependency injection dig.Container.
// newConfig defaults to core.NewConfig.
func New(newConfig ...func() *core.Config) *dig.Container {
	c := dig.New()

	confFunc := core.NewConfig
	if len(newConfig) > 0 && newConfig[0] != nil {
		confFunc = newConfig[0]
	}
	must(c.Provide(confFunc))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(secrets.New, dig.As(new(core.SecretBox))))

	must(c.Provide(sqlxrepos.NewCoachRepository, dig.As(new(coach.Repository))))
	must(c.Provide(sqlxrepos.NewStudentRepository, dig.As(new(student.Repository))))
	must(c.Provide(sqlxrepos.NewAttendanceRepository, dig.As(new(attendance.Repository))))
	must(c.Provide(sqlxrepos.NewPaymentRepository, dig.As(new(payment.Repository))))
	must(c.Provide(sqlxrepos.NewPaymethodRepository, dig.As(new(paymethod.Repository))))

	must(c.Provide(coach.NewService))
	must(c.Provide(student.NewService))
	must(c.Provide(attendance.NewService))
	must(c.Provide(payment.NewService))
	must(c.Provide(paymethod.NewService))
	must(c.Provide(newReportService))

	must(c.Provide(state.New))
	must(c.Provide(newSession))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
