package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/coachdesk/apps/di"
	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/coach"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/paymethod"
	"github.com/trezcool/coachdesk/core/report"
)

var logger *log.Logger

type cliDeps struct {
	DB         *sqlx.DB
	Logger     core.Logger
	Coaches    *coach.Service
	Payments   *payment.Service
	PayMethods *paymethod.Service
	Reports    *report.Service
}

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var cli *commandLine
	container := di.New()
	err := container.Invoke(func(
		db *sqlx.DB,
		appLogger core.Logger,
		coaches *coach.Service,
		payments *payment.Service,
		payMethods *paymethod.Service,
		reports *report.Service,
	) {
		cli = newCommandLine(cliDeps{
			DB:         db,
			Logger:     appLogger,
			Coaches:    coaches,
			Payments:   payments,
			PayMethods: payMethods,
			Reports:    reports,
		}, os.Stdout)
	})
	errAndDie(err)

	err = cli.run(os.Args)
	_ = cli.db.Close()
	if err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
