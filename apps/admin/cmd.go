package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/coach"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/paymethod"
	"github.com/trezcool/coachdesk/core/report"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db         *sqlx.DB
	logger     core.Logger
	coaches    *coach.Service
	payments   *payment.Service
	payMethods *paymethod.Service
	reports    *report.Service
	out        io.Writer
}

func newCommandLine(deps cliDeps, out io.Writer) *commandLine {
	return &commandLine{
		db:         deps.DB,
		logger:     deps.Logger,
		coaches:    deps.Coaches,
		payments:   deps.Payments,
		payMethods: deps.PayMethods,
		reports:    deps.Reports,
		out:        out,
	}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                                 - run database migrations (up, down, status, version, redo, reset, up-by-one, up-to V, down-to V)")
	fmt.Fprintln(cli.out, "  addcoach -name NAME -email EMAIL [-phone -specialization -business] - register a coach")
	fmt.Fprintln(cli.out, "  addpaymentmethod -coach ID -type TYPE -provider PROVIDER - add a payment gateway; the API key is prompted next")
	fmt.Fprintln(cli.out, "  dashboard -coach ID [-date YYYY-MM-DD]                 - print the coach's dashboard")
	fmt.Fprintln(cli.out, "  export -coach ID -month YYYY-MM -out FILE.xlsx         - export the month's payments")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "addcoach":
		cmd := cli.newFlagSet("addcoach")
		name := cmd.String("name", "", "The coach's full name.")
		email := cmd.String("email", "", "The coach's email; must be unique.")
		phone := cmd.String("phone", "", "Phone number.")
		specialization := cmd.String("specialization", "", "Sport or subject taught.")
		business := cmd.String("business", "", "Business name.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *name == "" || *email == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.addCoach(coach.NewCoach{
			Name:           *name,
			Email:          *email,
			Phone:          *phone,
			Specialization: *specialization,
			BusinessName:   *business,
		})

	case "addpaymentmethod":
		cmd := cli.newFlagSet("addpaymentmethod")
		coachID := cmd.Int("coach", 0, "The coach's ID.")
		methodType := cmd.String("type", "", "Method type, e.g. upi or card.")
		provider := cmd.String("provider", "", "Gateway provider, e.g. stripe or razorpay.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *coachID <= 0 || *methodType == "" || *provider == "" {
			cmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter API key:")
		key, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(key) == 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.addPaymentMethod(*coachID, paymethod.SavePaymentMethod{
			MethodType: *methodType,
			Provider:   *provider,
			APIKey:     string(key),
		})

	case "dashboard":
		cmd := cli.newFlagSet("dashboard")
		coachID := cmd.Int("coach", 0, "The coach's ID.")
		date := cmd.String("date", "", "Day to report on (YYYY-MM-DD); defaults to today.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *coachID <= 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.dashboard(*coachID, *date)

	case "export":
		cmd := cli.newFlagSet("export")
		coachID := cmd.Int("coach", 0, "The coach's ID.")
		month := cmd.String("month", "", "Month to export (YYYY-MM).")
		out := cmd.String("out", "", "Destination .xlsx file.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *coachID <= 0 || *month == "" || *out == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.export(*coachID, *month, *out)

	default:
		cli.printUsage()
		return errHelp
	}
}
