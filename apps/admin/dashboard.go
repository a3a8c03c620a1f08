package main

import (
	"context"
	"fmt"
	"time"

	"github.com/trezcool/coachdesk/core"
)

func (cli *commandLine) dashboard(coachID int, date string) error {
	today := time.Now().UTC()
	if date != "" {
		var err error
		if today, err = time.Parse(core.DateLayout, date); err != nil {
			return fmt.Errorf("date must be formatted as YYYY-MM-DD (got '%s')", date)
		}
	}

	d, err := cli.reports.Dashboard(context.Background(), coachID, today)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Dashboard of coach #%d on %s\n", d.CoachID, d.Date)
	fmt.Fprintf(cli.out, "  students:          %d (%d active)\n", d.TotalStudents, d.ActiveStudents)
	fmt.Fprintf(cli.out, "  revenue %s:   %s (%d payments)\n", d.Month, d.MonthlyRevenue.StringFixed(2), d.PaymentsCount)
	fmt.Fprintf(cli.out, "  potential revenue: %s\n", d.PotentialRevenue.StringFixed(2))
	fmt.Fprintf(cli.out, "  outstanding:       %s\n", d.Outstanding().StringFixed(2))
	fmt.Fprintf(cli.out, "  pending:           %s (%d payments)\n", d.PendingTotal.StringFixed(2), d.PendingCount)
	fmt.Fprintf(cli.out, "  today:             %d present, %d absent\n", d.PresentToday, d.AbsentToday)
	return nil
}
