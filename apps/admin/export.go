package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/services/export"
)

func (cli *commandLine) export(coachID int, month, path string) error {
	ctx := context.Background()
	summary, err := cli.payments.Summarize(ctx, coachID, month)
	if err != nil {
		return err
	}
	payments, err := cli.payments.ListByMonth(ctx, coachID, month)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	if err = export.WritePayments(f, month, payments, summary); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "closing export file")
	}
	fmt.Fprintf(cli.out, "%d payments exported to %s\n", len(payments), path)
	return nil
}
