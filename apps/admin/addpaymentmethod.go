package main

import (
	"context"
	"fmt"

	"github.com/trezcool/coachdesk/core/paymethod"
)

func (cli *commandLine) addPaymentMethod(coachID int, sp paymethod.SavePaymentMethod) error {
	ctx := context.Background()
	if _, found, err := cli.coaches.GetByID(ctx, coachID); err != nil {
		return err
	} else if !found {
		return fmt.Errorf("coach #%d not found", coachID)
	}

	m, err := cli.payMethods.Save(ctx, coachID, sp)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s saved\n", m)
	return nil
}
