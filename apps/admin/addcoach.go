package main

import (
	"context"
	"fmt"

	"github.com/trezcool/coachdesk/core/coach"
)

func (cli *commandLine) addCoach(nc coach.NewCoach) error {
	c, err := cli.coaches.Create(context.Background(), nc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "coach #%d created: %s <%s>\n", c.ID, c.Name, c.Email)
	return nil
}
