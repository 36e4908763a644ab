package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pagemeta"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := pagemeta.InspectionFilter{Limit: c.Limit, Offset: c.Offset}
	if c.URL != "" {
		normalized, err := pagemeta.NormalizeURL(c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagemeta.ErrorMessage(err))
			return err
		}
		filter.URL = &normalized
	}

	inspections, err := deps.Inspections.FindInspections(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemeta.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, inspections)
	}

	if len(inspections) == 0 {
		fmt.Fprintln(deps.Stdout, "No inspections found. Use 'pagemeta inspect --save' to record one.")
		return nil
	}

	for _, in := range inspections {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			in.ID, in.InspectedAt.Local().Format(time.DateTime), in.URL, orNone(in.BestTitle))
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	in, err := deps.Inspections.FindInspectionByID(deps.Ctx, c.ID)
	if err != nil {
		if pagemeta.ErrorCode(err) == pagemeta.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: inspection %q not found. Use 'pagemeta history' to see stored inspections.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagemeta.ErrorMessage(err))
		}
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, in)
	}
	printInspection(deps.Stdout, in, true)
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Inspections.DeleteInspection(deps.Ctx, c.ID); err != nil {
		if pagemeta.ErrorCode(err) == pagemeta.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: inspection %q not found. Use 'pagemeta history' to see stored inspections.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagemeta.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted inspection %s\n", c.ID)
	return nil
}
