// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/textq/internal/config"
	"github.com/tfctl/textq/internal/dataset"
	"github.com/tfctl/textq/internal/filters"
	"github.com/tfctl/textq/internal/meta"
)

// eqCommandAction is the action handler for the "eq" subcommand. It searches
// employees and narrows them by department and minimum rating.
func eqCommandAction(ctx context.Context, cmd *cli.Command) error {
	config.Config.Namespace = "eq"

	return NewQueryActionRunner(
		"eq",
		nil,
		dataset.Employees,
		eqCriteria,
	).Run(ctx, cmd)
}

// eqCriteria ANDs the department and rating predicates the user asked for.
func eqCriteria(cmd *cli.Command) (filters.Predicate[dataset.Employee], error) {
	dept := cmd.String("department")
	rating := cmd.Int("min-rating")

	var c filters.Criteria[dataset.Employee]
	c.When(dept != "", filters.Func[dataset.Employee]{
		Name: fmt.Sprintf("Department %q", dept),
		Fn: func(e dataset.Employee) bool {
			return strings.EqualFold(e.Department, dept)
		},
	}).When(rating > 0, filters.Func[dataset.Employee]{
		Name: fmt.Sprintf("Rating >= %d", rating),
		Fn: func(e dataset.Employee) bool {
			return e.Rating >= rating
		},
	})

	return c.Predicate(), nil
}

// eqCommandBuilder constructs the cli.Command for "eq", wiring metadata,
// flags, and action handlers.
func eqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "eq",
		Usage:     "employee query",
		UsageText: "textq eq [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "department",
				Usage: "only employees of this department",
			},
			&cli.IntFlag{
				Name:  "min-rating",
				Usage: "only employees rated at least this",
				Validator: func(value int) error {
					if value < 0 {
						return fmt.Errorf("must not be negative")
					}
					return nil
				},
			},
		},
		Action: eqCommandAction,
		Meta:   meta,
	}).Build()
}
