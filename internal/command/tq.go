// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/textq/internal/config"
	"github.com/tfctl/textq/internal/dataset"
	"github.com/tfctl/textq/internal/filters"
	"github.com/tfctl/textq/internal/meta"
)

// tqDefaultAttrs trims long descriptions in the default listing.
var tqDefaultAttrs = []string{"Description::40"}

// tqCommandAction is the action handler for the "tq" subcommand. It searches
// tasks and optionally keeps only done or pending ones.
func tqCommandAction(ctx context.Context, cmd *cli.Command) error {
	config.Config.Namespace = "tq"

	return NewQueryActionRunner(
		"tq",
		tqDefaultAttrs,
		dataset.Tasks,
		tqCriteria,
	).Run(ctx, cmd)
}

func tqCriteria(cmd *cli.Command) (filters.Predicate[dataset.Task], error) {
	done, pending := cmd.Bool("done"), cmd.Bool("pending")
	if done && pending {
		return nil, errors.New("--done and --pending are mutually exclusive")
	}

	var c filters.Criteria[dataset.Task]
	c.When(done, filters.Func[dataset.Task]{
		Name: "Done",
		Fn:   func(t dataset.Task) bool { return t.Done },
	}).When(pending, filters.Not[dataset.Task]{
		P: filters.Func[dataset.Task]{
			Name: "Done",
			Fn:   func(t dataset.Task) bool { return t.Done },
		},
	})

	return c.Predicate(), nil
}

// tqCommandBuilder constructs the cli.Command for "tq", wiring metadata,
// flags, and action handlers.
func tqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "tq",
		Usage:     "task query",
		UsageText: "textq tq [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "done",
				Usage: "only completed tasks",
			},
			&cli.BoolFlag{
				Name:  "pending",
				Usage: "only open tasks",
			},
		},
		Action: tqCommandAction,
		Meta:   meta,
	}).Build()
}
