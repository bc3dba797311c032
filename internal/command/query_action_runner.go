// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/textq/internal/filters"
	"github.com/tfctl/textq/internal/log"
	"github.com/tfctl/textq/internal/output"
)

// QueryActionRunner[T] encapsulates the common query action pattern for all
// query subcommands. Commands provide their sample records and the criteria
// built from their own flags.
type QueryActionRunner[T any] struct {
	CommandName  string
	DefaultAttrs []string
	SamplesFn    func() []T
	CriteriaFn   func(*cli.Command) (filters.Predicate[T], error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner[T]) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	// Step 1: GetMeta + debug.
	m := GetMeta(cmd)
	log.Debugf("executing action: command=%s, args=%v", qar.CommandName, m.Args)

	// Step 2: Short-circuit checks.
	typ := reflect.TypeFor[T]()
	if DumpSchemaIfRequested(cmd, typ) {
		return nil
	}

	// Step 3: BuildAttrs + debug.
	al, err := BuildAttrs(cmd, typ, qar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %s", al.String())

	// Step 4: Load records and narrow them by text.
	records, err := LoadRecords(cmd, qar.SamplesFn)
	if err != nil {
		return err
	}

	view, err := Search(cmd, records, SearchNames(al))
	if err != nil {
		return err
	}

	// Step 5: Command criteria and --filter specs.
	if qar.CriteriaFn != nil {
		crit, err := qar.CriteriaFn(cmd)
		if err != nil {
			return err
		}
		log.Debugf("criteria: %s", crit)
		view = filters.Where(view, crit)
	}
	view = filters.Where(view, filters.SpecPredicate[T](al, cmd.String("filter")))

	// Step 6: Emit + return.
	rows := output.Rows(view, al)
	return output.Spit(rows, al, Options(cmd), writer(cmd))
}

// NewQueryActionRunner creates a QueryActionRunner with the provided
// configuration. It's a convenience factory that reduces boilerplate in
// individual command files.
func NewQueryActionRunner[T any](
	commandName string,
	defaultAttrs []string,
	samplesFn func() []T,
	criteriaFn func(*cli.Command) (filters.Predicate[T], error),
) *QueryActionRunner[T] {
	return &QueryActionRunner[T]{
		CommandName:  commandName,
		DefaultAttrs: defaultAttrs,
		SamplesFn:    samplesFn,
		CriteriaFn:   criteriaFn,
	}
}
