// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/textq/internal/output"
)

// Modes lists the accepted --mode values. All of them select the same records.
var Modes = []string{"typed", "reflect", "expr"}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks combinations of the shared flags.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.String("parent") != "" && c.String("file") == "" {
		return errors.New("--parent requires --file")
	}
	return nil
}

func OutputValidator(value any) error {
	return oneOf(value, output.Formats)
}

func ModeValidator(value any) error {
	return oneOf(value, Modes)
}

func oneOf(value any, valid []string) error {
	s, ok := value.(string)
	if !ok || !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}
