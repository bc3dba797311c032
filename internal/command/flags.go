// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var schemaFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:        "schema",
	Usage:       "dump the record attributes",
	HideDefault: true,
}

// NewGlobalFlags returns the flags shared by every query command. params[0] is
// the command namespace and params[1] the config file. When both are given,
// mode and output may also be read from the config file.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	mode := &cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		Usage:   "search strategy: typed, reflect or expr",
		Value:   "typed",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TEXTQ_MODE"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, ModeValidator)
		},
	}

	output := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Value:   "text",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TEXTQ_OUTPUT"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}

	if len(params) == 2 && params[1] != "" {
		mode = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], mode)
		output = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], output)
	}

	flags = []cli.Flag{
		mode,
		output,
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "expr",
			Aliases: []string{"e"},
			Usage:   "filter expression, @0 is the search term. Implies --mode=expr",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "YAML or JSON file to load records from instead of the samples",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:  "parent",
			Usage: "dotted path to the record array inside --file",
		},
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"S"},
			Usage:   "text to search for in the text attributes",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
