// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/textq/internal/command"
	"github.com/tfctl/textq/internal/config"
	"github.com/tfctl/textq/internal/log"
	"github.com/tfctl/textq/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands an @set and then drops repeated flags so that
// flags given after the set override the set's values.
func processCommandArgs(args []string) []string {
	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	args = deduplicateFlags(args)
	log.Debugf("args after dedupe: args=%v", args)

	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding the
// <command>.<set> config entries at the @set position.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			removeIdx := idx + i
			set := a[1:]

			// Remove the @set argument.
			args = append(args[:removeIdx], args[removeIdx+1:]...)

			entries, err := config.GetStringSlice(args[1] + "." + set)
			if err != nil {
				log.Warnf("set not found: set=%s, err=%v", set, err)
				return args
			}
			return injectConfigSet(args, entries, removeIdx)
		}
	}

	return args
}

// injectConfigSet splits each entry on whitespace and inserts the resulting
// args at insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag, together with
// its value. A flag's value is either joined with "=" or the next arg when
// that arg does not start with "-". Positional args are kept in place.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type unit struct {
		name   string
		tokens []string
	}

	var units []unit
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			units = append(units, unit{tokens: []string{a}})
			continue
		}

		name := strings.TrimLeft(a, "-")
		if eq := strings.Index(name, "="); eq >= 0 {
			units = append(units, unit{name: name[:eq], tokens: []string{a}})
			continue
		}

		u := unit{name: name, tokens: []string{a}}
		if i+1 < len(rest) && !strings.HasPrefix(rest[i+1], "-") {
			u.tokens = append(u.tokens, rest[i+1])
			i++
		}
		units = append(units, u)
	}

	last := make(map[string]int)
	for i, u := range units {
		if u.name != "" {
			last[u.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, u := range units {
		if u.name == "" || last[u.name] == i {
			out = append(out, u.tokens...)
		}
	}

	return out
}
