// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for textq's user
// configuration. The configuration is a YAML document, either the file named
// by TEXTQ_CFG_FILE or textq.yaml in the user's configuration directory:
//   - Linux/macOS: $XDG_CONFIG_HOME/textq.yaml or $HOME/.config/textq.yaml
//   - Windows: %APPDATA%/textq.yaml
//
// Keys are dotted paths. When a namespace is set (the subcommand name, e.g.
// "eq"), "eq.mode" is consulted before "mode".
package config
