// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output materializes filtered record views into rows and renders
// them as a table, JSON or YAML.
package output
