// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"time"
)

// Employee is a staff record. Firstname, Lastname and Department are its
// text attributes.
type Employee struct {
	Firstname  string `yaml:"firstname" json:"firstname"`
	Lastname   string `yaml:"lastname" json:"lastname"`
	Department string `yaml:"department" json:"department"`
	Rating     int    `yaml:"rating" json:"rating"`
}

// Task is a work item. Title and Description are its text attributes.
type Task struct {
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	Due         time.Time `yaml:"due" json:"due"`
	Done        bool      `yaml:"done" json:"done"`
}

// Employees returns the built-in employee sample.
func Employees() []Employee {
	return []Employee{
		{Firstname: "Alice", Lastname: "Williams", Department: "IT", Rating: 5},
		{Firstname: "Bob", Lastname: "Brown", Department: "HR", Rating: 3},
		{Firstname: "Charlie", Lastname: "Taylor", Department: "Finance", Rating: 4},
	}
}

// Tasks returns the built-in task sample.
func Tasks() []Task {
	return []Task{
		{
			Title:       "Weekly Team Update",
			Description: "Share progress and blockers with the team",
			Due:         time.Date(2026, time.March, 6, 17, 0, 0, 0, time.UTC),
			Done:        true,
		},
		{
			Title:       "Project abc Status Report",
			Description: "Summarize milestones and risks for stakeholders",
			Due:         time.Date(2026, time.March, 13, 12, 0, 0, 0, time.UTC),
			Done:        false,
		},
	}
}
