// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package dataset

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_YAML(t *testing.T) {
	got, err := Load[Employee](filepath.Join("testdata", "employees.yaml"), "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Employee{Firstname: "Dana", Lastname: "Lee", Department: "Legal", Rating: 2}, got[0])
	assert.Equal(t, "IT", got[1].Department)
}

func TestLoad_YAMLParent(t *testing.T) {
	got, err := Load[Employee](filepath.Join("testdata", "nested.yaml"), "data.employees")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Lee", got[0].Lastname)

	_, err = Load[Employee](filepath.Join("testdata", "nested.yaml"), "data.count")
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = Load[Employee](filepath.Join("testdata", "nested.yaml"), "data.missing")
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = Load[Employee](filepath.Join("testdata", "nested.yaml"), "")
	assert.ErrorIs(t, err, ErrNotArray)
}

func TestLoad_JSON(t *testing.T) {
	got, err := Load[Task](filepath.Join("testdata", "tasks.json"), "data.tasks")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Quarterly Review", got[0].Title)
	assert.Equal(t, time.Date(2026, time.April, 3, 9, 0, 0, 0, time.UTC), got[1].Due.UTC())
	assert.True(t, got[1].Done)

	employees, err := Load[Employee](filepath.Join("testdata", "employees.json"), "")
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, 2, employees[0].Rating)

	_, err = Load[Task](filepath.Join("testdata", "tasks.json"), "data.owner")
	assert.ErrorIs(t, err, ErrNotArray)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load[Employee](filepath.Join("testdata", "employees.csv"), "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load[Employee](filepath.Join("testdata", "broken.json"), "")
	assert.Error(t, err)

	_, err = Load[Employee](filepath.Join("testdata", "nope.yaml"), "")
	assert.Error(t, err)
}

func TestDecodeYAML_Empty(t *testing.T) {
	got, err := DecodeYAML[Employee](nil, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeJSON_BadRecord(t *testing.T) {
	_, err := DecodeJSON[Employee]([]byte(`[{"rating": "high"}]`), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "record 0")
}

func TestSamples(t *testing.T) {
	employees := Employees()
	require.Len(t, employees, 3)
	assert.Equal(t, "Alice", employees[0].Firstname)
	assert.Equal(t, "HR", employees[1].Department)
	assert.Equal(t, "Taylor", employees[2].Lastname)

	tasks := Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "Project abc Status Report", tasks[1].Title)
	assert.NotContains(t, tasks[0].Title+tasks[0].Description, "Project abc")
}
