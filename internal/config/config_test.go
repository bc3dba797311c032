// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig sets TEXTQ_CFG_FILE to point to a test config file and
// resets the global Config so the next getter reloads it.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("TEXTQ_CFG_FILE", absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		namespace []string
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "reflect", cfg.Data["mode"])
				assert.Equal(t, "json", cfg.Data["output"])
				assert.Empty(t, cfg.Namespace)
			},
		},
		{
			name:      "namespace recorded",
			testFile:  "nested.yaml",
			namespace: []string{"eq"},
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "eq", cfg.Namespace)
				eq, ok := cfg.Data["eq"].(map[string]interface{})
				require.True(t, ok, "eq should be a map")
				assert.Equal(t, "expr", eq["mode"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source, "should have a source path")
				assert.Empty(t, cfg.Data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load(tt.namespace...)
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("TEXTQ_CFG_FILE", "/nonexistent/path/textq.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CfgFileIsDirectory(t *testing.T) {
	t.Setenv("TEXTQ_CFG_FILE", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		namespace    string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{
			name:     "simple string value",
			testFile: "simple.yaml",
			key:      "mode",
			want:     "reflect",
		},
		{
			name:     "nested string value",
			testFile: "nested.yaml",
			key:      "colors.title",
			want:     "#ff0000",
		},
		{
			name:      "namespaced value wins",
			testFile:  "nested.yaml",
			namespace: "eq",
			key:       "mode",
			want:      "expr",
		},
		{
			name:      "falls back to global key",
			testFile:  "nested.yaml",
			namespace: "tq",
			key:       "mode",
			want:      "typed",
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []string{"default-value"},
			want:         "default-value",
		},
		{
			name:     "missing key without default",
			testFile: "simple.yaml",
			key:      "missing",
			wantErr:  true,
		},
		{
			name:     "non-string value",
			testFile: "mixed-types.yaml",
			key:      "version",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)
			_, err := Load(tt.namespace)
			require.NoError(t, err)

			got, err := GetString(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	setupTestConfig(t, "mixed-types.yaml")

	got, err := GetInt("version")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = GetInt("ratio")
	require.NoError(t, err)
	assert.Equal(t, 30, got)

	got, err = GetInt("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	_, err = GetInt("name")
	assert.Error(t, err)
}

func TestGetBool(t *testing.T) {
	setupTestConfig(t, "mixed-types.yaml")

	got, err := GetBool("color")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = GetBool("missing", true)
	require.NoError(t, err)
	assert.True(t, got)

	_, err = GetBool("name")
	assert.Error(t, err)

	_, err = GetBool("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStringSlice(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	got, err := GetStringSlice("eq.defaults")
	require.NoError(t, err)
	assert.Equal(t, []string{"--titles", "--sort Lastname"}, got)

	got, err = GetStringSlice("missing", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)

	setupTestConfig(t, "mixed-types.yaml")

	_, err = GetStringSlice("numbers")
	assert.Error(t, err)

	_, err = GetStringSlice("name")
	assert.Error(t, err)
}

func TestLazyLoad(t *testing.T) {
	setupTestConfig(t, "simple.yaml")
	assert.Empty(t, Config.Data)

	got, err := GetString("output")
	require.NoError(t, err)
	assert.Equal(t, "json", got)
	assert.NotEmpty(t, Config.Data)
}
