// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/textq/internal/log"
)

// Type is the in-memory representation of the loaded configuration.
//
// Fields:
//   - Source: absolute path of the YAML file loaded.
//   - Namespace: optional dot-prefixed keyspace used to prefer namespaced
//     lookups (e.g. "eq.mode" before "mode").
//   - Data: raw key/value tree unmarshaled from YAML.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config holds the global, lazily-initialized configuration instance.
var Config Type

// ErrNotFound is returned by the getters when no candidate key resolves.
var ErrNotFound = errors.New("config key not found")

// GetBool returns the boolean value for the given dotted key path. A single
// defaultValue may be provided and is returned when the key is missing.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	return getAs(key, "bool", defaultValue, func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	})
}

// GetInt returns the integer value for the given dotted key path. YAML numbers
// may decode as int, int64, or float64; fractions are truncated.
func GetInt(key string, defaultValue ...int) (int, error) {
	return getAs(key, "int", defaultValue, func(v any) (int, bool) {
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
		return 0, false
	})
}

// GetString returns the string value for the given dotted key path.
func GetString(key string, defaultValue ...string) (string, error) {
	return getAs(key, "string", defaultValue, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
}

// GetStringSlice returns the string list at the given dotted key path. Every
// element must be a string.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	return getAs(key, "string list", defaultValue, func(v any) ([]string, bool) {
		switch list := v.(type) {
		case []string:
			return list, true
		case []interface{}:
			out := make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, false
				}
				out = append(out, s)
			}
			return out, true
		}
		return nil, false
	})
}

// getAs resolves key and converts its value. A missing key yields the single
// default when one is given. A present value of the wrong type is an error
// even when a default exists.
func getAs[T any](key string, kind string, defaultValue []T, convert func(any) (T, bool)) (T, error) {
	var zero T

	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return zero, err
	}

	out, ok := convert(val)
	if !ok {
		return zero, fmt.Errorf("value of %s is not a %s", key, kind)
	}
	return out, nil
}

// Load reads the YAML configuration file and populates the global Config.
// The namespace argument, if provided, becomes Config.Namespace.
func Load(namespace ...string) (Type, error) {
	path, err := File()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{
		Source: path,
		Data:   data,
	}
	if len(namespace) > 0 {
		Config.Namespace = namespace[0]
	}

	return Config, nil
}

// File returns the absolute path to the YAML config file. If the
// TEXTQ_CFG_FILE environment variable is set, it is treated as the full path
// to the config file. Otherwise, the OS-specific user configuration directory
// returned by os.UserConfigDir is used with the filename "textq.yaml". The file
// must exist and not be a directory.
func File() (string, error) {
	if cfgPath := os.Getenv("TEXTQ_CFG_FILE"); cfgPath != "" {
		if fileInfo, err := os.Stat(cfgPath); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file from TEXTQ_CFG_FILE: %s", cfgPath)
				return cfgPath, nil
			}
			return "", fmt.Errorf("TEXTQ_CFG_FILE points to a directory: %s", cfgPath)
		}
		return "", fmt.Errorf("config file not found at TEXTQ_CFG_FILE path: %s", cfgPath)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, "textq.yaml")
	if fileInfo, err := os.Stat(file); err == nil && !fileInfo.IsDir() {
		log.Debugf("using config file: %s", file)
		return file, nil
	}

	return "", fmt.Errorf("no config file found in standard locations")
}

// lookup lazily loads the config and resolves key, preferring the namespaced
// form when a namespace is set.
func lookup(key string) (any, error) {
	if len(Config.Data) == 0 {
		ns := Config.Namespace
		if _, err := Load(ns); err != nil {
			return nil, err
		}
	}
	return Config.get(key)
}

// get traverses the configuration tree using a dotted key path (e.g.
// "colors.title"). If Namespace is set, a namespaced candidate key is
// attempted first (Namespace + "." + kspec), then the unnamespaced key.
func (cfg *Type) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		keys := strings.Split(key, ".")
		var current interface{} = cfg.Data

		success := true
		for _, key := range keys {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[key]
			if !ok {
				success = false
				break
			}
		}

		if success {
			log.Tracef("config resolved: key=%s", key)
			return current, nil
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrNotFound, candidateKeys)
}
