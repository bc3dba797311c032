// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/textq/internal/log"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor
	// JSON by extension.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrNotArray is returned when the selected document node is not a list.
	ErrNotArray = errors.New("dataset is not an array")
)

// Load reads a list of records from a YAML (.yaml, .yml) or JSON (.json) file.
// parent is an optional dotted path to the list inside the document, e.g.
// "data.employees"; empty means the document itself is the list.
func Load[T any](path string, parent string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML[T](data, parent)
	case ".json":
		return DecodeJSON[T](data, parent)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// DecodeJSON selects the list at parent with gjson and decodes each element
// into a T.
func DecodeJSON[T any](data []byte, parent string) ([]T, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON document")
	}

	list := gjson.ParseBytes(data)
	if parent != "" {
		list = list.Get(parent)
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: %q", ErrNotArray, parent)
	}

	elements := list.Array()
	records := make([]T, 0, len(elements))
	for i, element := range elements {
		var record T
		if err := json.Unmarshal([]byte(element.Raw), &record); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, record)
	}

	log.Debugf("json dataset decoded: parent=%s, records=%d", parent, len(records))
	return records, nil
}

// DecodeYAML walks the YAML document to the list at parent and decodes it
// into []T.
func DecodeYAML[T any](data []byte, parent string) ([]T, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	// An empty document decodes to a zero node.
	if doc.Kind == 0 {
		return []T{}, nil
	}

	node := &doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	if parent != "" {
		for _, key := range strings.Split(parent, ".") {
			node = mappingValue(node, key)
			if node == nil {
				return nil, fmt.Errorf("%w: %q not found", ErrNotArray, parent)
			}
		}
	}

	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: %q", ErrNotArray, parent)
	}

	records := make([]T, 0, len(node.Content))
	if err := node.Decode(&records); err != nil {
		return nil, err
	}

	log.Debugf("yaml dataset decoded: parent=%s, records=%d", parent, len(records))
	return records, nil
}

// mappingValue returns the value node for key in a mapping node.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
