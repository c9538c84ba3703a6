// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records decodes reference records from files and streams. It
// accepts the native JSON and YAML shapes of types.Reference as well as
// CSL-JSON and CSL-YAML item lists, and writes references back as CSL-YAML.
package records

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// Format names an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSL  Format = "csl"
)

// ErrUnknownFormat is returned for an unsupported input format name.
var ErrUnknownFormat = errors.New("unknown record format")

// ParseFormat resolves a format name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csl", "csl-json", "csl-yaml":
		return FormatCSL, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

// FormatForPath guesses the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".csl":
		return FormatCSL
	}
	return FormatJSON
}

// Decode reads one reference or a list of references from r.
func Decode(r io.Reader, format Format) ([]types.Reference, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatCSL:
		return decodeCSL(data)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

func decodeJSON(data []byte) ([]types.Reference, error) {
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] == '[' {
		var refs []types.Reference
		if err := json.Unmarshal(trimmed, &refs); err != nil {
			return nil, fmt.Errorf("parsing JSON records: %w", err)
		}
		return refs, nil
	}
	var ref types.Reference
	if err := json.Unmarshal(trimmed, &ref); err != nil {
		return nil, fmt.Errorf("parsing JSON record: %w", err)
	}
	return []types.Reference{ref}, nil
}

func decodeYAML(data []byte) ([]types.Reference, error) {
	items, err := yamlItems(data)
	if err != nil {
		return nil, err
	}
	refs := make([]types.Reference, 0, len(items))
	for i, item := range items {
		var ref types.Reference
		if err := item.Decode(&ref); err != nil {
			return nil, fmt.Errorf("parsing YAML record %d: %w", i+1, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// yamlItems returns the mapping nodes of a document holding either one
// mapping or a sequence of mappings. JSON input parses the same way.
func yamlItems(data []byte) ([]*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{root}, nil
	case yaml.SequenceNode:
		for i, n := range root.Content {
			if n.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("record %d is not a mapping", i+1)
			}
		}
		return root.Content, nil
	}
	return nil, fmt.Errorf("expected a mapping or a list of mappings")
}
