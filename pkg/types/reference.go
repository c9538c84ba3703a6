// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the citation engine:
// the reference record, the citation style and output format enumerations,
// search results, and configuration.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Reference is one bibliographic entry. Only Title is required; every other
// field is optional and its zero value means absent. Renderers treat a
// Reference as read-only.
type Reference struct {
	// Authors lists display names in citation order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Title is the title of the work.
	Title string `json:"title" yaml:"title"`

	// Container is the journal, book, or collection holding the work.
	Container string `json:"container,omitempty" yaml:"container,omitempty"`

	OtherContributors []string `json:"other_contributors,omitempty" yaml:"other_contributors,omitempty"`
	Version           string   `json:"version,omitempty" yaml:"version,omitempty"`
	Number            string   `json:"number,omitempty" yaml:"number,omitempty"`
	Publisher         string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublicationDate   string   `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
	Location          string   `json:"location,omitempty" yaml:"location,omitempty"`

	// Pages is a free-form page range inserted verbatim (e.g. "123-145").
	Pages string `json:"pages,omitempty" yaml:"pages,omitempty"`

	// Volume and Issue number the container. Issue is only rendered
	// together with Volume.
	Volume int `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue  int `json:"issue,omitempty" yaml:"issue,omitempty"`

	// DOI is the bare Digital Object Identifier (e.g. "10.1234/abc").
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	AccessedDate string `json:"accessed_date,omitempty" yaml:"accessed_date,omitempty"`

	// AdditionalInfo holds every key outside the fixed schema. It is
	// flattened into the top level when encoded and is never rendered.
	AdditionalInfo map[string]string `json:"-" yaml:"-"`
}

// referenceAlias has Reference's fields without its codec methods.
type referenceAlias Reference

// additionalInfoKey is accepted as an explicit nested map on input.
const additionalInfoKey = "additional_info"

// knownFields lists the fixed-schema keys. JSON matching is
// case-insensitive, so keys are stored lowercased.
var knownFields = map[string]bool{
	"authors":            true,
	"year":               true,
	"title":              true,
	"container":          true,
	"other_contributors": true,
	"version":            true,
	"number":             true,
	"publisher":          true,
	"publication_date":   true,
	"location":           true,
	"pages":              true,
	"volume":             true,
	"issue":              true,
	"doi":                true,
	"url":                true,
	"accessed_date":      true,
}

// HasAuthors reports whether at least one non-blank author name is present.
func (r Reference) HasAuthors() bool {
	for _, a := range r.Authors {
		if strings.TrimSpace(a) != "" {
			return true
		}
	}
	return false
}

func (r *Reference) setExtra(key, value string) {
	if r.AdditionalInfo == nil {
		r.AdditionalInfo = make(map[string]string)
	}
	r.AdditionalInfo[key] = value
}

// UnmarshalJSON decodes the fixed fields and absorbs unknown keys into
// AdditionalInfo. Non-string values are kept as compact JSON text.
func (r *Reference) UnmarshalJSON(data []byte) error {
	var alias referenceAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Reference(alias)
	r.AdditionalInfo = nil

	for key, value := range raw {
		if knownFields[strings.ToLower(key)] {
			continue
		}
		if key == additionalInfoKey {
			var nested map[string]json.RawMessage
			if err := json.Unmarshal(value, &nested); err == nil {
				for k, v := range nested {
					r.setExtra(k, jsonText(v))
				}
				continue
			}
		}
		r.setExtra(key, jsonText(value))
	}
	return nil
}

// jsonText returns the string content of a JSON string, or the compact
// encoding of any other value.
func jsonText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// MarshalJSON encodes the fixed fields and flattens AdditionalInfo into
// the top level. Extra keys never override fixed fields.
func (r Reference) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(referenceAlias(r))
	if err != nil {
		return nil, err
	}
	if len(r.AdditionalInfo) == 0 {
		return data, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	for k, v := range r.AdditionalInfo {
		if knownFields[strings.ToLower(k)] {
			continue
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding additional field %s: %w", k, err)
		}
		obj[k] = encoded
	}
	return json.Marshal(obj)
}

// UnmarshalYAML decodes the fixed fields and absorbs unknown keys into
// AdditionalInfo. Non-scalar values are kept as their YAML text.
func (r *Reference) UnmarshalYAML(node *yaml.Node) error {
	var alias referenceAlias
	if err := node.Decode(&alias); err != nil {
		return err
	}
	*r = Reference(alias)
	r.AdditionalInfo = nil

	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		if knownFields[key] {
			continue
		}
		if key == additionalInfoKey && value.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(value.Content); j += 2 {
				r.setExtra(value.Content[j].Value, yamlText(value.Content[j+1]))
			}
			continue
		}
		r.setExtra(key, yamlText(value))
	}
	return nil
}

func yamlText(node *yaml.Node) string {
	if node.Kind == yaml.ScalarNode {
		return node.Value
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// MarshalYAML encodes the fixed fields followed by AdditionalInfo keys in
// sorted order.
func (r Reference) MarshalYAML() (any, error) {
	var node yaml.Node
	if err := node.Encode(referenceAlias(r)); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(r.AdditionalInfo))
	for k := range r.AdditionalInfo {
		if !knownFields[strings.ToLower(k)] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.AdditionalInfo[k]},
		)
	}
	return &node, nil
}
