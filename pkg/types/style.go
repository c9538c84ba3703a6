// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStyle is returned when a style name matches no supported style.
var ErrUnknownStyle = errors.New("unknown citation style")

// ErrUnknownFormat is returned when a format name matches no output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Style identifies a citation style. The set is closed: adding a value
// requires a renderer in internal/citation, which its tests enforce.
type Style int

const (
	APA Style = iota
	MLA
	Chicago
	Harvard
	Vancouver
	IEEE

	styleCount
)

var styleNames = [styleCount]string{
	APA:       "APA",
	MLA:       "MLA",
	Chicago:   "Chicago",
	Harvard:   "Harvard",
	Vancouver: "Vancouver",
	IEEE:      "IEEE",
}

// Styles returns every supported style in declaration order.
func Styles() []Style {
	out := make([]Style, 0, styleCount)
	for s := APA; s < styleCount; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is one of the declared styles.
func (s Style) Valid() bool { return s >= APA && s < styleCount }

// String returns the wire name of the style (e.g. "Chicago").
func (s Style) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

// Slug returns the lowercase name used for markup class names.
func (s Style) Slug() string { return strings.ToLower(s.String()) }

// ParseStyle resolves a style name case-insensitively.
func ParseStyle(name string) (Style, error) {
	name = strings.TrimSpace(name)
	for s := APA; s < styleCount; s++ {
		if strings.EqualFold(styleNames[s], name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownStyle, name)
}

// MarshalText encodes the style by name.
func (s Style) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStyle, int(s))
	}
	return []byte(styleNames[s]), nil
}

// UnmarshalText decodes a style name.
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// OutputFormat selects the concrete representation of a rendered citation.
type OutputFormat string

const (
	// FormatHTML is inline markup: a paragraph tagged with the style's class
	// and one span per field.
	FormatHTML     OutputFormat = "html"
	FormatText     OutputFormat = "text"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
)

// OutputFormats returns every supported format, default first.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatHTML, FormatText, FormatMarkdown, FormatJSON}
}

// ParseOutputFormat resolves a format name case-insensitively. An empty
// name selects FormatHTML.
func ParseOutputFormat(name string) (OutputFormat, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return FormatHTML, nil
	}
	for _, f := range OutputFormats() {
		if strings.EqualFold(string(f), name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
}
