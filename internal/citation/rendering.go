// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// Kind tags a segment with the reference field it came from.
type Kind string

const (
	Literal   Kind = "literal"
	Author    Kind = "author"
	Year      Kind = "year"
	Title     Kind = "title"
	Container Kind = "container"
	Volume    Kind = "volume"
	Issue     Kind = "issue"
	Pages     Kind = "pages"
	DOI       Kind = "doi"
)

// Segment is a run of output text. Literal segments carry punctuation and
// labels; every other kind carries a field value.
type Segment struct {
	Kind     Kind   `json:"kind"`
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// Fragment is everything one field contributes to a citation, its own
// delimiters included. Separator fragments have Field == Literal.
type Fragment struct {
	Field    Kind
	Segments []Segment
}

// Rendering is the intermediate form produced by a style renderer and
// consumed by an Encoder.
type Rendering struct {
	Style     types.Style
	Fragments []Fragment
}

// Segments flattens the fragments and normalises both ends: leading
// whitespace is dropped, trailing whitespace is dropped, and a dangling
// ',' ';' or ':' at the very end becomes '.'.
func (r Rendering) Segments() []Segment {
	var segs []Segment
	for _, f := range r.Fragments {
		for _, s := range f.Segments {
			if s.Text != "" {
				segs = append(segs, s)
			}
		}
	}

	for len(segs) > 0 && segs[0].Kind == Literal {
		segs[0].Text = strings.TrimLeftFunc(segs[0].Text, unicode.IsSpace)
		if segs[0].Text != "" {
			break
		}
		segs = segs[1:]
	}

	for len(segs) > 0 && segs[len(segs)-1].Kind == Literal {
		last := &segs[len(segs)-1]
		text := strings.TrimRightFunc(last.Text, unicode.IsSpace)
		if text == "" {
			segs = segs[:len(segs)-1]
			continue
		}
		switch text[len(text)-1] {
		case ',', ';', ':':
			text = text[:len(text)-1] + "."
		}
		last.Text = text
		break
	}
	return segs
}

// Text returns the rendering as plain text.
func (r Rendering) Text() string {
	var b strings.Builder
	for _, s := range r.Segments() {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Fragment returns the fragment contributed by field, if any.
func (r Rendering) Fragment(field Kind) (Fragment, bool) {
	for _, f := range r.Fragments {
		if f.Field == field {
			return f, true
		}
	}
	return Fragment{}, false
}

// builder accumulates fragments. Every renderer goes through add so the
// omission rule lives in one place: a fragment whose field is absent is not
// emitted at all, delimiters included.
type builder struct {
	frags []Fragment
}

func (b *builder) add(present bool, field Kind, parts ...[]Segment) {
	if !present {
		return
	}
	var segs []Segment
	for _, p := range parts {
		segs = append(segs, p...)
	}
	if len(segs) == 0 {
		return
	}
	b.frags = append(b.frags, Fragment{Field: field, Segments: segs})
}

// sep emits a separator that belongs to no field.
func (b *builder) sep(present bool, text string) {
	b.add(present, Literal, lit(text))
}

func (b *builder) fragments() []Fragment { return b.frags }

func lit(s string) []Segment { return []Segment{{Kind: Literal, Text: s}} }

func val(k Kind, v string) []Segment { return []Segment{{Kind: k, Text: v}} }

func emph(k Kind, v string) []Segment { return []Segment{{Kind: k, Text: v, Emphasis: true}} }

func num(k Kind, n int) []Segment { return val(k, strconv.Itoa(n)) }

// opt returns parts only when present holds.
func opt(present bool, parts ...[]Segment) []Segment {
	if !present {
		return nil
	}
	var segs []Segment
	for _, p := range parts {
		segs = append(segs, p...)
	}
	return segs
}
