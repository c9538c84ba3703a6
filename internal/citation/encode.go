// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// Encoder converts a Rendering into a concrete representation.
type Encoder interface {
	Encode(Rendering) string
}

var encoders = map[types.OutputFormat]Encoder{
	types.FormatHTML:     HTMLEncoder{},
	types.FormatText:     TextEncoder{},
	types.FormatMarkdown: MarkdownEncoder{},
	types.FormatJSON:     JSONEncoder{},
}

// EncoderFor returns the encoder for format, or the HTML encoder when the
// format is unknown.
func EncoderFor(format types.OutputFormat) Encoder {
	if e, ok := encoders[format]; ok {
		return e
	}
	return HTMLEncoder{}
}

// HTMLEncoder wraps the citation in a paragraph classed "<style>-reference"
// and each field value in a span classed by its kind. Emphasis is left to
// the stylesheet.
type HTMLEncoder struct{}

func (HTMLEncoder) Encode(r Rendering) string {
	var b strings.Builder
	b.WriteString(`<p class="`)
	b.WriteString(r.Style.Slug())
	b.WriteString(`-reference">`)
	for _, s := range r.Segments() {
		if s.Kind == Literal {
			b.WriteString(html.EscapeString(s.Text))
			continue
		}
		b.WriteString(`<span class="`)
		b.WriteString(string(s.Kind))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(s.Text))
		b.WriteString(`</span>`)
	}
	b.WriteString(`</p>`)
	return b.String()
}

// TextEncoder emits the citation as plain text.
type TextEncoder struct{}

func (TextEncoder) Encode(r Rendering) string { return r.Text() }

// MarkdownEncoder emits plain text with emphasised fields in *asterisks*.
type MarkdownEncoder struct{}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
)

func (MarkdownEncoder) Encode(r Rendering) string {
	var b strings.Builder
	for _, s := range r.Segments() {
		text := markdownEscaper.Replace(s.Text)
		if s.Emphasis {
			b.WriteString("*" + text + "*")
			continue
		}
		b.WriteString(text)
	}
	return b.String()
}

// JSONEncoder emits the style, the plain text, and the tagged segments.
type JSONEncoder struct{}

type jsonRendering struct {
	Style     string    `json:"style"`
	Text      string    `json:"text"`
	Fragments []Segment `json:"fragments"`
}

func (JSONEncoder) Encode(r Rendering) string {
	segs := r.Segments()
	if segs == nil {
		segs = []Segment{}
	}
	out, err := json.Marshal(jsonRendering{
		Style:     r.Style.String(),
		Text:      r.Text(),
		Fragments: segs,
	})
	if err != nil {
		return "{}"
	}
	return string(out)
}
