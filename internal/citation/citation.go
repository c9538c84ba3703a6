// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation renders reference records as citations in six academic
// styles. Rendering is a pure function: it performs no I/O, keeps no state,
// and never fails. A missing optional field omits its fragment.
//
// Each style renderer produces a Rendering, an ordered list of per-field
// fragments. An Encoder turns a Rendering into its concrete form (HTML,
// plain text, Markdown, or JSON), so new formats need no renderer changes.
package citation

import "github.com/pdiddy/citation-engine/pkg/types"

type renderer func(types.Reference) []Fragment

// renderers maps every style to its renderer. The package tests walk
// types.Styles() so a style without an entry fails the build's test run.
var renderers = map[types.Style]renderer{
	types.APA:       renderAPA,
	types.MLA:       renderMLA,
	types.Chicago:   renderChicago,
	types.Harvard:   renderHarvard,
	types.Vancouver: renderVancouver,
	types.IEEE:      renderIEEE,
}

// Render lays out ref in the given style. Values outside the Style
// enumeration render as APA.
func Render(ref types.Reference, style types.Style) Rendering {
	fn, ok := renderers[style]
	if !ok {
		style, fn = types.APA, renderAPA
	}
	return Rendering{Style: style, Fragments: fn(ref)}
}

// Format renders ref in style and encodes it in format.
func Format(ref types.Reference, style types.Style, format types.OutputFormat) string {
	return EncoderFor(format).Encode(Render(ref, style))
}
