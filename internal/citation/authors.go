// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"strings"
	"unicode/utf8"
)

// names drops blank entries and trims the rest.
func names(authors []string) []string {
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// plainAuthors joins names with ", " as given.
func plainAuthors(authors []string) []Segment {
	var segs []Segment
	for i, a := range names(authors) {
		if i > 0 {
			segs = append(segs, lit(", ")...)
		}
		segs = append(segs, val(Author, a)...)
	}
	return segs
}

// serialAuthors joins names with ", " and puts ", and " before the last.
// A single name has no connector.
func serialAuthors(authors []string) []Segment {
	list := names(authors)
	var segs []Segment
	for i, a := range list {
		switch {
		case i == 0:
		case i == len(list)-1:
			segs = append(segs, lit(", and ")...)
		default:
			segs = append(segs, lit(", ")...)
		}
		segs = append(segs, val(Author, a)...)
	}
	return segs
}

// abbreviatedAuthors prints each name as "surname initial" followed by
// mark. When limit is positive at most limit names are printed and ", et al"
// is appended if more exist.
func abbreviatedAuthors(authors []string, limit int, mark string) []Segment {
	list := names(authors)
	shown := list
	if limit > 0 && len(list) > limit {
		shown = list[:limit]
	}
	var segs []Segment
	for i, a := range shown {
		if i > 0 {
			segs = append(segs, lit(", ")...)
		}
		segs = append(segs, val(Author, surnameInitial(a))...)
		if mark != "" {
			segs = append(segs, lit(mark)...)
		}
	}
	if len(shown) < len(list) {
		segs = append(segs, lit(", et al")...)
	}
	return segs
}

// surnameInitial takes the last whitespace-delimited token as the surname
// and the first rune of the whole name as the initial, so "Smith, John"
// becomes "John S".
func surnameInitial(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	initial, _ := utf8.DecodeRuneInString(name)
	return fields[len(fields)-1] + " " + string(initial)
}
