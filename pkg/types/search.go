// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strconv"
	"strings"
)

// SearchResult is a candidate reference returned by a literature search.
// The first four fields form the stable wire shape; the rest are filled when
// the source provides them.
type SearchResult struct {
	// ID is the source identifier (a PubMed uid).
	ID string `json:"id" yaml:"id"`

	Title   string   `json:"title" yaml:"title"`
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the leading token of the publication date, 0 when unparsable.
	Year int `json:"year" yaml:"year"`

	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Volume  string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue   string `json:"issue,omitempty" yaml:"issue,omitempty"`
	Pages   string `json:"pages,omitempty" yaml:"pages,omitempty"`
	DOI     string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// PubDate is the raw publication date string from the source.
	PubDate string `json:"pubdate,omitempty" yaml:"pubdate,omitempty"`

	// FormattedReference is set when the caller asked for a rendered citation.
	FormattedReference string `json:"formatted_reference,omitempty" yaml:"formatted_reference,omitempty"`
}

// Reference maps the result into a reference record. The trailing period
// PubMed puts on titles is dropped since every style adds its own. Volume
// and issue strings that are not plain integers are kept in AdditionalInfo.
func (r SearchResult) Reference() Reference {
	ref := Reference{
		Authors:         r.Authors,
		Year:            r.Year,
		Title:           strings.TrimSuffix(strings.TrimSpace(r.Title), "."),
		Container:       r.Journal,
		Pages:           r.Pages,
		DOI:             r.DOI,
		PublicationDate: r.PubDate,
	}
	if r.ID != "" {
		ref.setExtra("pmid", r.ID)
	}
	if n, ok := parseNumber(r.Volume); ok {
		ref.Volume = n
	} else if v := strings.TrimSpace(r.Volume); v != "" {
		ref.setExtra("volume_text", v)
	}
	if n, ok := parseNumber(r.Issue); ok {
		ref.Issue = n
	} else if v := strings.TrimSpace(r.Issue); v != "" {
		ref.setExtra("issue_text", v)
	}
	return ref
}

func parseNumber(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
