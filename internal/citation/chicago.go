// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pdiddy/citation-engine/pkg/types"

// renderChicago: A, B, and C. Title Container V, no. I (Year): P. https://doi.org/DOI
func renderChicago(r types.Reference) []Fragment {
	var b builder
	hasAuthors := r.HasAuthors()
	b.add(hasAuthors, Author, serialAuthors(r.Authors))
	b.sep(hasAuthors, ". ")
	b.add(true, Title, val(Title, r.Title), lit(" "))
	b.add(r.Container != "", Container, emph(Container, r.Container), lit(" "))
	b.add(r.Volume != 0, Volume,
		num(Volume, r.Volume),
		opt(r.Issue != 0, lit(", no. "), num(Issue, r.Issue)),
		lit(" "))
	b.add(r.Year != 0, Year, lit("("), num(Year, r.Year), lit("): "))
	b.add(r.Pages != "", Pages, val(Pages, r.Pages), lit(". "))
	b.add(r.DOI != "", DOI, val(DOI, doiURL+r.DOI))
	return b.fragments()
}
