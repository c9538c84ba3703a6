// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pdiddy/citation-engine/pkg/types"

// renderHarvard: Authors (Year) Title, Container, V(I), pp. P. DOI: DOI
func renderHarvard(r types.Reference) []Fragment {
	var b builder
	hasAuthors := r.HasAuthors()
	b.add(hasAuthors, Author, plainAuthors(r.Authors))
	b.add(r.Year != 0, Year, lit(" ("), num(Year, r.Year), lit(")"))
	b.sep(hasAuthors || r.Year != 0, " ")
	b.add(true, Title, val(Title, r.Title), lit(","))
	b.add(r.Container != "", Container, lit(" "), emph(Container, r.Container), lit(","))
	b.add(r.Volume != 0, Volume,
		lit(" "), num(Volume, r.Volume),
		opt(r.Issue != 0, lit("("), num(Issue, r.Issue), lit(")")),
		lit(","))
	b.add(r.Pages != "", Pages, lit(" pp. "), val(Pages, r.Pages), lit("."))
	b.add(r.DOI != "", DOI, lit(" DOI: "), val(DOI, r.DOI))
	return b.fragments()
}
