// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pdiddy/citation-engine/pkg/types"

// renderAPA: Authors (Year). Title. Container vol. V, no. I, pp. P. https://doi.org/DOI
func renderAPA(r types.Reference) []Fragment {
	var b builder
	hasAuthors := r.HasAuthors()
	b.add(hasAuthors, Author, plainAuthors(r.Authors))
	b.add(r.Year != 0, Year, lit(" ("), num(Year, r.Year), lit(")"))
	b.sep(hasAuthors || r.Year != 0, ". ")
	b.add(true, Title, emph(Title, r.Title), lit(". "))
	b.add(r.Container != "", Container, emph(Container, r.Container), lit(" "))
	b.add(r.Volume != 0, Volume,
		lit("vol. "), num(Volume, r.Volume),
		opt(r.Issue != 0, lit(", no. "), num(Issue, r.Issue)),
		lit(", "))
	b.add(r.Pages != "", Pages, lit("pp. "), val(Pages, r.Pages), lit(". "))
	b.add(r.DOI != "", DOI, val(DOI, doiURL+r.DOI))
	return b.fragments()
}

const doiURL = "https://doi.org/"
