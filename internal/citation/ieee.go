// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pdiddy/citation-engine/pkg/types"

// renderIEEE: Surname I., Surname I. Title, Container, vol. V, no. I, pp. P, Year. DOI: DOI
func renderIEEE(r types.Reference) []Fragment {
	var b builder
	hasAuthors := r.HasAuthors()
	b.add(hasAuthors, Author, abbreviatedAuthors(r.Authors, 0, "."))
	b.sep(hasAuthors, " ")
	b.add(true, Title, val(Title, r.Title), lit(","))
	b.add(r.Container != "", Container, lit(" "), emph(Container, r.Container), lit(","))
	b.add(r.Volume != 0, Volume,
		lit(" vol. "), num(Volume, r.Volume), lit(","),
		opt(r.Issue != 0, lit(" no. "), num(Issue, r.Issue), lit(",")))
	b.add(r.Pages != "", Pages, lit(" pp. "), val(Pages, r.Pages), lit(","))
	b.add(r.Year != 0, Year, lit(" "), num(Year, r.Year), lit("."))
	b.add(r.DOI != "", DOI, lit(" DOI: "), val(DOI, r.DOI))
	return b.fragments()
}
