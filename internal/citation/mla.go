// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pdiddy/citation-engine/pkg/types"

// renderMLA: A, B, and C. Title. Container, vol. V, no. I, Year, pp. P. DOI: DOI
func renderMLA(r types.Reference) []Fragment {
	var b builder
	b.add(r.HasAuthors(), Author, serialAuthors(r.Authors), lit(". "))
	b.add(true, Title, emph(Title, r.Title), lit(". "))
	b.add(r.Container != "", Container, emph(Container, r.Container), lit(", "))
	b.add(r.Volume != 0, Volume,
		lit("vol. "), num(Volume, r.Volume), lit(", "),
		opt(r.Issue != 0, lit("no. "), num(Issue, r.Issue), lit(", ")))
	b.add(r.Year != 0, Year, num(Year, r.Year), lit(", "))
	b.add(r.Pages != "", Pages, lit("pp. "), val(Pages, r.Pages), lit(". "))
	b.add(r.DOI != "", DOI, lit("DOI: "), val(DOI, r.DOI))
	return b.fragments()
}
