// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pdiddy/citation-engine/pkg/types"

// vancouverAuthorLimit is the number of authors printed before ", et al".
const vancouverAuthorLimit = 6

// renderVancouver: Surname I, Surname I. Title. Container. Year;V(I):P. doi: DOI
func renderVancouver(r types.Reference) []Fragment {
	var b builder
	hasAuthors := r.HasAuthors()
	b.add(hasAuthors, Author, abbreviatedAuthors(r.Authors, vancouverAuthorLimit, ""))
	b.sep(hasAuthors, ". ")
	b.add(true, Title, val(Title, r.Title), lit(". "))
	b.add(r.Container != "", Container, emph(Container, r.Container), lit(". "))
	b.add(r.Year != 0, Year, num(Year, r.Year))
	// The year joins the volume with ';' and is closed with ". " otherwise.
	b.sep(r.Year != 0 && r.Volume != 0, ";")
	b.sep(r.Year != 0 && r.Volume == 0, ". ")
	b.add(r.Volume != 0, Volume,
		num(Volume, r.Volume),
		opt(r.Issue != 0, lit("("), num(Issue, r.Issue), lit(")")),
		lit(":"))
	b.add(r.Pages != "", Pages, val(Pages, r.Pages), lit(". "))
	b.add(r.DOI != "", DOI, lit("doi: "), val(DOI, r.DOI))
	return b.fragments()
}
