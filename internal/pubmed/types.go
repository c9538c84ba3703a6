// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// E-utilities JSON structures.
type esearchResponse struct {
	Result *esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
	Error  string   `json:"ERROR"`
}

// esummaryResponse keeps result raw: it mixes a "uids" list with one
// object per uid.
type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type article struct {
	UID        string      `json:"uid"`
	PubDate    string      `json:"pubdate"`
	EPubDate   string      `json:"epubdate"`
	Source     string      `json:"source"`
	Authors    []author    `json:"authors"`
	Title      string      `json:"title"`
	Volume     string      `json:"volume"`
	Issue      string      `json:"issue"`
	Pages      string      `json:"pages"`
	ArticleIDs []articleID `json:"articleids"`
	Error      string      `json:"error"`
}

type author struct {
	Name     string `json:"name"`
	AuthType string `json:"authtype"`
}

type articleID struct {
	IDType string `json:"idtype"`
	Value  string `json:"value"`
}

func (a article) toResult() types.SearchResult {
	r := types.SearchResult{
		ID:      a.UID,
		Title:   strings.TrimSpace(a.Title),
		Authors: []string{},
		Year:    parseYear(a.PubDate),
		Journal: strings.TrimSpace(a.Source),
		Volume:  strings.TrimSpace(a.Volume),
		Issue:   strings.TrimSpace(a.Issue),
		Pages:   strings.TrimSpace(a.Pages),
		PubDate: a.PubDate,
	}
	for _, au := range a.Authors {
		// Collective names are authors too; editors and other roles are not.
		if au.Name == "" || (au.AuthType != "" && au.AuthType != "Author" && au.AuthType != "CollectiveName") {
			continue
		}
		r.Authors = append(r.Authors, au.Name)
	}
	for _, id := range a.ArticleIDs {
		if strings.EqualFold(id.IDType, "doi") && id.Value != "" {
			r.DOI = id.Value
			break
		}
	}
	return r
}

// parseYear reads the leading whitespace-delimited token of a PubMed date
// ("2023 Jan 5") as the year, or 0 when it is not an integer.
func parseYear(pubdate string) int {
	fields := strings.Fields(pubdate)
	if len(fields) == 0 {
		return 0
	}
	year, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return year
}
