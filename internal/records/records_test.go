// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-engine/pkg/types"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"single object", `{"title": "One", "authors": ["A B"], "pmid": "7"}`, 1},
		{"list", `[{"title": "One"}, {"title": "Two", "year": 2001}]`, 2},
		{"leading whitespace", "\n\t [ {\"title\": \"One\"} ]", 1},
		{"empty input", "   ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs, err := Decode(strings.NewReader(tt.input), FormatJSON)
			require.NoError(t, err)
			assert.Len(t, refs, tt.want)
		})
	}

	refs, err := Decode(strings.NewReader(`{"title": "One", "pmid": "7"}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "7", refs[0].AdditionalInfo["pmid"])
}

func TestDecodeJSONErrors(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"title": `), FormatJSON)
	assert.Error(t, err)
	_, err = Decode(strings.NewReader(`[{"title": 3}]`), FormatJSON)
	assert.Error(t, err)
	_, err = Decode(strings.NewReader(`{}`), Format("bibtex"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeYAML(t *testing.T) {
	input := `
- title: First
  authors: [Ann Lee]
  year: 2020
  shelf: B3
- title: Second
  volume: 4
`
	refs, err := Decode(strings.NewReader(input), FormatYAML)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "First", refs[0].Title)
	assert.Equal(t, 2020, refs[0].Year)
	assert.Equal(t, map[string]string{"shelf": "B3"}, refs[0].AdditionalInfo)
	assert.Equal(t, 4, refs[1].Volume)

	refs, err = Decode(strings.NewReader("title: Only\n"), FormatYAML)
	require.NoError(t, err)
	require.Len(t, refs, 1)

	_, err = Decode(strings.NewReader("- just a string\n"), FormatYAML)
	assert.Error(t, err)
}

const sampleCSL = `
- id: smith2023
  type: article-journal
  title: A Study of Reference Styles
  author:
    - family: Smith
      given: John
    - literal: The Citation Consortium
  container-title: Journal of Citation Studies
  volume: 5
  issue: "2"
  page: 123-145
  issued:
    date-parts: [[2023, 4, 1]]
  DOI: 10.1234/jcs.2023.01
  language: en
- id: book1
  type: book
  title: Styles
  volume: IV
  publisher: Press
  publisher-place: Boston
  issued:
    raw: circa 1990
`

func TestDecodeCSL(t *testing.T) {
	refs, err := Decode(strings.NewReader(sampleCSL), FormatCSL)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	first := refs[0]
	assert.Equal(t, []string{"Smith, John", "The Citation Consortium"}, first.Authors)
	assert.Equal(t, "Journal of Citation Studies", first.Container)
	assert.Equal(t, 5, first.Volume)
	assert.Equal(t, 2, first.Issue)
	assert.Equal(t, 2023, first.Year)
	assert.Equal(t, "2023-04-01", first.PublicationDate)
	assert.Equal(t, "123-145", first.Pages)
	assert.Equal(t, map[string]string{
		"id":       "smith2023",
		"type":     "article-journal",
		"language": "en",
	}, first.AdditionalInfo)

	second := refs[1]
	assert.Zero(t, second.Volume)
	assert.Zero(t, second.Year)
	assert.Equal(t, "circa 1990", second.PublicationDate)
	assert.Equal(t, "Boston", second.Location)
	assert.Equal(t, "IV", second.AdditionalInfo["volume_text"])
}

func TestDecodeCSLJSON(t *testing.T) {
	input := `[{"id": "x", "type": "article", "title": "JSON item", "author": [{"family": "Doe", "given": "Jane"}], "issued": {"date-parts": [["2019"]]}}]`
	refs, err := Decode(strings.NewReader(input), FormatCSL)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, []string{"Doe, Jane"}, refs[0].Authors)
	assert.Equal(t, 2019, refs[0].Year)
}

func TestEncodeCSLRoundTrip(t *testing.T) {
	refs := []types.Reference{
		{
			Authors:   []string{"Smith, John", "Jane Doe", "Plato"},
			Year:      2023,
			Title:     "A Study of Reference Styles",
			Container: "Journal of Citation Studies",
			Volume:    5,
			Issue:     2,
			Pages:     "123-145",
			DOI:       "10.1234/jcs.2023.01",
		},
		{Title: "Untitled draft", AdditionalInfo: map[string]string{"pmid": "99"}},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeCSL(refs, &buf))
	out := buf.String()
	assert.Contains(t, out, "id: 10.1234/jcs.2023.01")
	assert.Contains(t, out, `id: "99"`)
	assert.Contains(t, out, "type: article-journal")
	assert.Contains(t, out, "volume: 5")
	assert.Contains(t, out, "literal: Plato")

	back, err := Decode(strings.NewReader(out), FormatCSL)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, []string{"Smith, John", "Doe, Jane", "Plato"}, back[0].Authors)
	assert.Equal(t, 2023, back[0].Year)
	assert.Equal(t, 5, back[0].Volume)
	assert.Equal(t, 2, back[0].Issue)
	assert.Equal(t, refs[0].DOI, back[0].DOI)
	assert.Equal(t, "99", back[1].AdditionalInfo["id"])
}

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want CSLName
	}{
		{"Smith, John", CSLName{Family: "Smith", Given: "John"}},
		{"John Smith", CSLName{Family: "Smith", Given: "John"}},
		{"Mary Jane Watson", CSLName{Family: "Watson", Given: "Mary Jane"}},
		{"Plato", CSLName{Literal: "Plato"}},
		{"  ", CSLName{}},
		{"Smith,", CSLName{Literal: "Smith,"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAuthorName(tt.in))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("ris")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, FormatYAML, FormatForPath("refs.yaml"))
	assert.Equal(t, FormatCSL, FormatForPath("refs.csl"))
	assert.Equal(t, FormatJSON, FormatForPath("refs.json"))
	assert.Equal(t, FormatJSON, FormatForPath("-"))
}
