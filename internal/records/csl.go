// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// CSLItem is the subset of a CSL (Citation Style Language) item that maps
// onto a reference record. Field names follow the CSL-JSON/CSL-YAML schema
// so files from Pandoc and reference managers load directly.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Editor         []CSLName `yaml:"editor,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         cslNumber `yaml:"volume,omitempty"`
	Issue          cslNumber `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Version        string    `yaml:"version,omitempty"`
	Number         string    `yaml:"number,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	PublisherPlace string    `yaml:"publisher-place,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	Accessed       *CSLDate  `yaml:"accessed,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts, or a raw string.
type CSLDate struct {
	DateParts [][]cslNumber `yaml:"date-parts,omitempty"`
	Raw       string        `yaml:"raw,omitempty"`
}

// cslNumber holds CSL "number or string" values such as volume and the
// elements of date-parts.
type cslNumber string

func (n *cslNumber) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number or string", node.Line)
	}
	*n = cslNumber(node.Value)
	return nil
}

func (n cslNumber) MarshalYAML() (any, error) {
	if i, ok := n.int(); ok {
		return i, nil
	}
	return string(n), nil
}

func (n cslNumber) IsZero() bool { return n == "" }

func (n cslNumber) int() (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(string(n)))
	if err != nil || i <= 0 {
		return 0, false
	}
	return i, true
}

// cslFields lists the keys FromCSL maps; anything else becomes additional info.
var cslFields = map[string]bool{
	"id": true, "type": true, "title": true, "author": true, "editor": true,
	"container-title": true, "volume": true, "issue": true, "page": true,
	"version": true, "number": true, "publisher": true, "publisher-place": true,
	"issued": true, "accessed": true, "DOI": true, "URL": true,
}

func decodeCSL(data []byte) ([]types.Reference, error) {
	items, err := yamlItems(data)
	if err != nil {
		return nil, err
	}
	refs := make([]types.Reference, 0, len(items))
	for i, node := range items {
		var item CSLItem
		if err := node.Decode(&item); err != nil {
			return nil, fmt.Errorf("parsing CSL item %d: %w", i+1, err)
		}
		ref := FromCSL(item)
		for j := 0; j+1 < len(node.Content); j += 2 {
			key, value := node.Content[j].Value, node.Content[j+1]
			if cslFields[key] || value.Kind != yaml.ScalarNode {
				continue
			}
			if ref.AdditionalInfo == nil {
				ref.AdditionalInfo = make(map[string]string)
			}
			ref.AdditionalInfo[key] = value.Value
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// FromCSL converts a CSL item into a reference record.
func FromCSL(item CSLItem) types.Reference {
	ref := types.Reference{
		Title:           item.Title,
		Container:       item.ContainerTitle,
		Pages:           item.Page,
		Version:         item.Version,
		Number:          item.Number,
		Publisher:       item.Publisher,
		Location:        item.PublisherPlace,
		DOI:             item.DOI,
		URL:             item.URL,
		PublicationDate: item.Issued.String(),
		AccessedDate:    item.Accessed.String(),
	}
	for _, n := range item.Author {
		if name := n.Display(); name != "" {
			ref.Authors = append(ref.Authors, name)
		}
	}
	for _, n := range item.Editor {
		if name := n.Display(); name != "" {
			ref.OtherContributors = append(ref.OtherContributors, name)
		}
	}
	ref.Volume, _ = item.Volume.int()
	ref.Issue, _ = item.Issue.int()
	ref.Year = item.Issued.Year()

	extra := map[string]string{}
	if item.ID != "" {
		extra["id"] = item.ID
	}
	if item.Type != "" {
		extra["type"] = item.Type
	}
	if ref.Volume == 0 && item.Volume != "" {
		extra["volume_text"] = string(item.Volume)
	}
	if ref.Issue == 0 && item.Issue != "" {
		extra["issue_text"] = string(item.Issue)
	}
	if len(extra) > 0 {
		ref.AdditionalInfo = extra
	}
	return ref
}

// ToCSL converts a reference record into a CSL item. The item id comes from
// additional info ("id", then "pmid"), then the DOI, then fallbackID.
func ToCSL(ref types.Reference, fallbackID string) CSLItem {
	item := CSLItem{
		ID:             firstNonEmpty(ref.AdditionalInfo["id"], ref.AdditionalInfo["pmid"], ref.DOI, fallbackID),
		Type:           firstNonEmpty(ref.AdditionalInfo["type"], "article-journal"),
		Title:          ref.Title,
		ContainerTitle: ref.Container,
		Page:           ref.Pages,
		Version:        ref.Version,
		Number:         ref.Number,
		Publisher:      ref.Publisher,
		PublisherPlace: ref.Location,
		DOI:            ref.DOI,
		URL:            ref.URL,
	}
	for _, a := range ref.Authors {
		if n := parseAuthorName(a); n != (CSLName{}) {
			item.Author = append(item.Author, n)
		}
	}
	for _, e := range ref.OtherContributors {
		if n := parseAuthorName(e); n != (CSLName{}) {
			item.Editor = append(item.Editor, n)
		}
	}
	if ref.Volume > 0 {
		item.Volume = cslNumber(strconv.Itoa(ref.Volume))
	}
	if ref.Issue > 0 {
		item.Issue = cslNumber(strconv.Itoa(ref.Issue))
	}
	if ref.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]cslNumber{{cslNumber(strconv.Itoa(ref.Year))}}}
	}
	if ref.AccessedDate != "" {
		item.Accessed = &CSLDate{Raw: ref.AccessedDate}
	}
	return item
}

// EncodeCSL writes references as a CSL-YAML list to w.
func EncodeCSL(refs []types.Reference, w io.Writer) error {
	items := make([]CSLItem, len(refs))
	for i, r := range refs {
		items[i] = ToCSL(r, fmt.Sprintf("ref-%d", i+1))
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// Display returns the name as "Family, Given", the family name alone, or
// the literal form.
func (n CSLName) Display() string {
	family, given := strings.TrimSpace(n.Family), strings.TrimSpace(n.Given)
	switch {
	case family != "" && given != "":
		return family + ", " + given
	case family != "":
		return family
	case given != "":
		return given
	}
	return strings.TrimSpace(n.Literal)
}

// Year returns the first date-part, or 0.
func (d *CSLDate) Year() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	y, _ := d.DateParts[0][0].int()
	return y
}

// String formats the date as YYYY[-MM[-DD]] from date-parts, or the raw text.
func (d *CSLDate) String() string {
	if d == nil {
		return ""
	}
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return d.Raw
	}
	parts := make([]string, 0, 3)
	for i, p := range d.DateParts[0] {
		if i == 3 {
			break
		}
		n, ok := p.int()
		if !ok {
			break
		}
		if i == 0 {
			parts = append(parts, fmt.Sprintf("%04d", n))
		} else {
			parts = append(parts, fmt.Sprintf("%02d", n))
		}
	}
	return strings.Join(parts, "-")
}

// parseAuthorName splits a display name into CSL family/given parts. A
// comma separates "Family, Given"; otherwise the last space does, with the
// last token as family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		family, given = strings.TrimSpace(family), strings.TrimSpace(given)
		if family != "" && given != "" {
			return CSLName{Family: family, Given: given}
		}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
