package resource

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/search"
)

type Resource struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	College     string   `json:"college"`
	Batch       string   `json:"batch"`
	Type        []string `json:"type"`
	DriveLink   string   `json:"driveLink"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate,omitempty"`
}

func (r Resource) Clone() Resource {
	c := r
	c.Type = append([]string(nil), r.Type...)
	return c
}

// Filter narrows the resource listing. Empty or "all" facets are ignored.
type Filter struct {
	Search   string `query:"search" json:"search"`
	Category string `query:"category" json:"category"`
	College  string `query:"college" json:"college"`
	Batch    string `query:"batch" json:"batch"`
	Type     string `query:"type" json:"type"`
}

func (f *Filter) Clean() {
	f.Search = core.CleanString(f.Search)
	f.Category = core.CleanString(f.Category)
	f.College = core.CleanString(f.College)
	f.Batch = core.CleanString(f.Batch)
	f.Type = core.CleanString(f.Type)
}

// Match applies AND on all predicates. Search does a case-insensitive match on one of
// Title, Description or Category.
func (f Filter) Match(r Resource) bool {
	matchesSearch := search.ContainsFold(r.Title, f.Search) ||
		search.ContainsFold(r.Description, f.Search) ||
		search.ContainsFold(r.Category, f.Search)
	return matchesSearch &&
		search.EqualFacet(f.Category, r.Category) &&
		search.EqualFacet(f.College, r.College) &&
		search.EqualFacet(f.Batch, r.Batch) &&
		search.IncludesFacet(f.Type, r.Type)
}

func Apply(resources []Resource, f Filter) []Resource {
	out := make([]Resource, 0, len(resources))
	for _, r := range resources {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortByTitle orders resources alphabetically by title with locale-aware collation.
func SortByTitle(resources []Resource) {
	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(resources, func(i, j int) bool {
		return coll.CompareString(resources[i].Title, resources[j].Title) < 0
	})
}

// Facets are the select options of a listing, in listing order.
type Facets struct {
	Categories []string `json:"categories"`
	Colleges   []string `json:"colleges"`
	Batches    []string `json:"batches"`
}

func FacetsOf(resources []Resource) Facets {
	var cats, colleges, batches []string
	for _, r := range resources {
		cats = append(cats, r.Category)
		colleges = append(colleges, r.College)
		batches = append(batches, r.Batch)
	}
	return Facets{
		Categories: search.Unique(cats, false),
		Colleges:   search.Unique(colleges, false),
		Batches:    search.Unique(batches, false),
	}
}
