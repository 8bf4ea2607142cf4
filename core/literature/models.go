package literature

import (
	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/search"
)

type Book struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Type        []string `json:"type"`
	DriveLink   string   `json:"driveLink"`
	Description string   `json:"description"`
}

func (b Book) Clone() Book {
	c := b
	c.Type = append([]string(nil), b.Type...)
	return c
}

type Filter struct {
	Search   string `query:"search" json:"search"`
	Category string `query:"category" json:"category"`
	Type     string `query:"type" json:"type"`
}

func (f *Filter) Clean() {
	f.Search = core.CleanString(f.Search)
	f.Category = core.CleanString(f.Category)
	f.Type = core.CleanString(f.Type)
}

// Match applies AND on all predicates. Search does a case-insensitive match on one of
// Title, Author or Description.
func (f Filter) Match(b Book) bool {
	matchesSearch := search.ContainsFold(b.Title, f.Search) ||
		search.ContainsFold(b.Author, f.Search) ||
		search.ContainsFold(b.Description, f.Search)
	return matchesSearch &&
		search.EqualFacet(f.Category, b.Category) &&
		search.IncludesFacet(f.Type, b.Type)
}

func Apply(books []Book, f Filter) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

// Categories returns the sorted distinct categories.
func Categories(books []Book) []string {
	cats := make([]string, 0, len(books))
	for _, b := range books {
		cats = append(cats, b.Category)
	}
	return search.Unique(cats, true)
}

// Types returns the sorted distinct types across all books.
func Types(books []Book) []string {
	var types []string
	for _, b := range books {
		types = append(types, b.Type...)
	}
	return search.Unique(types, true)
}
