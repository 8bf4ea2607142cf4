package blog

import (
	"time"

	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/search"
)

var Categories = []string{
	"For +2 Science/Management",
	"For BBA Students",
	"For B.E./Engineering Students",
	"Exam Tips & Study Hacks",
	"Career Guidance",
	"Educational News & Notices",
}

const publishDateLayout = "2006-01-02"

type Post struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Category       string   `json:"category"`
	Author         string   `json:"author"`
	PublishDate    string   `json:"publishDate"`
	ReadTime       string   `json:"readTime"`
	Excerpt        string   `json:"excerpt"`
	Content        string   `json:"content"`
	Tags           []string `json:"tags"`
	ImageURL       string   `json:"imageUrl"`
	SEOTitle       string   `json:"seoTitle,omitempty"`
	SEODescription string   `json:"seoDescription,omitempty"`
	Featured       bool     `json:"featured"`
}

func (p Post) Clone() Post {
	c := p
	c.Tags = append([]string(nil), p.Tags...)
	return c
}

// FormattedDate renders the publish date as "May 12, 2024". Unparseable dates are returned as-is.
func (p Post) FormattedDate() string {
	t, err := time.Parse(publishDateLayout, p.PublishDate)
	if err != nil {
		return p.PublishDate
	}
	return t.Format("January 2, 2006")
}

// Rendered is a post with its markdown content converted to HTML.
type Rendered struct {
	Post
	FormattedDate string `json:"formattedDate"`
	HTML          string `json:"html"`
}

type Filter struct {
	Search   string `query:"search" json:"search"`
	Category string `query:"category" json:"category"`
}

func (f *Filter) Clean() {
	f.Search = core.CleanString(f.Search)
	f.Category = core.CleanString(f.Category)
}

// Match does a case-insensitive match on one of Title, Excerpt or a tag, AND the category facet.
func (f Filter) Match(p Post) bool {
	matchesSearch := search.ContainsFold(p.Title, f.Search) ||
		search.ContainsFold(p.Excerpt, f.Search) ||
		search.AnyContainsFold(p.Tags, f.Search)
	return matchesSearch && search.EqualFacet(f.Category, p.Category)
}

func Apply(posts []Post, f Filter) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

func Featured(posts []Post) []Post {
	out := make([]Post, 0)
	for _, p := range posts {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}
