// Package page serves the informational pages (about, faq, contact...) written as
// markdown files with a YAML frontmatter block.
package page

import (
	"bytes"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/adspirelabs/punotes/core"
)

var (
	// errors
	ErrNotFound = errors.New("page not found")

	yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)
	titleCaser = cases.Title(language.English)
)

// Link kinds.
const (
	LinkInternal  = "internal"
	LinkExternal  = "external"
	LinkForm      = "form"
	LinkEmbed     = "embed"
	LinkEmail     = "email"
	LinkWhatsApp  = "whatsapp"
	LinkCommunity = "community"
)

type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
	Kind  string `yaml:"kind" json:"kind"`
}

// IsExternal reports whether the link leaves the site (opens in a new tab).
func (l Link) IsExternal() bool {
	return l.Kind != LinkInternal && l.Kind != LinkEmail
}

type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Notice is a site-wide announcement shown until the visitor dismisses it for the day.
type Notice struct {
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
	Link  *Link  `yaml:"link" json:"link,omitempty"`
}

type meta struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Order       int     `yaml:"order"`
	Links       []Link  `yaml:"links"`
	FAQs        []FAQ   `yaml:"faqs"`
	Notice      *Notice `yaml:"notice"`
}

type Page struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Order       int     `json:"order"`
	Links       []Link  `json:"links"`
	FAQs        []FAQ   `json:"faqs,omitempty"`
	Notice      *Notice `json:"notice,omitempty"`
	HTML        string  `json:"html"`
}

// LinksOfKind returns the page links of the given kind.
func (p Page) LinksOfKind(kind string) []Link {
	var out []Link
	for _, l := range p.Links {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}

// Store holds the rendered pages, keyed by slug.
type Store struct {
	pages map[string]Page
}

// Load renders every markdown file of fsys matching pattern (e.g. "pages/**/*.md").
// The slug of a page is its file name without extension.
func Load(fsys fs.FS, pattern string) (*Store, error) {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "globbing %s", pattern)
	}

	s := &Store{pages: make(map[string]Page, len(matches))}
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "reading %s", name)
		}
		p, err := parse(strings.TrimSuffix(path.Base(name), path.Ext(name)), data)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "parsing %s", name)
		}
		s.pages[p.Slug] = p
	}
	return s, nil
}

func parse(slug string, data []byte) (Page, error) {
	var m meta
	body, err := frontmatter.Parse(bytes.NewReader(data), &m, yamlFormat)
	if err != nil {
		return Page{}, err
	}
	html, err := core.RenderMarkdown(body)
	if err != nil {
		return Page{}, err
	}
	if m.Notice != nil && strings.TrimSpace(m.Notice.Text) == "" {
		return Page{}, pkgerrors.New("notice without text")
	}
	title := m.Title
	if title == "" {
		title = titleCaser.String(strings.ReplaceAll(slug, "-", " "))
	}
	return Page{
		Slug:        slug,
		Title:       title,
		Description: m.Description,
		Order:       m.Order,
		Links:       m.Links,
		FAQs:        m.FAQs,
		Notice:      m.Notice,
		HTML:        html,
	}, nil
}

func (s *Store) Get(slug string) (Page, error) {
	p, ok := s.pages[core.CleanString(slug, true /* lower */)]
	if !ok {
		return Page{}, ErrNotFound
	}
	return p, nil
}

// Notice returns the notice of the first page, in List order, that carries one.
func (s *Store) Notice() *Notice {
	for _, p := range s.List() {
		if p.Notice != nil {
			return p.Notice
		}
	}
	return nil
}

// List returns the pages by Order, then slug.
func (s *Store) List() []Page {
	pages := make([]Page, 0, len(s.pages))
	for _, p := range s.pages {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool {
		if pages[i].Order != pages[j].Order {
			return pages[i].Order < pages[j].Order
		}
		return pages[i].Slug < pages[j].Slug
	})
	return pages
}
