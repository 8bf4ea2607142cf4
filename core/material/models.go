package material

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/search"
)

// Material types. The vocabulary is closed.
const (
	TypeNotes        = "Notes"
	TypeQuestionBank = "Question Bank"
	TypeSolutions    = "Solutions"
	TypeImpFiles     = "Imp Files"
	TypeLiterature   = "Literature"
)

var (
	Types = []string{TypeNotes, TypeQuestionBank, TypeSolutions, TypeImpFiles, TypeLiterature}

	Streams = []Option{
		{Value: "bca", Label: "BCA (Bachelor of Computer Application)"},
		{Value: "bba", Label: "BBA (Bachelor of Business Administration)"},
		{Value: "bbs", Label: "BBS (Bachelor of Business Studies)"},
		{Value: "be", Label: "BE (Bachelor of Engineering)"},
		{Value: "bsc", Label: "BSc (Bachelor of Science)"},
	}

	Semesters = semesterOptions(MaxSemester)

	upper = cases.Upper(language.English)
)

const MaxSemester = 8

// Option is a facet value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func semesterOptions(n int) []Option {
	opts := make([]Option, 0, n)
	for i := 1; i <= n; i++ {
		s := strconv.Itoa(i)
		opts = append(opts, Option{Value: s, Label: s + OrdinalSuffix(s) + " Semester"})
	}
	return opts
}

// TypeKey is the tab key of a material type, e.g. "Question Bank" -> "questionbank".
func TypeKey(t string) string {
	return strings.ToLower(strings.Join(strings.Fields(t), ""))
}

// CanonicalType returns the vocabulary entry matching t by name or tab key.
func CanonicalType(t string) (string, bool) {
	key := TypeKey(t)
	for _, typ := range Types {
		if TypeKey(typ) == key {
			return typ, true
		}
	}
	return "", false
}

type Availability struct {
	Stream   string `json:"stream" validate:"required,stream"`
	Semester string `json:"semester" validate:"required,semester"`
}

// TypeList is a list of material types. Older dataset files hold a single string.
type TypeList []string

func (tl *TypeList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*tl = TypeList{}
		} else {
			*tl = TypeList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*tl = many
	return nil
}

type Material struct {
	ID          int            `json:"id"`
	AvailableIn []Availability `json:"availableIn"`
	Subject     string         `json:"subject"`
	Type        TypeList       `json:"type"`
	DriveLink   string         `json:"driveLink"`
	Description string         `json:"description"`
}

// HasType reports whether m carries the type t (compared by tab key).
func (m Material) HasType(t string) bool {
	key := TypeKey(t)
	for _, typ := range m.Type {
		if TypeKey(typ) == key {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate stored slices.
func (m Material) Clone() Material {
	c := m
	c.AvailableIn = append([]Availability(nil), m.AvailableIn...)
	c.Type = append(TypeList(nil), m.Type...)
	return c
}

// FormatAvailability renders e.g. "BCA - 1st Semester, BBA - 2nd Semester".
func FormatAvailability(availableIn []Availability) string {
	parts := make([]string, 0, len(availableIn))
	for _, a := range availableIn {
		parts = append(parts, upper.String(a.Stream)+" - "+a.Semester+OrdinalSuffix(a.Semester)+" Semester")
	}
	return strings.Join(parts, ", ")
}

// OrdinalSuffix returns the english ordinal suffix of a numeric string ("1" -> "st").
func OrdinalSuffix(num string) string {
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return ""
	}
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// StreamLabel returns the display label of a stream code.
func StreamLabel(stream string) string {
	for _, s := range Streams {
		if s.Value == stream {
			return s.Label
		}
	}
	return upper.String(stream)
}

// NewMaterial contains information needed to create a new Material.
type NewMaterial struct {
	Subject     string         `json:"subject" validate:"notblank"`
	AvailableIn []Availability `json:"availableIn" validate:"required,min=1,dive"`
	Type        TypeList       `json:"type" validate:"required,min=1,dive,studytype"`
	DriveLink   string         `json:"driveLink" validate:"required,url"`
	Description string         `json:"description"`
}

func (nm *NewMaterial) Clean() {
	nm.Subject = core.CleanString(nm.Subject)
	nm.DriveLink = core.CleanString(nm.DriveLink)
	nm.Description = core.CleanString(nm.Description)
	nm.AvailableIn = cleanAvailability(nm.AvailableIn)
	nm.Type = canonicalTypes(nm.Type)
}

func (nm *NewMaterial) Validate(validate *validator.Validate) error {
	nm.Clean()
	return validate.Struct(nm)
}

// UpdateMaterial defines what information may be provided to modify an existing Material.
// Blank fields keep their current value.
type UpdateMaterial struct {
	Subject     string         `json:"subject" validate:"notblank"`
	AvailableIn []Availability `json:"availableIn" validate:"required,min=1,dive"`
	Type        TypeList       `json:"type" validate:"required,min=1,dive,studytype"`
	DriveLink   string         `json:"driveLink" validate:"required,url"`
	Description *string        `json:"description"`
}

func (um *UpdateMaterial) Validate(orig Material, validate *validator.Validate) error {
	if subj := core.CleanString(um.Subject); subj != "" {
		um.Subject = subj
	} else {
		um.Subject = orig.Subject
	}
	if link := core.CleanString(um.DriveLink); link != "" {
		um.DriveLink = link
	} else {
		um.DriveLink = orig.DriveLink
	}
	if um.AvailableIn == nil {
		um.AvailableIn = orig.Clone().AvailableIn
	}
	um.AvailableIn = cleanAvailability(um.AvailableIn)
	if um.Type == nil {
		um.Type = orig.Clone().Type
	}
	um.Type = canonicalTypes(um.Type)
	if um.Description == nil {
		desc := orig.Description
		um.Description = &desc
	} else {
		desc := core.CleanString(*um.Description)
		um.Description = &desc
	}
	return validate.Struct(um)
}

func cleanAvailability(avs []Availability) []Availability {
	out := make([]Availability, 0, len(avs))
	for _, a := range avs {
		out = append(out, Availability{
			Stream:   core.CleanString(a.Stream, true /* lower */),
			Semester: core.CleanString(a.Semester),
		})
	}
	return out
}

func canonicalTypes(types TypeList) TypeList {
	out := make(TypeList, 0, len(types))
	for _, t := range types {
		if c, ok := CanonicalType(t); ok {
			t = c
		}
		out = append(out, core.CleanString(t))
	}
	return out
}

// Filter narrows the catalog. Empty or "all" facets are ignored.
type Filter struct {
	Search   string `query:"search" json:"search"`
	Stream   string `query:"stream" json:"stream"`
	Semester string `query:"semester" json:"semester"`
	Type     string `query:"type" json:"type"`
}

func (f *Filter) Clean() {
	f.Search = core.CleanString(f.Search)
	f.Stream = core.CleanString(f.Stream, true /* lower */)
	f.Semester = core.CleanString(f.Semester)
	f.Type = core.CleanString(f.Type)
}

// MatchAvailability is true when both stream and semester are "all", or when
// a single availability entry satisfies both selected facets.
func (f Filter) MatchAvailability(m Material) bool {
	if search.IsAll(f.Stream) && search.IsAll(f.Semester) {
		return true
	}
	for _, a := range m.AvailableIn {
		if (search.IsAll(f.Stream) || strings.EqualFold(a.Stream, f.Stream)) &&
			(search.IsAll(f.Semester) || a.Semester == strings.TrimSpace(f.Semester)) {
			return true
		}
	}
	return false
}

// MatchSearch does a case-insensitive match on Subject, Description or one of the types.
func (f Filter) MatchSearch(m Material) bool {
	return search.ContainsFold(m.Subject, f.Search) ||
		search.ContainsFold(m.Description, f.Search) ||
		search.AnyContainsFold(m.Type, f.Search)
}

func (f Filter) MatchType(m Material) bool {
	return search.IsAll(f.Type) || m.HasType(f.Type)
}

// Match applies AND on all predicates.
func (f Filter) Match(m Material) bool {
	return f.MatchAvailability(m) && f.MatchSearch(m) && f.MatchType(m)
}

// Apply returns the materials matching f, keeping the input order.
func Apply(materials []Material, f Filter) []Material {
	out := make([]Material, 0, len(materials))
	for _, m := range materials {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// Summary holds the per-type tab counts of a listing.
type Summary struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"byType"`
}

func Summarize(materials []Material) Summary {
	s := Summary{Total: len(materials), ByType: make(map[string]int, len(Types))}
	for _, t := range Types {
		s.ByType[t] = 0
	}
	for _, m := range materials {
		for _, t := range Types {
			if m.HasType(t) {
				s.ByType[t]++
			}
		}
	}
	return s
}

// Sort orders materials by the given orderings (fields: id, subject); by id when empty.
func Sort(materials []Material, orderings []core.Ordering) {
	sort.SliceStable(materials, func(i, j int) bool {
		for _, ord := range orderings {
			var cmp int
			switch ord.Field {
			case "id":
				cmp = materials[i].ID - materials[j].ID
			case "subject":
				cmp = strings.Compare(strings.ToLower(materials[i].Subject), strings.ToLower(materials[j].Subject))
			}
			if cmp == 0 {
				continue
			}
			if ord.Ascending {
				return cmp < 0
			}
			return cmp > 0
		}
		return materials[i].ID < materials[j].ID
	})
}
