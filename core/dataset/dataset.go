// Package dataset reads and writes the JSON files the catalog is built from.
// Every decode validates the document against its embedded JSON schema first.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/blog"
	"github.com/adspirelabs/punotes/core/literature"
	"github.com/adspirelabs/punotes/core/material"
	"github.com/adspirelabs/punotes/core/resource"
	appfs "github.com/adspirelabs/punotes/fs"
)

var (
	// errors
	ErrInvalidJSON = errors.New("invalid JSON file")
	ErrUnknownKind = errors.New("unknown dataset kind")
)

type Kind string

const (
	Materials  Kind = "materials"
	Resources  Kind = "resources"
	Literature Kind = "literature"
	Blog       Kind = "blog"
)

var Kinds = []Kind{Materials, Resources, Literature, Blog}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	k := Kind(core.CleanString(s, true /* lower */))
	for _, kind := range Kinds {
		if k == kind {
			return k, nil
		}
	}
	return "", errors.Wrap(ErrUnknownKind, s)
}

// FileName is the dataset file of the kind inside a data directory.
func (k Kind) FileName() string {
	switch k {
	case Materials:
		return "studyMaterials.json"
	case Resources:
		return "additionalResources.json"
	case Literature:
		return "nepaliLiterature.json"
	case Blog:
		return "blogPosts.json"
	}
	return ""
}

func (k Kind) schemaFile() string {
	return path.Join("schemas", string(k)+".schema.json")
}

var (
	schemasMu sync.Mutex
	schemas   = make(map[Kind]*jsonschema.Schema)
)

func schemaOf(k Kind) (*jsonschema.Schema, error) {
	schemasMu.Lock()
	defer schemasMu.Unlock()
	if s, ok := schemas[k]; ok {
		return s, nil
	}
	data, err := appfs.FS.ReadFile(k.schemaFile())
	if err != nil {
		return nil, errors.Wrapf(err, "loading schema %s", k)
	}
	s, err := jsonschema.CompileString(k.schemaFile(), string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "compiling schema %s", k)
	}
	schemas[k] = s
	return s, nil
}

// Validate checks data against the schema of kind k.
// Malformed JSON yields ErrInvalidJSON, a schema violation a *core.ValidationError.
func Validate(k Kind, data []byte) error {
	schema, err := schemaOf(k)
	if err != nil {
		return err
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err = dec.Decode(&doc); err != nil {
		return core.NewValidationError(ErrInvalidJSON)
	}
	if dec.More() {
		return core.NewValidationError(ErrInvalidJSON)
	}

	if err = schema.Validate(doc); err != nil {
		vErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return errors.Wrap(err, "validating document")
		}
		return core.NewValidationError(nil, schemaFieldErrors(vErr)...)
	}
	return nil
}

func schemaFieldErrors(vErr *jsonschema.ValidationError) []core.FieldError {
	if len(vErr.Causes) == 0 {
		field := strings.TrimPrefix(vErr.InstanceLocation, "/")
		if field == "" {
			field = "document"
		}
		return []core.FieldError{{Field: field, Error: vErr.Message}}
	}
	var flds []core.FieldError
	for _, cause := range vErr.Causes {
		flds = append(flds, schemaFieldErrors(cause)...)
	}
	return flds
}

func decode(k Kind, data []byte, v interface{}) error {
	if err := Validate(k, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return core.NewValidationError(ErrInvalidJSON)
	}
	return nil
}

func checkUniqueIDs(ids []int) error {
	seen := make(map[int]struct{}, len(ids))
	for i, id := range ids {
		if _, ok := seen[id]; ok {
			return core.NewValidationError(nil, core.FieldError{
				Field: fmt.Sprintf("%d/id", i),
				Error: fmt.Sprintf("duplicate id %d", id),
			})
		}
		seen[id] = struct{}{}
	}
	return nil
}

func DecodeMaterials(data []byte) ([]material.Material, error) {
	var materials []material.Material
	if err := decode(Materials, data, &materials); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(materials))
	for i, m := range materials {
		ids = append(ids, m.ID)
		for j, a := range m.AvailableIn {
			materials[i].AvailableIn[j].Stream = core.CleanString(a.Stream, true /* lower */)
		}
	}
	return materials, checkUniqueIDs(ids)
}

func DecodeResources(data []byte) ([]resource.Resource, error) {
	var resources []resource.Resource
	if err := decode(Resources, data, &resources); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.ID)
	}
	return resources, checkUniqueIDs(ids)
}

func DecodeBooks(data []byte) ([]literature.Book, error) {
	var books []literature.Book
	if err := decode(Literature, data, &books); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	return books, checkUniqueIDs(ids)
}

func DecodePosts(data []byte) ([]blog.Post, error) {
	var posts []blog.Post
	if err := decode(Blog, data, &posts); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(posts))
	slugs := make(map[string]struct{}, len(posts))
	for i, p := range posts {
		ids = append(ids, p.ID)
		if _, ok := slugs[p.Slug]; ok {
			return nil, core.NewValidationError(nil, core.FieldError{
				Field: fmt.Sprintf("%d/slug", i),
				Error: "duplicate slug " + p.Slug,
			})
		}
		slugs[p.Slug] = struct{}{}
	}
	return posts, checkUniqueIDs(ids)
}

// Encode renders v as the indented JSON stored in dataset files.
func Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "encoding dataset")
	}
	return buf.Bytes(), nil
}

// MaterialCodec is the material.Codec of the materials dataset.
type MaterialCodec struct{}

var _ material.Codec = MaterialCodec{}

func (MaterialCodec) EncodeMaterials(materials []material.Material) ([]byte, error) {
	if materials == nil {
		materials = []material.Material{}
	}
	return Encode(materials)
}

func (MaterialCodec) DecodeMaterials(data []byte) ([]material.Material, error) {
	return DecodeMaterials(data)
}

// Diff returns a unified diff between two versions of a dataset file, or "" when equal.
func Diff(name string, a, b []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: name + " (current)",
		ToFile:   name + " (new)",
		Context:  3,
	})
}

// Catalog holds every dataset kind.
type Catalog struct {
	Materials []material.Material
	Resources []resource.Resource
	Books     []literature.Book
	Posts     []blog.Post
}

// LoadDir reads and validates all dataset files from fsys. A missing file yields an empty list.
func LoadDir(fsys fs.FS) (Catalog, error) {
	var cat Catalog
	for _, k := range Kinds {
		data, err := fs.ReadFile(fsys, k.FileName())
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Catalog{}, errors.Wrapf(err, "reading %s", k.FileName())
		}
		switch k {
		case Materials:
			cat.Materials, err = DecodeMaterials(data)
		case Resources:
			cat.Resources, err = DecodeResources(data)
		case Literature:
			cat.Books, err = DecodeBooks(data)
		case Blog:
			cat.Posts, err = DecodePosts(data)
		}
		if err != nil {
			return Catalog{}, errors.Wrapf(err, "decoding %s", k.FileName())
		}
	}
	return cat, nil
}

// Seed returns the data directory embedded in the binary.
func Seed() fs.FS {
	sub, err := fs.Sub(appfs.FS, "data")
	if err != nil {
		panic(err) // embedded directory always exists
	}
	return sub
}

// LoadSeed loads the embedded catalog.
func LoadSeed() (Catalog, error) {
	return LoadDir(Seed())
}
