package inmemdb

import (
	"io/fs"
	"sync"

	"github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core/blog"
	"github.com/adspirelabs/punotes/core/dataset"
	"github.com/adspirelabs/punotes/core/literature"
	"github.com/adspirelabs/punotes/core/material"
	"github.com/adspirelabs/punotes/core/resource"
)

type (
	// DB keeps one table per dataset kind. Tables preserve insertion order.
	DB struct {
		material   *materialTable
		resource   *resourceTable
		literature *literatureTable
		blog       *blogTable
	}

	materialTable struct {
		rows  []material.Material
		mutex sync.RWMutex
	}

	resourceTable struct {
		rows  []resource.Resource
		mutex sync.RWMutex
	}

	literatureTable struct {
		rows  []literature.Book
		mutex sync.RWMutex
	}

	blogTable struct {
		rows  []blog.Post
		mutex sync.RWMutex
	}
)

// Open returns an empty database.
func Open() *DB {
	return &DB{
		material:   &materialTable{},
		resource:   &resourceTable{},
		literature: &literatureTable{},
		blog:       &blogTable{},
	}
}

// OpenCatalog returns a database holding a copy of cat.
func OpenCatalog(cat dataset.Catalog) *DB {
	db := Open()
	db.Load(cat)
	return db
}

// Load swaps every table with a copy of cat.
func (db *DB) Load(cat dataset.Catalog) {
	db.material.replace(cat.Materials)
	db.resource.replace(cat.Resources)
	db.literature.replace(cat.Books)
	db.blog.replace(cat.Posts)
}

// LoadDir reads every dataset file of fsys. Tables are swapped only when all files are valid.
func (db *DB) LoadDir(fsys fs.FS) error {
	cat, err := dataset.LoadDir(fsys)
	if err != nil {
		return errors.Wrap(err, "loading catalog")
	}
	db.Load(cat)
	return nil
}

func (t *materialTable) replace(rows []material.Material) {
	cp := make([]material.Material, 0, len(rows))
	for _, m := range rows {
		cp = append(cp, m.Clone())
	}
	t.mutex.Lock()
	t.rows = cp
	t.mutex.Unlock()
}

func (t *resourceTable) replace(rows []resource.Resource) {
	cp := make([]resource.Resource, 0, len(rows))
	for _, r := range rows {
		cp = append(cp, r.Clone())
	}
	t.mutex.Lock()
	t.rows = cp
	t.mutex.Unlock()
}

func (t *literatureTable) replace(rows []literature.Book) {
	cp := make([]literature.Book, 0, len(rows))
	for _, b := range rows {
		cp = append(cp, b.Clone())
	}
	t.mutex.Lock()
	t.rows = cp
	t.mutex.Unlock()
}

func (t *blogTable) replace(rows []blog.Post) {
	cp := make([]blog.Post, 0, len(rows))
	for _, p := range rows {
		cp = append(cp, p.Clone())
	}
	t.mutex.Lock()
	t.rows = cp
	t.mutex.Unlock()
}
