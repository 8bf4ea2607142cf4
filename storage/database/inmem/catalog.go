package inmemdb

import (
	"context"

	"github.com/adspirelabs/punotes/core/blog"
	"github.com/adspirelabs/punotes/core/literature"
	"github.com/adspirelabs/punotes/core/resource"
)

type resourceRepository struct {
	db *resourceTable
}

func NewResourceRepository(db *DB) resource.Repository {
	return &resourceRepository{db: db.resource}
}

func (repo *resourceRepository) ListResources(_ context.Context) ([]resource.Resource, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	resources := make([]resource.Resource, 0, len(repo.db.rows))
	for _, r := range repo.db.rows {
		resources = append(resources, r.Clone())
	}
	return resources, nil
}

func (repo *resourceRepository) ReplaceResources(_ context.Context, resources []resource.Resource) error {
	repo.db.replace(resources)
	return nil
}

type literatureRepository struct {
	db *literatureTable
}

func NewLiteratureRepository(db *DB) literature.Repository {
	return &literatureRepository{db: db.literature}
}

func (repo *literatureRepository) ListBooks(_ context.Context) ([]literature.Book, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	books := make([]literature.Book, 0, len(repo.db.rows))
	for _, b := range repo.db.rows {
		books = append(books, b.Clone())
	}
	return books, nil
}

func (repo *literatureRepository) ReplaceBooks(_ context.Context, books []literature.Book) error {
	repo.db.replace(books)
	return nil
}

type blogRepository struct {
	db *blogTable
}

func NewBlogRepository(db *DB) blog.Repository {
	return &blogRepository{db: db.blog}
}

func (repo *blogRepository) ListPosts(_ context.Context) ([]blog.Post, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	posts := make([]blog.Post, 0, len(repo.db.rows))
	for _, p := range repo.db.rows {
		posts = append(posts, p.Clone())
	}
	return posts, nil
}

func (repo *blogRepository) GetPostBySlug(_ context.Context, slug string) (blog.Post, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, p := range repo.db.rows {
		if p.Slug == slug {
			return p.Clone(), nil
		}
	}
	return blog.Post{}, blog.ErrNotFound
}

func (repo *blogRepository) ReplacePosts(_ context.Context, posts []blog.Post) error {
	repo.db.replace(posts)
	return nil
}
