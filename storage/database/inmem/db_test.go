package inmemdb

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adspirelabs/punotes/core/blog"
	"github.com/adspirelabs/punotes/core/dataset"
	"github.com/adspirelabs/punotes/core/material"
)

func TestMaterialRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMaterialRepository(Open())

	a, err := repo.CreateMaterial(ctx, material.Material{Subject: "A", Type: material.TypeList{"Notes"}})
	require.NoError(t, err)
	b, _ := repo.CreateMaterial(ctx, material.Material{Subject: "B"})
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)

	t.Run("returns copies", func(t *testing.T) {
		got, _ := repo.GetMaterial(ctx, a.ID)
		got.Type[0] = "Changed"
		again, _ := repo.GetMaterial(ctx, a.ID)
		assert.Equal(t, material.TypeList{"Notes"}, again.Type)
	})

	t.Run("ids follow the max id", func(t *testing.T) {
		require.NoError(t, repo.DeleteMaterial(ctx, a.ID))
		c, _ := repo.CreateMaterial(ctx, material.Material{Subject: "C"})
		assert.Equal(t, 3, c.ID)
		list, _ := repo.ListMaterials(ctx)
		assert.Equal(t, "B", list[0].Subject)
		assert.Equal(t, "C", list[1].Subject)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetMaterial(ctx, 42)
		assert.Equal(t, material.ErrNotFound, err)
		_, err = repo.UpdateMaterial(ctx, material.Material{ID: 42})
		assert.Equal(t, material.ErrNotFound, err)
		assert.Equal(t, material.ErrNotFound, repo.DeleteMaterial(ctx, 42))
	})

	t.Run("replace", func(t *testing.T) {
		require.NoError(t, repo.ReplaceMaterials(ctx, []material.Material{{ID: 9, Subject: "Z"}}))
		list, _ := repo.ListMaterials(ctx)
		require.Len(t, list, 1)
		assert.Equal(t, 9, list[0].ID)
	})
}

func TestDB_LoadDir(t *testing.T) {
	ctx := context.Background()
	seed, err := dataset.LoadSeed()
	require.NoError(t, err)
	db := OpenCatalog(seed)
	posts := NewBlogRepository(db)

	err = db.LoadDir(fstest.MapFS{
		"blogPosts.json":      {Data: []byte(`[]`)},
		"studyMaterials.json": {Data: []byte(`{broken`)},
	})
	assert.Error(t, err)
	list, _ := posts.ListPosts(ctx)
	assert.Len(t, list, len(seed.Posts))

	require.NoError(t, db.LoadDir(fstest.MapFS{"blogPosts.json": {Data: []byte(`[]`)}}))
	list, _ = posts.ListPosts(ctx)
	assert.Empty(t, list)
	_, err = posts.GetPostBySlug(ctx, "prepare-for-pu-board-exams")
	assert.Equal(t, blog.ErrNotFound, err)
}
