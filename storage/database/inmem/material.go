package inmemdb

import (
	"context"

	"github.com/adspirelabs/punotes/core/material"
)

type materialRepository struct {
	db *materialTable
}

func NewMaterialRepository(db *DB) material.Repository {
	return &materialRepository{db: db.material}
}

func (repo *materialRepository) query() []material.Material {
	materials := make([]material.Material, 0, len(repo.db.rows))
	for _, m := range repo.db.rows {
		materials = append(materials, m.Clone())
	}
	return materials
}

func (repo *materialRepository) indexOf(id int) int {
	for i, m := range repo.db.rows {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (repo *materialRepository) ListMaterials(_ context.Context) ([]material.Material, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *materialRepository) GetMaterial(_ context.Context, id int) (material.Material, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if i := repo.indexOf(id); i >= 0 {
		return repo.db.rows[i].Clone(), nil
	}
	return material.Material{}, material.ErrNotFound
}

func (repo *materialRepository) CreateMaterial(_ context.Context, m material.Material) (material.Material, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	maxID := 0
	for _, row := range repo.db.rows {
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	m.ID = maxID + 1
	repo.db.rows = append(repo.db.rows, m.Clone())
	return m, nil
}

func (repo *materialRepository) UpdateMaterial(_ context.Context, m material.Material) (material.Material, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	i := repo.indexOf(m.ID)
	if i < 0 {
		return material.Material{}, material.ErrNotFound
	}
	repo.db.rows[i] = m.Clone()
	return m, nil
}

func (repo *materialRepository) DeleteMaterial(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	i := repo.indexOf(id)
	if i < 0 {
		return material.ErrNotFound
	}
	rows := make([]material.Material, 0, len(repo.db.rows)-1)
	rows = append(rows, repo.db.rows[:i]...)
	repo.db.rows = append(rows, repo.db.rows[i+1:]...)
	return nil
}

func (repo *materialRepository) ReplaceMaterials(_ context.Context, materials []material.Material) error {
	repo.db.replace(materials)
	return nil
}
