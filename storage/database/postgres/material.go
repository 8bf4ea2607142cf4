package pgrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/adspirelabs/punotes/core/material"
)

type (
	materialRow struct {
		ID          int         `db:"id"`
		Subject     string      `db:"subject"`
		DriveLink   string      `db:"drive_link"`
		Description null.String `db:"description"`
	}

	availabilityRow struct {
		MaterialID int    `db:"material_id"`
		Position   int    `db:"position"`
		Stream     string `db:"stream"`
		Semester   string `db:"semester"`
	}

	typeRow struct {
		MaterialID int    `db:"material_id"`
		Position   int    `db:"position"`
		Type       string `db:"type"`
	}
)

type materialRepository struct {
	db *sqlx.DB
}

var _ material.Repository = (*materialRepository)(nil) // interface compliance check

func NewMaterialRepository(db *sqlx.DB) material.Repository {
	return &materialRepository{db: db}
}

func toRow(m material.Material) materialRow {
	return materialRow{
		ID:          m.ID,
		Subject:     m.Subject,
		DriveLink:   m.DriveLink,
		Description: null.NewString(m.Description, m.Description != ""),
	}
}

func fromRows(rows []materialRow, avs []availabilityRow, types []typeRow) []material.Material {
	byID := make(map[int]*material.Material, len(rows))
	materials := make([]material.Material, len(rows))
	for i, r := range rows {
		materials[i] = material.Material{
			ID:          r.ID,
			Subject:     r.Subject,
			DriveLink:   r.DriveLink,
			Description: r.Description.String,
			AvailableIn: []material.Availability{},
			Type:        material.TypeList{},
		}
		byID[r.ID] = &materials[i]
	}
	for _, a := range avs {
		if m, ok := byID[a.MaterialID]; ok {
			m.AvailableIn = append(m.AvailableIn, material.Availability{Stream: a.Stream, Semester: a.Semester})
		}
	}
	for _, t := range types {
		if m, ok := byID[t.MaterialID]; ok {
			m.Type = append(m.Type, t.Type)
		}
	}
	return materials
}

func (repo *materialRepository) ListMaterials(ctx context.Context) ([]material.Material, error) {
	var (
		rows  []materialRow
		avs   []availabilityRow
		types []typeRow
	)
	if err := repo.db.SelectContext(ctx, &rows, `SELECT id, subject, drive_link, description FROM material ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting materials")
	}
	if err := repo.db.SelectContext(ctx, &avs, `SELECT material_id, position, stream, semester FROM material_availability ORDER BY material_id, position`); err != nil {
		return nil, errors.Wrap(err, "selecting availabilities")
	}
	if err := repo.db.SelectContext(ctx, &types, `SELECT material_id, position, type FROM material_type ORDER BY material_id, position`); err != nil {
		return nil, errors.Wrap(err, "selecting types")
	}
	return fromRows(rows, avs, types), nil
}

func (repo *materialRepository) GetMaterial(ctx context.Context, id int) (material.Material, error) {
	var (
		row   materialRow
		avs   []availabilityRow
		types []typeRow
	)
	err := repo.db.GetContext(ctx, &row, `SELECT id, subject, drive_link, description FROM material WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return material.Material{}, material.ErrNotFound
		}
		return material.Material{}, errors.Wrap(err, "selecting material")
	}
	if err = repo.db.SelectContext(ctx, &avs, `SELECT material_id, position, stream, semester FROM material_availability WHERE material_id = $1 ORDER BY position`, id); err != nil {
		return material.Material{}, errors.Wrap(err, "selecting availabilities")
	}
	if err = repo.db.SelectContext(ctx, &types, `SELECT material_id, position, type FROM material_type WHERE material_id = $1 ORDER BY position`, id); err != nil {
		return material.Material{}, errors.Wrap(err, "selecting types")
	}
	return fromRows([]materialRow{row}, avs, types)[0], nil
}

// inTx runs fn in a transaction, rolled back when fn fails.
func (repo *materialRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

func insert(ctx context.Context, tx *sqlx.Tx, m material.Material) error {
	if _, err := tx.NamedExecContext(ctx,
		`INSERT INTO material (id, subject, drive_link, description) VALUES (:id, :subject, :drive_link, :description)`,
		toRow(m),
	); err != nil {
		return errors.Wrap(err, "inserting material")
	}
	return insertChildren(ctx, tx, m)
}

func insertChildren(ctx context.Context, tx *sqlx.Tx, m material.Material) error {
	for i, a := range m.AvailableIn {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO material_availability (material_id, position, stream, semester) VALUES (:material_id, :position, :stream, :semester)`,
			availabilityRow{MaterialID: m.ID, Position: i, Stream: a.Stream, Semester: a.Semester},
		); err != nil {
			return errors.Wrap(err, "inserting availability")
		}
	}
	for i, t := range m.Type {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO material_type (material_id, position, type) VALUES (:material_id, :position, :type)`,
			typeRow{MaterialID: m.ID, Position: i, Type: t},
		); err != nil {
			return errors.Wrap(err, "inserting type")
		}
	}
	return nil
}

func (repo *materialRepository) CreateMaterial(ctx context.Context, m material.Material) (material.Material, error) {
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `LOCK TABLE material IN EXCLUSIVE MODE`); err != nil {
			return errors.Wrap(err, "locking material table")
		}
		if err := tx.GetContext(ctx, &m.ID, `SELECT COALESCE(MAX(id), 0) + 1 FROM material`); err != nil {
			return errors.Wrap(err, "selecting next id")
		}
		return insert(ctx, tx, m)
	})
	if err != nil {
		return material.Material{}, err
	}
	return m, nil
}

func (repo *materialRepository) UpdateMaterial(ctx context.Context, m material.Material) (material.Material, error) {
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx,
			`UPDATE material SET subject = :subject, drive_link = :drive_link, description = :description WHERE id = :id`,
			toRow(m),
		)
		if err != nil {
			return errors.Wrap(err, "updating material")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return material.ErrNotFound
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM material_availability WHERE material_id = $1`, m.ID); err != nil {
			return errors.Wrap(err, "deleting availabilities")
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM material_type WHERE material_id = $1`, m.ID); err != nil {
			return errors.Wrap(err, "deleting types")
		}
		return insertChildren(ctx, tx, m)
	})
	if err != nil {
		return material.Material{}, err
	}
	return m, nil
}

func (repo *materialRepository) DeleteMaterial(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM material WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting material")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return material.ErrNotFound
	}
	return nil
}

func (repo *materialRepository) ReplaceMaterials(ctx context.Context, materials []material.Material) error {
	return repo.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM material`); err != nil {
			return errors.Wrap(err, "clearing materials")
		}
		for _, m := range materials {
			if err := insert(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	})
}
