package testutil

import (
	"context"
	"os"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/dataset"
	"github.com/adspirelabs/punotes/core/material"
	"github.com/adspirelabs/punotes/core/preference"
	"github.com/adspirelabs/punotes/storage/database"
)

// NewValidator returns a validator with every custom tag of the app registered.
func NewValidator() *validator.Validate {
	validate, _ := NewValidatorAndTranslator()
	return validate
}

// NewValidatorAndTranslator also returns the translator the validation messages were registered with.
func NewValidatorAndTranslator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	material.RegisterValidators(validate, translator)
	preference.RegisterValidators(validate, translator)
	return validate, translator
}

func CreateMaterial(
	t *testing.T,
	repo material.Repository,
	subject, link string,
	availableIn []material.Availability,
	types ...string,
) material.Material {
	m, err := repo.CreateMaterial(context.Background(), material.Material{
		AvailableIn: availableIn,
		Subject:     subject,
		Type:        types,
		DriveLink:   link,
	})
	if err != nil {
		t.Fatalf("createMaterial() failed: %v", err)
	}
	return m
}

func Avail(stream, semester string) material.Availability {
	return material.Availability{Stream: stream, Semester: semester}
}

// MustLoadSeed loads the embedded catalog.
func MustLoadSeed(t *testing.T) dataset.Catalog {
	cat, err := dataset.LoadSeed()
	if err != nil {
		t.Fatalf("loading seed catalog: %v", err)
	}
	return cat
}

// PrepareDB connects to the postgres test database and migrates it from scratch.
// The test is skipped when TEST_DATABASE_HOST is not set.
func PrepareDB(t *testing.T) *sqlx.DB {
	host := os.Getenv("TEST_DATABASE_HOST")
	if host == "" {
		t.Skip("TEST_DATABASE_HOST not set")
	}
	conf := core.NewTestConfig()
	conf.Database = core.DatabaseConfig{
		Engine:     core.EnginePostgres,
		Host:       host,
		Port:       getenv("TEST_DATABASE_PORT", "5432"),
		Name:       getenv("TEST_DATABASE_NAME", "punotes_test"),
		User:       getenv("TEST_DATABASE_USER", "punotes"),
		Password:   os.Getenv("TEST_DATABASE_PASSWORD"),
		DisableTLS: true,
	}

	db, err := database.Open(context.Background(), conf)
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err = database.Run(db.DB, "reset"); err != nil {
		t.Fatalf("resetting migrations failed: %v", err)
	}
	if err = database.Migrate(db.DB); err != nil {
		t.Fatalf("migrating failed: %v", err)
	}
	return db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
