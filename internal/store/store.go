// Package store owns the region coefficient table: schema migration, seeding
// from the built-in dataset or an imported workbook, and read access for the
// impact calculator's snapshot loader.
package store

import (
	"gorm.io/gorm"
)

type Store interface {
	Coefficient() Coefficient
	InitialMigration() error
	Seed() error
	Close() error
}

type DataStore struct {
	coefficient Coefficient
	db          *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		coefficient: NewCoefficientStore(db),
		db:          db,
	}
}

func (s *DataStore) Coefficient() Coefficient {
	return s.coefficient
}

// InitialMigration creates or updates the coefficient schema.
func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(allModels()...)
}

// Seed upserts the built-in coefficient dataset. Existing rows for the same
// region are overwritten so repeated startups stay deterministic.
func (s *DataStore) Seed() error {
	return s.coefficient.Replace(defaultCoefficients())
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
