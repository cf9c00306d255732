package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/flytipwatch/impact-planner/internal/store/model"
)

type Coefficient interface {
	All(ctx context.Context) ([]model.RegionCoefficient, error)
	Get(ctx context.Context, region string) (*model.RegionCoefficient, error)
	Replace(rows []model.RegionCoefficient) error
}

type CoefficientStore struct {
	db *gorm.DB
}

func NewCoefficientStore(db *gorm.DB) *CoefficientStore {
	return &CoefficientStore{db: db}
}

func allModels() []any {
	return []any{&model.RegionCoefficient{}}
}

func (s *CoefficientStore) All(ctx context.Context) ([]model.RegionCoefficient, error) {
	var rows []model.RegionCoefficient
	if err := s.db.WithContext(ctx).Order("region").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "listing region coefficients")
	}
	return rows, nil
}

func (s *CoefficientStore) Get(ctx context.Context, region string) (*model.RegionCoefficient, error) {
	var row model.RegionCoefficient
	if err := s.db.WithContext(ctx).First(&row, "region = ?", region).Error; err != nil {
		return nil, errors.Wrapf(err, "fetching coefficients for %q", region)
	}
	return &row, nil
}

// Replace upserts the given rows, overwriting coefficients for regions that
// already exist.
func (s *CoefficientStore) Replace(rows []model.RegionCoefficient) error {
	if len(rows) == 0 {
		return errors.New("refusing to replace coefficients with an empty table")
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "region"}},
		DoUpdates: clause.AssignmentColumns([]string{"air_quality_impact", "co2_emission_kg", "quality_of_life_impact"}),
	}).Create(&rows).Error
	return errors.Wrap(err, "replacing region coefficients")
}
