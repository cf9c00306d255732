package model

// RegionCoefficient is one row of the region coefficient table: pre-computed
// environmental and quality-of-life figures keyed by region name.
type RegionCoefficient struct {
	Region              string  `gorm:"primaryKey"`
	AirQualityImpact    float64 `gorm:"not null"`
	Co2EmissionKg       float64 `gorm:"not null"`
	QualityOfLifeImpact float64 `gorm:"not null"`
}

func (RegionCoefficient) TableName() string {
	return "region_coefficients"
}
