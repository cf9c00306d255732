package impact

import (
	"math"

	"github.com/flytipwatch/impact-planner/internal/tasks"
)

const (
	// WasteTonnesPerUnit is the rough estimate of 50kg per "bag unit".
	WasteTonnesPerUnit = 0.05

	crimeRateFactor     = 15.0
	housePriceFactor    = 4.5
	deprivationBase     = 5.0
	deprivationFactor   = 3.0
	deprivationCeiling  = 10.0
	recyclingRateBase   = 65.0
	recyclingRateFactor = 50.0
	recyclingRateFloor  = 10.0
)

// Calculator computes impact metrics from a coefficient snapshot. It is pure
// and deterministic: identical (region, bucket) input yields identical output
// for the lifetime of the snapshot.
type Calculator struct {
	set CoefficientSet
}

func NewCalculator(set CoefficientSet) *Calculator {
	return &Calculator{set: set}
}

// Regions returns the number of regions backing this calculator.
func (c *Calculator) Regions() int { return c.set.Len() }

// Calculate derives the impact metrics for a region and severity bucket.
// It never fails: unknown regions use the mean coefficients, and the
// deprivation and recycling outputs are clamped no matter how extreme the
// quality-of-life coefficient is.
func (c *Calculator) Calculate(region string, bucket tasks.SeverityBucket) tasks.ImpactMetrics {
	coeff := c.set.Get(region)
	m := bucket.Multiplier()

	return tasks.ImpactMetrics{
		Co2EmissionsKg:      round1(coeff.Co2BaseKg * m),
		WasteVolumeTonnes:   round2(WasteTonnesPerUnit * m),
		CrimeChangePct:      round1(coeff.QualityOfLifeImpact * crimeRateFactor * m),
		HousePriceImpactPct: round1(-coeff.QualityOfLifeImpact * housePriceFactor * m),
		DeprivationIndex:    round1(clamp(deprivationBase+coeff.QualityOfLifeImpact*deprivationFactor, 0, deprivationCeiling)),
		RecyclingRatePct:    round1(math.Max(recyclingRateFloor, recyclingRateBase-coeff.QualityOfLifeImpact*recyclingRateFactor)),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
