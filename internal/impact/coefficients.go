// Package impact derives numeric impact metrics for a fly-tipping incident
// from per-region coefficients and the classified severity bucket.
package impact

// Coefficients are the pre-computed environmental and quality-of-life figures
// for one region. Read-only after load.
type Coefficients struct {
	AirQualityImpact    float64
	Co2BaseKg           float64
	QualityOfLifeImpact float64
}

// CoefficientSet is an immutable snapshot of the loaded coefficient table,
// keyed by region name.
type CoefficientSet struct {
	byRegion map[string]Coefficients
	mean     Coefficients
}

// NewCoefficientSet builds a snapshot and precomputes the arithmetic mean used
// as fallback for regions absent from the table.
func NewCoefficientSet(byRegion map[string]Coefficients) CoefficientSet {
	set := CoefficientSet{byRegion: make(map[string]Coefficients, len(byRegion))}
	for region, c := range byRegion {
		set.byRegion[region] = c
	}

	if n := float64(len(byRegion)); n > 0 {
		for _, c := range byRegion {
			set.mean.AirQualityImpact += c.AirQualityImpact / n
			set.mean.Co2BaseKg += c.Co2BaseKg / n
			set.mean.QualityOfLifeImpact += c.QualityOfLifeImpact / n
		}
	}

	return set
}

// Get returns the coefficients for region, falling back to the mean of all
// loaded regions when the region is absent. A missing region never fails.
func (s CoefficientSet) Get(region string) Coefficients {
	if c, ok := s.byRegion[region]; ok {
		return c
	}
	return s.mean
}

// Len returns the number of regions in the snapshot.
func (s CoefficientSet) Len() int { return len(s.byRegion) }
