package impact

import (
	"testing"

	"github.com/flytipwatch/impact-planner/internal/tasks"
)

func testSet() CoefficientSet {
	return NewCoefficientSet(map[string]Coefficients{
		"Greater London": {AirQualityImpact: 0.85, Co2BaseKg: 6.0, QualityOfLifeImpact: 0.4},
		"Cornwall":       {AirQualityImpact: 0.30, Co2BaseKg: 4.0, QualityOfLifeImpact: 0.2},
	})
}

func TestCalculateLargeIncident(t *testing.T) {
	c := NewCalculator(testSet())

	got := c.Calculate("Greater London", tasks.SeverityLarge)
	want := tasks.ImpactMetrics{
		Co2EmissionsKg:      30.0,
		WasteVolumeTonnes:   0.25,
		RecyclingRatePct:    45.0,
		CrimeChangePct:      30.0,
		DeprivationIndex:    6.2,
		HousePriceImpactPct: -9.0,
	}

	if got != want {
		t.Errorf("Calculate(Greater London, large) = %+v, want %+v", got, want)
	}
}

func TestCalculateSeverityScalesOutputs(t *testing.T) {
	c := NewCalculator(testSet())

	small := c.Calculate("Cornwall", tasks.SeveritySmall)
	vehicle := c.Calculate("Cornwall", tasks.SeverityVehicleLoad)

	if vehicle.Co2EmissionsKg <= small.Co2EmissionsKg {
		t.Errorf("vehicle-load co2 %v not greater than small %v", vehicle.Co2EmissionsKg, small.Co2EmissionsKg)
	}
	if vehicle.CrimeChangePct <= small.CrimeChangePct {
		t.Errorf("vehicle-load crime %v not greater than small %v", vehicle.CrimeChangePct, small.CrimeChangePct)
	}
	// Deprivation and recycling depend on the region only, not the severity.
	if vehicle.DeprivationIndex != small.DeprivationIndex {
		t.Errorf("deprivation changed with severity: %v vs %v", vehicle.DeprivationIndex, small.DeprivationIndex)
	}
	if vehicle.RecyclingRatePct != small.RecyclingRatePct {
		t.Errorf("recycling rate changed with severity: %v vs %v", vehicle.RecyclingRatePct, small.RecyclingRatePct)
	}
}

func TestCalculateUnknownRegionUsesMean(t *testing.T) {
	c := NewCalculator(testSet())

	got := c.Calculate("Atlantis", tasks.SeveritySmall)
	// Mean quality of life is 0.3, mean co2 base is 5.0.
	if got.Co2EmissionsKg != 5.0 {
		t.Errorf("co2 for unknown region = %v, want 5.0", got.Co2EmissionsKg)
	}
	if got.CrimeChangePct != 4.5 {
		t.Errorf("crime for unknown region = %v, want 4.5", got.CrimeChangePct)
	}
}

func TestCalculateClampsExtremes(t *testing.T) {
	high := NewCalculator(NewCoefficientSet(map[string]Coefficients{
		"High": {Co2BaseKg: 1.0, QualityOfLifeImpact: 5.0},
	}))
	low := NewCalculator(NewCoefficientSet(map[string]Coefficients{
		"Low": {Co2BaseKg: 1.0, QualityOfLifeImpact: -5.0},
	}))

	if got := high.Calculate("High", tasks.SeverityMedium).DeprivationIndex; got != 10.0 {
		t.Errorf("deprivation not clamped to ceiling: %v", got)
	}
	if got := high.Calculate("High", tasks.SeverityMedium).RecyclingRatePct; got != 10.0 {
		t.Errorf("recycling not clamped to floor: %v", got)
	}
	if got := low.Calculate("Low", tasks.SeverityMedium).DeprivationIndex; got != 0.0 {
		t.Errorf("deprivation not clamped to zero: %v", got)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	c := NewCalculator(testSet())

	first := c.Calculate("Greater London", tasks.SeverityMedium)
	for i := 0; i < 10; i++ {
		if got := c.Calculate("Greater London", tasks.SeverityMedium); got != first {
			t.Fatalf("calculation %d differs: %+v vs %+v", i, got, first)
		}
	}
}
