package service

import (
	"context"
	"sync/atomic"
	"time"

	jitterbug "github.com/lthibault/jitterbug/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/flytipwatch/impact-planner/internal/impact"
	"github.com/flytipwatch/impact-planner/internal/store"
	"github.com/flytipwatch/impact-planner/internal/tasks"
)

// CoefficientCache keeps an immutable calculator snapshot built from the
// coefficient table and refreshes it periodically, so the pipeline never
// touches the database on the hot path.
type CoefficientCache struct {
	store    store.Store
	interval time.Duration
	current  atomic.Pointer[impact.Calculator]
	log      *zap.SugaredLogger
}

func NewCoefficientCache(s store.Store, refreshInterval time.Duration) *CoefficientCache {
	return &CoefficientCache{
		store:    s,
		interval: refreshInterval,
		log:      zap.S().Named("coefficient_cache"),
	}
}

// Load reads the full coefficient table and swaps in a fresh calculator.
// Must succeed once at startup before the cache is used.
func (c *CoefficientCache) Load(ctx context.Context) error {
	rows, err := c.store.Coefficient().All(ctx)
	if err != nil {
		return errors.Wrap(err, "loading region coefficients")
	}
	if len(rows) == 0 {
		return errors.New("coefficient table is empty")
	}

	byRegion := make(map[string]impact.Coefficients, len(rows))
	for _, row := range rows {
		byRegion[row.Region] = impact.Coefficients{
			AirQualityImpact:    row.AirQualityImpact,
			Co2BaseKg:           row.Co2EmissionKg,
			QualityOfLifeImpact: row.QualityOfLifeImpact,
		}
	}

	c.current.Store(impact.NewCalculator(impact.NewCoefficientSet(byRegion)))
	c.log.Infof("loaded coefficients for %d regions", len(rows))
	return nil
}

// Calculate delegates to the current snapshot.
func (c *CoefficientCache) Calculate(region string, bucket tasks.SeverityBucket) tasks.ImpactMetrics {
	return c.current.Load().Calculate(region, bucket)
}

// Regions returns the number of regions in the current snapshot.
func (c *CoefficientCache) Regions() int {
	calc := c.current.Load()
	if calc == nil {
		return 0
	}
	return calc.Regions()
}

// Run refreshes the snapshot until the context is cancelled. A failed refresh
// keeps the previous snapshot.
func (c *CoefficientCache) Run(ctx context.Context) {
	ticker := jitterbug.New(c.interval, &jitterbug.Norm{Stdev: 30 * time.Second, Mean: 0})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Load(ctx); err != nil {
				c.log.Errorw("coefficient refresh failed, keeping previous snapshot", "error", err)
			}
		}
	}
}
