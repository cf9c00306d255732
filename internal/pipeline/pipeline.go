// Package pipeline runs the per-report analysis: resolve the region, classify
// the photo, compute the impact metrics, and assemble the narrative and
// council guidance. Every external stage degrades to a deterministic fallback
// so a submitted report always ends in a usable result.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/flytipwatch/impact-planner/internal/inference"
	"github.com/flytipwatch/impact-planner/internal/tasks"
	"github.com/flytipwatch/impact-planner/pkg/metrics"
)

const (
	stageSeverity  = "severity"
	stageMaterial  = "material"
	stageNarrative = "narrative"
	stageCouncil   = "council"
	stageImage     = "image"
	stagePlaces    = "places"

	// Rough council clearance cost for one severity unit, in pounds.
	clearanceCostPerUnit = 200.0

	fallbackContactNumber = "0300 123 4567"
)

type SeverityClassifier interface {
	ClassifySeverity(ctx context.Context, image []byte) (tasks.SeverityBucket, error)
}

type MaterialClassifier interface {
	ClassifyMaterial(ctx context.Context, image []byte) (tasks.MaterialLabel, error)
}

type NarrativeGenerator interface {
	GenerateSummary(ctx context.Context, facts inference.Facts) (string, error)
}

type CouncilLookup interface {
	FindCouncilContact(ctx context.Context, regionName string) (tasks.CouncilContact, error)
}

type ImageStore interface {
	Put(ctx context.Context, image []byte) (string, error)
}

type AreaEnricher interface {
	NearbyFeatures(ctx context.Context, postcode string) ([]string, error)
}

type RegionResolver interface {
	Resolve(postcode string) string
}

type ImpactCalculator interface {
	Calculate(region string, bucket tasks.SeverityBucket) tasks.ImpactMetrics
}

// Pipeline wires the analysis stages together. All fields are required except
// enricher and imageStore, which may be nil when the maps gateway or object
// storage is not configured.
type Pipeline struct {
	regions      RegionResolver
	calculator   ImpactCalculator
	severity     SeverityClassifier
	material     MaterialClassifier
	narrative    NarrativeGenerator
	council      CouncilLookup
	enricher     AreaEnricher
	imageStore   ImageStore
	stageTimeout time.Duration
	log          *zap.SugaredLogger
}

func New(
	regions RegionResolver,
	calculator ImpactCalculator,
	severity SeverityClassifier,
	material MaterialClassifier,
	narrative NarrativeGenerator,
	council CouncilLookup,
	enricher AreaEnricher,
	imageStore ImageStore,
	stageTimeout time.Duration,
) *Pipeline {
	return &Pipeline{
		regions:      regions,
		calculator:   calculator,
		severity:     severity,
		material:     material,
		narrative:    narrative,
		council:      council,
		enricher:     enricher,
		imageStore:   imageStore,
		stageTimeout: stageTimeout,
		log:          zap.S().Named("pipeline"),
	}
}

// Run analyzes one report. It only fails when the context is cancelled before
// the result is assembled; every stage error is absorbed by its fallback.
func (p *Pipeline) Run(ctx context.Context, postcode string, image []byte) (tasks.Result, error) {
	regionName := p.regions.Resolve(postcode)

	severity := p.classifySeverity(ctx, image)
	impact := p.calculator.Calculate(regionName, severity)

	res := tasks.Result{
		Region:   regionName,
		Severity: severity,
		Metrics:  impact,
	}

	// The remaining stages are independent except that the narrative wants
	// the material label, so material and narrative share a goroutine.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Material = p.classifyMaterial(gctx, image)
		res.Summary = p.generateSummary(gctx, inference.Facts{
			Region:       regionName,
			Severity:     severity,
			Material:     res.Material,
			Metrics:      impact,
			AreaFeatures: p.nearbyFeatures(gctx, postcode),
		})
		return nil
	})
	g.Go(func() error {
		res.Council = p.lookupCouncil(gctx, regionName)
		res.Council.Recommendations = recommendations(res.Council.Name, severity)
		return nil
	})
	g.Go(func() error {
		res.ImageURL = p.uploadImage(gctx, image)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return tasks.Result{}, err
	}
	return res, nil
}

func (p *Pipeline) classifySeverity(ctx context.Context, image []byte) tasks.SeverityBucket {
	stageCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	bucket, err := p.severity.ClassifySeverity(stageCtx, image)
	if err != nil {
		p.log.Warnw("severity classification failed, using default", "error", err, "default", tasks.DefaultSeverity)
		metrics.IncreaseStageFallbackMetric(stageSeverity)
		return tasks.DefaultSeverity
	}
	return bucket
}

func (p *Pipeline) classifyMaterial(ctx context.Context, image []byte) tasks.MaterialLabel {
	stageCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	label, err := p.material.ClassifyMaterial(stageCtx, image)
	if err != nil {
		p.log.Warnw("material classification failed, using default", "error", err, "default", tasks.DefaultMaterial)
		metrics.IncreaseStageFallbackMetric(stageMaterial)
		return tasks.DefaultMaterial
	}
	return label
}

func (p *Pipeline) generateSummary(ctx context.Context, facts inference.Facts) string {
	stageCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	summary, err := p.narrative.GenerateSummary(stageCtx, facts)
	if err != nil {
		p.log.Warnw("narrative generation failed, using template", "error", err)
		metrics.IncreaseStageFallbackMetric(stageNarrative)
		return fallbackSummary(facts)
	}
	return summary
}

// nearbyFeatures asks the maps gateway what surrounds the incident so the
// narrative can mention it. The enrichment is strictly additive: any failure
// leaves the summary without nearby places rather than failing the task.
func (p *Pipeline) nearbyFeatures(ctx context.Context, postcode string) []string {
	if p.enricher == nil {
		return nil
	}

	stageCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	features, err := p.enricher.NearbyFeatures(stageCtx, postcode)
	if err != nil {
		p.log.Warnw("area enrichment failed, summary will omit nearby places", "error", err, "postcode", postcode)
		metrics.IncreaseStageFallbackMetric(stagePlaces)
		return nil
	}
	return features
}

func (p *Pipeline) lookupCouncil(ctx context.Context, regionName string) tasks.CouncilContact {
	stageCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	contact, err := p.council.FindCouncilContact(stageCtx, regionName)
	if err != nil {
		p.log.Warnw("council lookup failed, synthesizing contact", "error", err, "region", regionName)
		metrics.IncreaseStageFallbackMetric(stageCouncil)
		return fallbackCouncil(regionName)
	}
	return contact
}

func (p *Pipeline) uploadImage(ctx context.Context, image []byte) string {
	if p.imageStore == nil || len(image) == 0 {
		return ""
	}

	stageCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	url, err := p.imageStore.Put(stageCtx, image)
	if err != nil {
		p.log.Warnw("image upload failed, result will have no image url", "error", err)
		metrics.IncreaseStageFallbackMetric(stageImage)
		return ""
	}
	return url
}

// fallbackSummary renders the narrative from the computed metrics when the
// narrative model is unavailable or returns garbage.
func fallbackSummary(facts inference.Facts) string {
	return fmt.Sprintf(
		"A %s fly-tipping incident of %s waste has been identified in %s. "+
			"Incidents like this are associated with a %.1f%% increase in local crime "+
			"and a %.1f%% impact on nearby house prices. "+
			"Clearing the waste will release an estimated %.1f kg of CO2. "+
			"Reporting it promptly helps your council remove it before the area attracts further dumping.",
		facts.Severity, facts.Material, facts.Region,
		facts.Metrics.CrimeChangePct,
		facts.Metrics.HousePriceImpactPct,
		facts.Metrics.Co2EmissionsKg,
	)
}

// fallbackCouncil synthesizes a plausible reporting contact from the region
// name alone. Confidence is always low because the URL is guessed.
func fallbackCouncil(regionName string) tasks.CouncilContact {
	return tasks.CouncilContact{
		Name:          fmt.Sprintf("%s Council", regionName),
		ReportingURL:  fmt.Sprintf("https://www.%s.gov.uk/report-fly-tipping", slug.Make(regionName)),
		ContactNumber: fallbackContactNumber,
		Confidence:    "low",
	}
}

func recommendations(councilName string, severity tasks.SeverityBucket) []string {
	return []string{
		fmt.Sprintf("Report this incident to %s using the reporting link provided.", councilName),
		"Include the photo and the postcode in your report so the crew can locate the waste.",
		"Do not touch or move the waste; it may contain hazardous materials.",
		fmt.Sprintf("Estimated clearance cost to the council: £%.0f.", severity.Multiplier()*clearanceCostPerUnit),
	}
}
