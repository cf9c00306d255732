package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/flytipwatch/impact-planner/internal/tasks"
)

// Facts is the structured input for the narrative stage: the resolved region,
// the classifications, and the already-computed numeric metrics. AreaFeatures
// lists notable nearby place categories; it is empty when the maps gateway is
// not configured or the lookup failed.
type Facts struct {
	Region       string
	Severity     tasks.SeverityBucket
	Material     tasks.MaterialLabel
	Metrics      tasks.ImpactMetrics
	AreaFeatures []string
}

const narrativePromptFormat = `You are a community impact analyst helping residents understand how fly-tipping affects them personally.

Generate a compelling, personalized one-paragraph summary (4-6 sentences) that tells a story about how this fly-tipping incident impacts the individual resident.

INCIDENT DETAILS:
- Location: %s
- Waste size: %s
- Waste type: %s
- Crime increase in area: %.1f%%
- House price impact: %.1f%%
- CO2 emissions: %.1f kg%s

WRITING GUIDELINES:
1. Start with immediate personal impact (their property value, their safety, their environment)
2. Make it feel personal and direct - use "your" and focus on tangible effects
3. Connect the dots between this incident and their daily life
4. Include a forward-looking element about community action
5. Keep it conversational but impactful - avoid jargon
6. DO NOT use bullet points or lists - write flowing prose
7. End on a note that empowers action
8. Do not have it be overly dramatic, but still personable.

TONE: Concerned but constructive, factual but engaging, personal but not preachy

Your one-paragraph summary:`

// GenerateSummary produces the narrative paragraph for a completed analysis.
func (c *Client) GenerateSummary(ctx context.Context, facts Facts) (string, error) {
	var features string
	if len(facts.AreaFeatures) > 0 {
		features = fmt.Sprintf("\n- Notable places nearby: %s", strings.Join(facts.AreaFeatures, ", "))
	}

	prompt := fmt.Sprintf(narrativePromptFormat,
		facts.Region,
		facts.Severity,
		facts.Material,
		facts.Metrics.CrimeChangePct,
		facts.Metrics.HousePriceImpactPct,
		facts.Metrics.Co2EmissionsKg,
		features,
	)

	summary, err := c.generate(ctx, c.narrativeModel, prompt, nil)
	if err != nil {
		return "", err
	}

	// Strip any markdown emphasis that crept into the prose.
	summary = strings.ReplaceAll(strings.TrimSpace(summary), "**", "")
	summary = strings.ReplaceAll(summary, "*", "")
	if summary == "" {
		return "", errors.New("empty summary from narrative model")
	}

	return summary, nil
}
