package inference

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/flytipwatch/impact-planner/internal/tasks"
)

const severityPrompt = `You are an expert at analyzing fly-tipping (illegal waste dumping) incidents.

Analyze this image and classify the amount of waste into EXACTLY ONE of these four categories:

1. small - a single small refuse bag or equivalent (roughly one shopping bag worth)
2. medium - 2-3 bags or a medium-sized pile (roughly a wheelie bin worth)
3. large - multiple bags or a large pile (roughly 4-8 bags worth)
4. vehicle-load - a van-sized load or larger (clearly would require a vehicle to transport)

CRITICAL INSTRUCTIONS:
- You MUST respond with ONLY ONE of these exact words: small, medium, large, vehicle-load
- Do NOT include any other text, explanation, or punctuation
- If you cannot see waste in the image, respond with: small
- Base your decision on the VOLUME of waste visible

Your response (one word only):`

const materialPrompt = `You are an expert at analyzing fly-tipping (illegal waste dumping) incidents.

Analyze this image and classify the TYPE of waste into EXACTLY ONE of these categories:

1. household - general household rubbish, black bags, food waste, general trash
2. construction - building materials, rubble, timber, plasterboard, bricks, cement
3. garden - grass cuttings, branches, leaves, soil, garden waste
4. hazardous - paint, chemicals, asbestos, batteries, oil, toxic materials
5. furniture - sofas, mattresses, chairs, tables, wardrobes, cabinets
6. electrical - white goods (fridges, washers), TVs, computers, electronic items

CRITICAL INSTRUCTIONS:
- You MUST respond with ONLY ONE of these exact words: household, construction, garden, hazardous, furniture, electrical
- Do NOT include any other text, explanation, or punctuation
- If you see multiple types, choose the DOMINANT or most visible type
- If you cannot clearly identify the waste, respond with: household

Your response (one word only):`

// ClassifySeverity asks the vision model for a severity bucket. Free-text
// answers are recovered by substring matching; an answer outside the closed
// set entirely yields ErrUnrecognizedAnswer.
func (c *Client) ClassifySeverity(ctx context.Context, image []byte) (tasks.SeverityBucket, error) {
	answer, err := c.generate(ctx, c.visionModel, severityPrompt, image)
	if err != nil {
		return tasks.DefaultSeverity, err
	}

	bucket, ok := tasks.ParseSeverity(answer)
	if !ok {
		zap.S().Named("inference").Warnf("unexpected severity answer: %q", strings.TrimSpace(answer))
		return tasks.DefaultSeverity, errors.Wrapf(ErrUnrecognizedAnswer, "severity %q", answer)
	}
	return bucket, nil
}

// ClassifyMaterial asks the vision model for a material label, with the same
// recovery rules as ClassifySeverity.
func (c *Client) ClassifyMaterial(ctx context.Context, image []byte) (tasks.MaterialLabel, error) {
	answer, err := c.generate(ctx, c.visionModel, materialPrompt, image)
	if err != nil {
		return tasks.DefaultMaterial, err
	}

	label, ok := tasks.ParseMaterial(answer)
	if !ok {
		zap.S().Named("inference").Warnf("unexpected material answer: %q", strings.TrimSpace(answer))
		return tasks.DefaultMaterial, errors.Wrapf(ErrUnrecognizedAnswer, "material %q", answer)
	}
	return label, nil
}
