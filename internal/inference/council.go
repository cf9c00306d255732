package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/flytipwatch/impact-planner/internal/tasks"
)

const councilPromptFormat = `Find the official fly-tipping reporting page for %s Council in the UK.

I need the SPECIFIC page where residents can report fly-tipping incidents, not just the main council website.

Provide the following information in this EXACT JSON format (no markdown, no explanations, just valid JSON):

{
  "url": "the direct URL to the fly-tipping reporting page or form",
  "contact_number": "council contact number for fly-tipping (format: 0xxx xxx xxxx or leave empty if not found)",
  "council_website": "main council website homepage",
  "confidence": "high/medium/low - how confident you are this is the correct reporting page"
}

CRITICAL INSTRUCTIONS:
- Find the ACTUAL reporting page, not just the homepage
- The URL should be a .gov.uk or official council domain
- Only use official council sources
- Return ONLY valid JSON, no markdown formatting, no code blocks
- If you're not confident, set confidence to "low" but still provide your best answer

Council to search: %s Council, UK`

type councilReply struct {
	Url            string `json:"url"`
	ContactNumber  string `json:"contact_number"`
	CouncilWebsite string `json:"council_website"`
	Confidence     string `json:"confidence"`
}

// FindCouncilContact looks up the official reporting page for a region's
// council. The model is asked for strict JSON, but fenced answers are
// tolerated.
func (c *Client) FindCouncilContact(ctx context.Context, regionName string) (tasks.CouncilContact, error) {
	searchName := strings.TrimSpace(strings.TrimSuffix(regionName, " Council"))
	prompt := fmt.Sprintf(councilPromptFormat, searchName, searchName)

	answer, err := c.generate(ctx, c.narrativeModel, prompt, nil)
	if err != nil {
		return tasks.CouncilContact{}, err
	}

	var reply councilReply
	if err := json.Unmarshal([]byte(stripCodeFences(answer)), &reply); err != nil {
		return tasks.CouncilContact{}, errors.Wrap(err, "parsing council lookup answer")
	}
	if reply.Url == "" {
		return tasks.CouncilContact{}, errors.New("council lookup answer has no url")
	}

	confidence := strings.ToLower(strings.TrimSpace(reply.Confidence))
	if confidence == "" {
		confidence = "medium"
	}

	return tasks.CouncilContact{
		Name:          fmt.Sprintf("%s Council", searchName),
		ReportingURL:  reply.Url,
		ContactNumber: reply.ContactNumber,
		Confidence:    confidence,
	}, nil
}

// stripCodeFences removes a surrounding markdown code block, with or without
// a json language tag.
func stripCodeFences(answer string) string {
	text := strings.TrimSpace(answer)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
