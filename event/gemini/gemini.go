// Package gemini narrates game events with Google's Gemini models. It is
// an optional collaborator: construction fails without credentials and the
// simulation runs fine without it.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/rustyeddy/decade/event"
)

const DefaultModel = "gemini-2.0-flash"

type Generator struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Generator{client: client, model: model}, nil
}

func (g *Generator) Close() error { return g.client.Close() }

func (g *Generator) Generate(ctx context.Context, req event.Request) (*event.Event, error) {
	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description": {
				Type:        genai.TypeString,
				Description: "A short text describing the event",
			},
			"cashImpact": {
				Type:        genai.TypeNumber,
				Description: "Positive or negative integer representing cash gained/lost",
			},
			"marketImpact": {
				Type:        genai.TypeString,
				Enum:        []string{"bull", "bear", "neutral"},
				Description: "How this affects the stock market",
			},
		},
		Required: []string{"description", "cashImpact", "marketImpact"},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("gemini: generate: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, nil
	}

	var raw struct {
		Description  string  `json:"description"`
		CashImpact   float64 `json:"cashImpact"`
		MarketImpact string  `json:"marketImpact"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("gemini: parse response: %w", err)
	}

	return &event.Event{
		Description: raw.Description,
		CashImpact:  int(math.Round(raw.CashImpact)),
		Impact:      event.Impact(raw.MarketImpact),
	}, nil
}

func buildPrompt(req event.Request) string {
	jobDesc := "Unemployed"
	if req.Job != nil {
		jobDesc = fmt.Sprintf("%s (%s)", req.Job.Title, req.Job.Category)
	}
	courses := "None"
	if len(req.Courses) > 0 {
		courses = strings.Join(req.Courses, ", ")
	}
	lang := req.Language
	if lang == "" {
		lang = "English"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a game master for a financial simulation game.\n")
	fmt.Fprintf(&b, "Current stats:\n")
	fmt.Fprintf(&b, "- Year: %d\n", req.Year)
	fmt.Fprintf(&b, "- Job: %s\n", jobDesc)
	fmt.Fprintf(&b, "- Net Worth: $%.0f\n", req.NetWorth)
	fmt.Fprintf(&b, "- Education Level: %s\n", req.Education)
	fmt.Fprintf(&b, "- Additional Training: %s\n\n", courses)
	fmt.Fprintf(&b, "Generate a random life event or market news affecting the player.\n")
	fmt.Fprintf(&b, "Tailor the event to the player's job sector.\n\n")
	fmt.Fprintf(&b, "IMPORTANT: Return the 'description' field in %s language.\n\n", lang)
	fmt.Fprintf(&b, "Respond in JSON format.\n")
	return b.String()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	return strings.TrimSpace(text)
}
