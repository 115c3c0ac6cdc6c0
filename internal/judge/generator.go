package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bichar/internal/middleware"
	"bichar/internal/models"
	"bichar/internal/observability"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Judgment is the structured output of one generation call. Judgment is
// always present; the enrichment fields may be absent when the model omits
// them.
type Judgment struct {
	Judgment            string   `json:"judgment"`
	RedFlagScore        *int     `json:"redFlagScore,omitempty"`
	RedFlagExplanation  string   `json:"redFlagExplanation,omitempty"`
	AmmiReaction        string   `json:"ammiReaction,omitempty"`
	PadoshiComments     []string `json:"padoshiComments,omitempty"`
	MarriageProbability *int     `json:"marriageProbability,omitempty"`
	MarriageReason      string   `json:"marriageReason,omitempty"`
}

// ErrEmptyJudgment is returned when the model reply parses but carries no
// judgment text. Callers must treat it as a failed generation, never as an
// empty default.
var ErrEmptyJudgment = errors.New("model returned no judgment text")

// Generator produces a judgment for a confession in the given persona/mood.
type Generator interface {
	Generate(ctx context.Context, content string, persona models.Persona, mood models.Mood) (*Judgment, error)
}

// OpenAIGenerator calls an OpenAI-compatible chat completion endpoint.
type OpenAIGenerator struct {
	model llms.Model
}

// NewOpenAIGenerator builds a Generator backed by an OpenAI-compatible API.
// baseURL may be empty for the default endpoint.
func NewOpenAIGenerator(apiKey, baseURL, model string) (*OpenAIGenerator, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
		openai.WithResponseFormat(&openai.ResponseFormat{Type: "json_object"}),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}

	return &OpenAIGenerator{model: client}, nil
}

// NewGeneratorWithModel wraps an existing llms.Model. Intended for tests.
func NewGeneratorWithModel(m llms.Model) *OpenAIGenerator {
	return &OpenAIGenerator{model: m}
}

// Generate invokes the model with the persona/mood instruction variant and
// parses its JSON reply. Any transport error, malformed JSON or missing
// judgment text fails the whole call; no partial result is returned.
func (g *OpenAIGenerator) Generate(ctx context.Context, content string, persona models.Persona, mood models.Mood) (*Judgment, error) {
	start := time.Now()

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(SystemPrompt(persona, mood))},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(content)},
		},
	}

	resp, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(0.7))
	outcome := "success"
	defer func() {
		observability.JudgmentGenerations.WithLabelValues(string(persona), string(mood), outcome).Inc()
		observability.JudgmentLatency.Observe(time.Since(start).Seconds())
	}()
	if err != nil {
		outcome = "error"
		middleware.Logger.ErrorContext(ctx, "judgment generation failed",
			slog.String("persona", string(persona)),
			slog.String("mood", string(mood)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("judgment generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		outcome = "error"
		return nil, errors.New("model returned no choices")
	}

	judgment, err := parseJudgment(resp.Choices[0].Content)
	if err != nil {
		outcome = "unparseable"
		middleware.Logger.ErrorContext(ctx, "judgment output unparseable",
			slog.String("persona", string(persona)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return judgment, nil
}

// parseJudgment decodes the model reply and normalizes the score fields.
func parseJudgment(raw string) (*Judgment, error) {
	var j Judgment
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &j); err != nil {
		return nil, fmt.Errorf("unparseable judgment output: %w", err)
	}
	if strings.TrimSpace(j.Judgment) == "" {
		return nil, ErrEmptyJudgment
	}
	j.RedFlagScore = clampScore(j.RedFlagScore)
	j.MarriageProbability = clampScore(j.MarriageProbability)
	return &j, nil
}

func clampScore(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return &n
}
