package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/vigilante/internal/pkg/circuitbreaker"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/models"
	nrpkg "github.com/piresc/vigilante/internal/pkg/newrelic"
	"github.com/piresc/vigilante/services/copilot"
	"google.golang.org/genai"
)

const geminiBreaker = "gemini"

// ErrMissingAPIKey is returned when no Gemini API key is configured
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// contentGenerator is the subset of the genai Models service used here
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiGenerator struct {
	models   contentGenerator
	model    string
	breakers *circuitbreaker.Manager
}

// NewGeminiFactory returns a factory creating Gemini-backed generators.
// All generators share one circuit breaker so an outage is detected across drivers.
func NewGeminiFactory(cfg models.GeminiConfig, breakers *circuitbreaker.Manager) copilot.GeneratorFactory {
	return func(ctx context.Context) (copilot.TextGenerator, error) {
		if cfg.APIKey == "" {
			return nil, ErrMissingAPIKey
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}

		logger.Debug("Gemini client created", logger.String("model", cfg.Model))
		return newGeminiGenerator(client.Models, cfg.Model, breakers), nil
	}
}

func newGeminiGenerator(m contentGenerator, model string, breakers *circuitbreaker.Manager) *geminiGenerator {
	return &geminiGenerator{models: m, model: model, breakers: breakers}
}

// Generate sends one prompt with its system instruction
func (g *geminiGenerator) Generate(ctx context.Context, req models.GenerationRequest) (string, error) {
	config := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(req.Temperature)
	}

	var text string
	err := nrpkg.WithSegment(ctx, "Gemini.GenerateContent", func() error {
		return g.breakers.Execute(ctx, geminiBreaker, func(ctx context.Context) error {
			resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
			if err != nil {
				return err
			}
			text = resp.Text()
			return nil
		})
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return text, nil
}
