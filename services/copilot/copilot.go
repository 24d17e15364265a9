package copilot

import (
	"context"

	"github.com/piresc/vigilante/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_generator.go -package=mocks github.com/piresc/vigilante/services/copilot TextGenerator

// TextGenerator is the external text-generation provider
type TextGenerator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (string, error)
}

// GeneratorFactory creates a TextGenerator on first use
type GeneratorFactory func(ctx context.Context) (TextGenerator, error)

// BackgroundCommand is the synthetic command used for background triggers
const BackgroundCommand = "safety summary"
