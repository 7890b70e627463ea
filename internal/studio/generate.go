package studio

import (
	"context"

	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/generator"
)

type GenerateInput struct {
	ProductID   string `json:"product_id"`
	Platform    string `json:"platform"`
	ContentType string `json:"content_type"`
	Tone        string `json:"tone"`
	Length      string `json:"length"`
}

// Request resolves the product and normalizes the style options. Values
// outside the known enums pass through and fall back inside the generator.
func (s *Studio) Request(in GenerateInput) (generator.Request, error) {
	p, err := s.Product(in.ProductID)
	if err != nil {
		return generator.Request{}, err
	}
	return generator.Request{
		Product:     p,
		Platform:    generator.ParsePlatform(in.Platform),
		ContentType: generator.ParseContentType(in.ContentType),
		Tone:        generator.ParseTone(in.Tone),
		Length:      generator.ParseLength(in.Length),
	}, nil
}

// Generate produces copy for a catalog product. The studio lock is not held
// while the generator waits.
func (s *Studio) Generate(ctx context.Context, in GenerateInput) (generator.Result, error) {
	req, err := s.Request(in)
	if err != nil {
		return generator.Result{}, err
	}

	s.logger.Debug("Generating content",
		zap.String("product_id", req.Product.ID),
		zap.String("platform", string(req.Platform)),
		zap.String("content_type", string(req.ContentType)),
		zap.String("tone", string(req.Tone)),
		zap.String("length", string(req.Length)),
	)

	content, err := s.gen.Wait(ctx, req)
	if err != nil {
		return generator.Result{}, err
	}

	result := generator.Describe(content, req.Length)
	s.recorder.ObserveGeneration(
		label(string(req.ContentType), req.ContentType.Valid()),
		label(string(req.Tone), req.Tone.Valid()),
		label(string(req.Length), req.Length.Valid()),
		result.Words, result.Shortfall,
	)
	if result.Shortfall {
		s.logger.Info("Generated content is below the length band",
			zap.String("product_id", req.Product.ID),
			zap.Int("words", result.Words),
			zap.Int("band_min", result.Band.Min),
		)
	}
	return result, nil
}

// label keeps metric cardinality bounded to the known enum values.
func label(v string, valid bool) string {
	if !valid {
		return "other"
	}
	return v
}
