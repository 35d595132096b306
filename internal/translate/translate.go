// Package translate supplies the backends that turn extracted scene text into
// translated text: a no-op identity, an offline file round trip, and an LLM
// batch translator.
package translate

import (
	"context"
	"fmt"
	"log/slog"

	"durazubs/internal/config"
	"durazubs/internal/logging"
	"durazubs/internal/services/llm"
)

// Translator converts lines into the configured target language. The result
// should be aligned with the input; shorter results leave the remaining lines
// untranslated.
type Translator interface {
	Translate(ctx context.Context, lines []string) ([]string, error)
}

// Identity returns its input unchanged.
type Identity struct{}

// Translate implements Translator.
func (Identity) Translate(_ context.Context, lines []string) ([]string, error) {
	return lines, nil
}

// New builds the translator selected by cfg.Translation.Backend.
func New(cfg *config.Config, logger *slog.Logger) (Translator, error) {
	logger = logging.NewComponentLogger(logger, "translate")
	tc := cfg.Translation
	switch tc.Backend {
	case config.BackendNone, "":
		return Identity{}, nil
	case config.BackendFile:
		return &FileRoundTrip{
			RequestPath:  tc.RequestFile,
			ResponsePath: tc.ResponseFile,
			ChunkSize:    tc.ChunkSize,
			Target:       tc.TargetLanguage,
			Logger:       logger,
		}, nil
	case config.BackendLLM:
		client := llm.NewClient(llm.Config(cfg.GetLLM()))
		return NewLLM(client, tc.TargetLanguage, cfg.LLM.BatchSize, logger), nil
	default:
		return nil, fmt.Errorf("unknown translation backend %q", tc.Backend)
	}
}
