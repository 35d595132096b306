package translate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"durazubs/internal/logging"
	"durazubs/internal/scenes"
	"durazubs/internal/textutil"
)

// BatchClient is the slice of the LLM client the translator needs.
type BatchClient interface {
	TranslateBatch(ctx context.Context, lines []string, target string) ([]string, error)
}

// LLM translates lines in batches through a chat model. Lines the language
// heuristic already marks as non-English are passed through untouched.
type LLM struct {
	client    BatchClient
	target    string
	batchSize int
	logger    *slog.Logger
}

// NewLLM wraps client. A non-positive batchSize uses scenes.DefaultChunkSize.
func NewLLM(client BatchClient, target string, batchSize int, logger *slog.Logger) *LLM {
	if batchSize <= 0 {
		batchSize = scenes.DefaultChunkSize
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LLM{client: client, target: target, batchSize: batchSize, logger: logger}
}

// Translate implements Translator.
func (t *LLM) Translate(ctx context.Context, lines []string) ([]string, error) {
	out := slices.Clone(lines)
	var pending []int
	for i, line := range lines {
		if textutil.NeedsTranslation(line) {
			pending = append(pending, i)
		}
	}
	t.logger.Info("translating scene lines",
		logging.Int("lines", len(lines)),
		logging.Int("pending", len(pending)),
		logging.Int("skipped", len(lines)-len(pending)),
		logging.String("target", t.target),
	)

	for start := 0; start < len(pending); start += t.batchSize {
		batch := pending[start:min(start+t.batchSize, len(pending))]
		texts := make([]string, len(batch))
		for i, idx := range batch {
			texts[i] = lines[idx]
		}
		translated, err := t.client.TranslateBatch(ctx, texts, t.target)
		if err != nil {
			return nil, fmt.Errorf("translate batch at line %d: %w", batch[0]+1, err)
		}
		if len(translated) != len(batch) {
			return nil, fmt.Errorf("translate batch at line %d: expected %d lines, got %d", batch[0]+1, len(batch), len(translated))
		}
		for i, idx := range batch {
			out[idx] = translated[i]
		}
		t.logger.Debug("batch translated",
			logging.Int("first_line", batch[0]+1),
			logging.Int("size", len(batch)),
		)
	}
	return out, nil
}
