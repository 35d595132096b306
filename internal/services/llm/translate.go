package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// TranslationPrompt instructs the model to translate a numbered batch of
// subtitle lines and answer with a JSON object.
const TranslationPrompt = `You translate subtitle dialogue.
Translate every entry of "lines" into the language named by "target".
Keep ASS override tags such as {\i1} and line breaks such as \N exactly where they are.
Do not merge, split, drop or reorder entries.
Respond with JSON only: {"translations": ["...", "..."]} with exactly one string per input line, in input order.`

// ErrBatchMismatch reports a reply whose translation count differs from the request.
var ErrBatchMismatch = errors.New("translation count mismatch")

type translationRequest struct {
	Target string   `json:"target"`
	Lines  []string `json:"lines"`
}

type translationReply struct {
	Translations []string `json:"translations"`
}

// TranslateBatch translates lines into target in a single request. The reply
// must carry exactly one translation per input line.
func (c *Client) TranslateBatch(ctx context.Context, lines []string, target string) ([]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, errors.New("llm translate: target language required")
	}
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("llm translate: %w", ErrMissingAPIKey)
	}
	body, err := json.Marshal(translationRequest{Target: target, Lines: lines})
	if err != nil {
		return nil, fmt.Errorf("llm translate: encode request: %w", err)
	}
	content, err := c.completeWithRetry(ctx, c.jsonRequest(TranslationPrompt, string(body)), "llm translate")
	if err != nil {
		return nil, err
	}
	var reply translationReply
	if err := DecodeLLMJSON(content, &reply); err != nil {
		return nil, fmt.Errorf("llm translate: parse payload: %w", err)
	}
	if len(reply.Translations) != len(lines) {
		return nil, fmt.Errorf("llm translate: %w: sent %d, received %d", ErrBatchMismatch, len(lines), len(reply.Translations))
	}
	return reply.Translations, nil
}
