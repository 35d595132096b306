package merge

import (
	"log/slog"

	"durazubs/internal/ass"
	"durazubs/internal/logging"
)

// CleanStats counts what a cleaning pass removed.
type CleanStats struct {
	Kept        int
	NonDialogue int
	Noise       int
	Duplicates  int
	Malformed   int
}

// Dropped returns the total number of removed lines.
func (s CleanStats) Dropped() int {
	return s.NonDialogue + s.Noise + s.Duplicates + s.Malformed
}

// Cleaner removes non-dialogue lines, noise records, and records repeating the
// previously kept record's timing and style.
type Cleaner struct {
	classifier *ass.Classifier
	logger     *slog.Logger
}

// NewCleaner returns a Cleaner using the shared classifier.
func NewCleaner(logger *slog.Logger) *Cleaner {
	return &Cleaner{
		classifier: ass.Default,
		logger:     logging.NewComponentLogger(logger, "cleaner"),
	}
}

// Clean returns the kept lines in their original order. Malformed records are
// dropped and counted; the pass never fails.
func (c *Cleaner) Clean(lines []string) ([]string, CleanStats) {
	var stats CleanStats
	kept := make([]string, 0, len(lines))
	var last ass.LineKey
	haveLast := false

	for idx, line := range lines {
		if !c.classifier.IsDialogue(line) {
			stats.NonDialogue++
			continue
		}
		rec, err := ass.Parse(line)
		if err != nil {
			stats.Malformed++
			c.logger.Debug("dropping malformed record",
				logging.Int("line", idx+1),
				logging.Error(err),
			)
			continue
		}
		if c.classifier.IsNoise(rec) {
			stats.Noise++
			continue
		}
		key := rec.Key()
		if haveLast && key == last {
			stats.Duplicates++
			continue
		}
		last, haveLast = key, true
		kept = append(kept, line)
	}

	stats.Kept = len(kept)
	return kept, stats
}
