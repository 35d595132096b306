package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"durazubs/internal/config"
	"durazubs/internal/history"
	"durazubs/internal/logging"
	"durazubs/internal/merge"
	"durazubs/internal/scenes"
	"durazubs/internal/stylist"
	"durazubs/internal/translate"
)

// ErrSceneMismatch is returned by ApplyTranslation when the scene dialogue of
// a track differs before and after cleaning.
var ErrSceneMismatch = errors.New("scene dialogue changed by cleaning")

// Journal records finished runs.
type Journal interface {
	Record(ctx context.Context, run history.Run) (history.Run, error)
}

// Options configures a Processor. Nil Translator means no translation; nil
// Profile means no restyling.
type Options struct {
	Sync       merge.Options
	Translator translate.Translator
	Backend    string
	Profile    stylist.Profile
	ChunkSize  int
	Target     string
	Journal    Journal
	Logger     *slog.Logger
}

// Processor runs the merge steps.
type Processor struct {
	sync       *merge.Synchronizer
	cleaner    *merge.Cleaner
	translator translate.Translator
	backend    string
	profile    stylist.Profile
	chunkSize  int
	target     string
	journal    Journal
	logger     *slog.Logger
}

// SyncReport is the outcome of Synchronize.
type SyncReport struct {
	merge.Result
	Timing merge.CleanStats
	Text   merge.CleanStats
}

// NewProcessor validates opts and builds a Processor.
func NewProcessor(opts Options) (*Processor, error) {
	logger := logging.NewComponentLogger(opts.Logger, "pipeline")
	syncOpts := opts.Sync
	if syncOpts.Logger == nil {
		syncOpts.Logger = opts.Logger
	}
	sync, err := merge.NewSynchronizer(syncOpts)
	if err != nil {
		return nil, err
	}
	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = scenes.DefaultChunkSize
	}
	return &Processor{
		sync:       sync,
		cleaner:    merge.NewCleaner(opts.Logger),
		translator: opts.Translator,
		backend:    opts.Backend,
		profile:    opts.Profile,
		chunkSize:  chunk,
		target:     opts.Target,
		journal:    opts.Journal,
		logger:     logger,
	}, nil
}

// NewFromConfig builds a Processor from configuration. journal may be nil.
func NewFromConfig(cfg *config.Config, journal Journal, logger *slog.Logger) (*Processor, error) {
	translator, err := translate.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewProcessor(Options{
		Sync:       SyncOptions(cfg),
		Translator: translator,
		Backend:    cfg.Translation.Backend,
		Profile:    StyleProfile(cfg.Style.Profile),
		ChunkSize:  cfg.Translation.ChunkSize,
		Target:     cfg.Translation.TargetLanguage,
		Journal:    journal,
		Logger:     logger,
	})
}

// SyncOptions maps the sync section of cfg onto merge options.
func SyncOptions(cfg *config.Config) merge.Options {
	return merge.Options{
		Tolerance:      cfg.Tolerance(),
		HeaderSource:   merge.HeaderSource(cfg.Sync.HeaderSource),
		TrailingBlocks: merge.TrailingPolicy(cfg.Sync.TrailingBlocks),
	}
}

// StyleProfile returns the profile for a normalized profile name, or nil when
// styling is disabled.
func StyleProfile(name string) stylist.Profile {
	if name == "" {
		return nil
	}
	return stylist.ProfileFor(name)
}

// Synchronize cleans and sorts both tracks and merges them.
func (p *Processor) Synchronize(timing, text []string) (SyncReport, error) {
	preparedTiming, timingStats, err := p.prepare(merge.TimingTrack, timing)
	if err != nil {
		return SyncReport{}, err
	}
	preparedText, textStats, err := p.prepare(merge.TextTrack, text)
	if err != nil {
		return SyncReport{}, err
	}
	result, err := p.sync.Run(preparedTiming, preparedText)
	if err != nil {
		return SyncReport{}, err
	}
	return SyncReport{Result: result, Timing: timingStats, Text: textStats}, nil
}

// LinesToTranslate returns the translation request payload for the scene
// dialogue of lines.
func (p *Processor) LinesToTranslate(lines []string) ([]string, error) {
	prepared, _, err := p.prepare("", lines)
	if err != nil {
		return nil, err
	}
	texts, err := scenes.Extract(prepared)
	if err != nil {
		return nil, err
	}
	return scenes.Instruct(texts, p.chunkSize, p.target), nil
}

// ApplyTranslation injects translations into the scene records of lines by
// position. Every other line is kept as is. It fails when cleaning would
// change the scene dialogue LinesToTranslate sees, since positions would no
// longer line up.
func (p *Processor) ApplyTranslation(lines, translations []string) ([]string, error) {
	raw, err := scenes.Extract(lines)
	if err != nil {
		return nil, err
	}
	prepared, _, err := p.prepare("", lines)
	if err != nil {
		return nil, err
	}
	cleaned, err := scenes.Extract(prepared)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(raw, cleaned) {
		return nil, fmt.Errorf("%w: track has %d scene lines, %d after cleaning", ErrSceneMismatch, len(raw), len(cleaned))
	}
	return scenes.Inject(lines, translations)
}

// ApplyStyle restyles lines with the configured profile, or returns them
// unchanged when no profile is configured.
func (p *Processor) ApplyStyle(lines []string) ([]string, error) {
	if p.profile == nil {
		return lines, nil
	}
	return stylist.Apply(lines, p.profile)
}

// Profile returns the configured style profile, or nil.
func (p *Processor) Profile() stylist.Profile { return p.profile }

func (p *Processor) prepare(track string, lines []string) ([]string, merge.CleanStats, error) {
	prepared, stats, err := merge.Prepare(lines, p.cleaner)
	if err != nil {
		if track == "" {
			return nil, stats, err
		}
		return nil, stats, fmt.Errorf("%s track: %w", track, err)
	}
	p.logger.Debug("track prepared",
		logging.String(logging.FieldTrack, track),
		logging.Int("kept", stats.Kept),
		logging.Int("non_dialogue", stats.NonDialogue),
		logging.Int("noise", stats.Noise),
		logging.Int("duplicates", stats.Duplicates),
		logging.Int("malformed", stats.Malformed),
	)
	return prepared, stats, nil
}
