package pipeline

import (
	"context"
	"errors"
	"time"

	"durazubs/internal/history"
	"durazubs/internal/logging"
	"durazubs/internal/merge"
	"durazubs/internal/scenes"
	"durazubs/internal/services"
	"durazubs/internal/trackio"
	"durazubs/internal/translate"
)

// Request names the files of one merge.
type Request struct {
	TimingPath string
	TextPath   string
	OutputPath string
}

// Report summarizes a finished run.
type Report struct {
	RunID      string
	Records    int
	Placed     int
	Unplaced   int
	Delta      float64
	BonusTrack string
	Timing     merge.CleanStats
	Text       merge.CleanStats
	Translated int
	Styled     bool
	Duration   time.Duration
}

// Run performs the whole merge for req. The output file is only written when
// every earlier step succeeded. The run is journaled either way.
func (p *Processor) Run(ctx context.Context, req Request) (Report, error) {
	started := time.Now()
	report := Report{RunID: history.NewRunID()}
	ctx = logging.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("merge started",
		logging.String("timing", req.TimingPath),
		logging.String("text", req.TextPath),
		logging.String("output", req.OutputPath),
	)

	err := p.run(ctx, req, &report)
	report.Duration = time.Since(started)
	p.journalRun(ctx, req, report, started, err)

	if err != nil {
		logger.Error("merge failed", logging.Error(err), logging.Duration("elapsed", report.Duration))
		return report, err
	}
	logger.Info("merge finished",
		logging.Int("records", report.Records),
		logging.Int("placed_blocks", report.Placed),
		logging.Int("unplaced_blocks", report.Unplaced),
		logging.Float64("delta_seconds", report.Delta),
		logging.Int("translated", report.Translated),
		logging.Duration("elapsed", report.Duration),
	)
	return report, nil
}

func (p *Processor) run(ctx context.Context, req Request, report *Report) error {
	readCtx := logging.WithStep(ctx, "read")
	timing, err := trackio.Source{Path: req.TimingPath}.ReadLines(readCtx)
	if err != nil {
		return services.Wrap(services.ErrIO, "read", "timing track", "", err)
	}
	text, err := trackio.Source{Path: req.TextPath}.ReadLines(readCtx)
	if err != nil {
		return services.Wrap(services.ErrIO, "read", "text track", "", err)
	}
	logging.WithContext(readCtx, p.logger).Debug("tracks read",
		logging.Int("timing_lines", len(timing)),
		logging.Int("text_lines", len(text)),
	)

	timing, report.Timing, err = p.prepare(merge.TimingTrack, timing)
	if err != nil {
		return services.Wrap(services.ErrValidation, "prepare", "", "", err)
	}
	text, report.Text, err = p.prepare(merge.TextTrack, text)
	if err != nil {
		return services.Wrap(services.ErrValidation, "prepare", "", "", err)
	}

	timing, text, report.Translated, err = p.translateScenes(logging.WithStep(ctx, "translate"), timing, text)
	if err != nil {
		return err
	}

	result, err := p.sync.Run(timing, text)
	if err != nil {
		return services.Wrap(services.ErrValidation, "synchronize", "", "", err)
	}
	report.Records = result.Records
	report.Placed = result.Placed
	report.Unplaced = result.Unplaced
	report.Delta = result.Delta
	report.BonusTrack = result.BonusTrack

	merged, err := p.ApplyStyle(result.Lines)
	if err != nil {
		return services.Wrap(services.ErrValidation, "style", "", "", err)
	}
	report.Styled = p.profile != nil

	writeCtx := logging.WithStep(ctx, "write")
	sink := trackio.Sink{Path: req.OutputPath, Protected: []string{req.TimingPath, req.TextPath}}
	if err := sink.WriteLines(writeCtx, merged); err != nil {
		return services.Wrap(services.ErrIO, "write", "", "", err)
	}
	logging.WithContext(writeCtx, p.logger).Debug("output written",
		logging.String("path", req.OutputPath),
		logging.Int("lines", len(merged)),
	)
	return nil
}

// translateScenes translates the scene dialogue of whichever track carries
// it, preferring the timing track, and injects the result back.
func (p *Processor) translateScenes(ctx context.Context, timing, text []string) ([]string, []string, int, error) {
	if p.translator == nil {
		return timing, text, 0, nil
	}
	if _, identity := p.translator.(translate.Identity); identity {
		return timing, text, 0, nil
	}
	logger := logging.WithContext(ctx, p.logger)

	carrier, track := timing, merge.TimingTrack
	texts, err := scenes.Extract(carrier)
	if err != nil {
		return nil, nil, 0, services.Wrap(services.ErrValidation, "translate", "extract", "", err)
	}
	if len(texts) == 0 {
		carrier, track = text, merge.TextTrack
		if texts, err = scenes.Extract(carrier); err != nil {
			return nil, nil, 0, services.Wrap(services.ErrValidation, "translate", "extract", "", err)
		}
	}
	if len(texts) == 0 {
		logger.Info("no scene dialogue to translate")
		return timing, text, 0, nil
	}

	translated, err := p.translator.Translate(ctx, texts)
	if err != nil {
		if errors.Is(err, translate.ErrResponsePending) {
			return nil, nil, 0, services.Wrap(services.ErrPending, "translate", p.backend, "", err)
		}
		return nil, nil, 0, services.Wrap(services.ErrExternal, "translate", p.backend, "", err)
	}
	injected, err := scenes.Inject(carrier, translated)
	if err != nil {
		return nil, nil, 0, services.Wrap(services.ErrValidation, "translate", "inject", "", err)
	}
	count := min(len(translated), len(texts))
	logger.Info("scene dialogue translated",
		logging.String(logging.FieldTrack, track),
		logging.Int("scene_lines", len(texts)),
		logging.Int("translated", count),
	)
	if track == merge.TimingTrack {
		return injected, text, count, nil
	}
	return timing, injected, count, nil
}

func (p *Processor) journalRun(ctx context.Context, req Request, report Report, started time.Time, runErr error) {
	if p.journal == nil {
		return
	}
	run := history.Run{
		ID:         report.RunID,
		Command:    "sync",
		TimingPath: req.TimingPath,
		TextPath:   req.TextPath,
		OutputPath: req.OutputPath,
		Backend:    p.backend,
		Records:    report.Records,
		Placed:     report.Placed,
		Unplaced:   report.Unplaced,
		Dropped:    report.Timing.Dropped() + report.Text.Dropped(),
		Translated: report.Translated,
		Delta:      report.Delta,
		Status:     services.FailureStatus(runErr),
		StartedAt:  started,
		Duration:   report.Duration,
	}
	if p.profile != nil {
		run.Profile = p.profile.Name()
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if _, err := p.journal.Record(ctx, run); err != nil {
		logging.WithContext(ctx, p.logger).Warn("failed to journal run", logging.Error(err))
	}
}
