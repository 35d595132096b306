package merge

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"durazubs/internal/ass"
	"durazubs/internal/logging"
)

// DefaultTolerance is the maximum distance between a cursor record (on the
// output timeline) and a block's preceding neighbour for the block to be placed.
const DefaultTolerance = time.Second

// HeaderSource selects which track's header opens the output.
type HeaderSource string

const (
	HeaderFromTiming HeaderSource = TimingTrack
	HeaderFromText   HeaderSource = TextTrack
)

// TrailingPolicy decides what happens to blocks still queued once the cursor
// is exhausted.
type TrailingPolicy string

const (
	TrailingAppend TrailingPolicy = "append"
	TrailingDrop   TrailingPolicy = "drop"
)

// Options configures a Synchronizer. Zero values select the defaults.
type Options struct {
	Tolerance      time.Duration
	HeaderSource   HeaderSource
	TrailingBlocks TrailingPolicy
	Logger         *slog.Logger
}

// Result is the outcome of one merge.
type Result struct {
	Lines []string
	// Records is the number of ordinary records emitted.
	Records  int
	Placed   int
	Unplaced int
	// Delta is the offset in effect after the last cursor record.
	Delta float64
	// BonusTrack names the track the scene blocks were taken from, or "" when
	// neither track carries any.
	BonusTrack string
}

// Synchronizer merges a timing track and a text track. The timing track's
// ordinary records define the timeline and its scene blocks are transplanted
// verbatim; the text track's ordinary records are walked by a sequential
// cursor and supply the emitted text, style, name, and effect.
type Synchronizer struct {
	tolerance float64
	header    HeaderSource
	trailing  TrailingPolicy
	logger    *slog.Logger
}

// NewSynchronizer validates opts and returns a Synchronizer.
func NewSynchronizer(opts Options) (*Synchronizer, error) {
	if opts.Tolerance < 0 {
		return nil, fmt.Errorf("tolerance must not be negative, got %v", opts.Tolerance)
	}
	if opts.Tolerance == 0 {
		opts.Tolerance = DefaultTolerance
	}
	switch opts.HeaderSource {
	case "":
		opts.HeaderSource = HeaderFromText
	case HeaderFromTiming, HeaderFromText:
	default:
		return nil, fmt.Errorf("header source: unsupported value %q", opts.HeaderSource)
	}
	switch opts.TrailingBlocks {
	case "":
		opts.TrailingBlocks = TrailingAppend
	case TrailingAppend, TrailingDrop:
	default:
		return nil, fmt.Errorf("trailing blocks: unsupported value %q", opts.TrailingBlocks)
	}
	return &Synchronizer{
		tolerance: opts.Tolerance.Seconds(),
		header:    opts.HeaderSource,
		trailing:  opts.TrailingBlocks,
		logger:    logging.NewComponentLogger(opts.Logger, "synchronizer"),
	}, nil
}

type parsedTrack struct {
	name     string
	header   []string
	entries  []entry
	ordinary []entry
}

func parseTrack(name string, lines []string) (*parsedTrack, error) {
	header, body := Split(lines)
	entries, err := parseEntries(name, body)
	if err != nil {
		return nil, err
	}
	t := &parsedTrack{name: name, header: header, entries: entries}
	for _, e := range entries {
		if !e.scene {
			t.ordinary = append(t.ordinary, e)
		}
	}
	if len(t.ordinary) == 0 {
		return nil, &TrackError{Track: name, Err: ErrNoDialogue}
	}
	return t, nil
}

// Run merges the two tracks. Both are expected to be cleaned and sorted
// (see Prepare). On error no output is produced.
func (s *Synchronizer) Run(timing, text []string) (Result, error) {
	tt, err := parseTrack(TimingTrack, timing)
	if err != nil {
		return Result{}, err
	}
	xt, err := parseTrack(TextTrack, text)
	if err != nil {
		return Result{}, err
	}

	delta := tt.ordinary[0].rec.Start - xt.ordinary[0].rec.Start

	queue := indexEntries(tt.entries)
	bonus := TimingTrack
	// Blocks carried by the text track share the cursor's timeline, so they
	// are tested against unshifted times and never recalibrate delta.
	onTimeline := true
	if queue.Len() == 0 {
		queue = indexEntries(xt.entries)
		bonus, onTimeline = TextTrack, false
	} else if n := len(xt.entries) - len(xt.ordinary); n > 0 {
		s.logger.Warn("ignoring text track scene records",
			logging.Int("records", n),
			logging.String(logging.FieldTrack, TextTrack),
			logging.String("reason", "timing track carries scene blocks"),
		)
	}
	if queue.Len() == 0 {
		bonus = ""
	}

	res := Result{BonusTrack: bonus}
	var out []string
	if s.header == HeaderFromTiming {
		out = append(out, tt.header...)
	} else {
		out = append(out, xt.header...)
	}

	emitBlock := func(b *SceneBlock) {
		out = append(out, b.Lines...)
	}

	for queue.Len() > 0 && queue.Peek().Previous == nil {
		b := queue.Pop()
		emitBlock(b)
		res.Placed++
		s.logger.Debug("placed leading scene block", logging.Int("records", len(b.Lines)))
	}

	for i, cur := range xt.ordinary {
		out = append(out, ass.Format(cur.rec.Shifted(delta)))
		res.Records++

		block := queue.Pop()
		if block == nil {
			continue
		}
		at := cur.rec.Start
		if onTimeline {
			at += delta
		}
		diff := math.Abs(at - block.Previous.Start)
		if diff >= s.tolerance {
			queue.PushFront(block)
			continue
		}

		emitBlock(block)
		res.Placed++
		if onTimeline && i+1 < len(xt.ordinary) && block.Next != nil {
			next := block.Next.Start - xt.ordinary[i+1].rec.Start
			s.logger.Debug("recalibrated delta after scene block",
				logging.Float64("previous_delta", delta),
				logging.Float64("delta", next),
				logging.Int("records", len(block.Lines)),
			)
			delta = next
		}
	}

	for _, b := range queue.Drain() {
		res.Unplaced++
		attrs := []logging.Attr{
			logging.String(logging.FieldTrack, bonus),
			logging.Int("records", len(b.Lines)),
			logging.String("after", ass.FormatTime(b.Previous.Start)),
			logging.String("policy", string(s.trailing)),
		}
		if s.trailing == TrailingAppend {
			emitBlock(b)
			s.logger.Warn("scene block not placed within tolerance; appended at end", logging.Args(attrs...)...)
			continue
		}
		s.logger.Warn("scene block not placed within tolerance; dropped", logging.Args(attrs...)...)
	}

	res.Lines = out
	res.Delta = delta
	return res, nil
}
