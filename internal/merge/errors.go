package merge

import (
	"errors"
	"fmt"
)

// Track names used in errors and log fields.
const (
	TimingTrack = "timing"
	TextTrack   = "text"
)

// ErrNoDialogue reports a track without any ordinary dialogue record.
var ErrNoDialogue = errors.New("no ordinary dialogue records")

// TrackError attributes a failure to one input track and, when known, to the
// 1-based line of that track's body.
type TrackError struct {
	Track string
	Line  int
	Err   error
}

func (e *TrackError) Error() string {
	if e.Track == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s track: line %d: %v", e.Track, e.Line, e.Err)
	}
	return fmt.Sprintf("%s track: %v", e.Track, e.Err)
}

func (e *TrackError) Unwrap() error { return e.Err }
