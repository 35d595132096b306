package history

import (
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	// StatusPending marks a run waiting for an offline translation response.
	StatusPending Status = "pending"
)

// Run is one journaled invocation.
type Run struct {
	ID         string
	Command    string
	TimingPath string
	TextPath   string
	OutputPath string
	Profile    string
	Backend    string

	Records    int
	Placed     int
	Unplaced   int
	Dropped    int
	Translated int
	Delta      float64

	Status    Status
	Error     string
	StartedAt time.Time
	Duration  time.Duration
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// ShortID returns the first eight characters of a run ID for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
