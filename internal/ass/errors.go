package ass

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a line that cannot be decoded as a dialogue record.
	ErrMalformedRecord = errors.New("malformed dialogue record")
	// ErrDialoguePrefixMissing reports a line without the "Dialogue: " marker.
	ErrDialoguePrefixMissing = errors.New("line does not start with 'Dialogue:'")
	// ErrMissingFields reports a payload with fewer than FieldCount fields.
	ErrMissingFields = errors.New("missing fields")
	// ErrTimeParse marks an unparsable timestamp.
	ErrTimeParse = errors.New("timestamp parse failure")
)

// MalformedError describes why a raw line could not be parsed.
type MalformedError struct {
	Cause error
	Found int
}

func (e *MalformedError) Error() string {
	if errors.Is(e.Cause, ErrMissingFields) {
		return fmt.Sprintf("missing fields: expected %d, found %d", FieldCount, e.Found)
	}
	return fmt.Sprintf("prefix error: %v", e.Cause)
}

func (e *MalformedError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Cause}
}

// TimeParseError reports the timestamp text and the component that failed.
type TimeParseError struct {
	Value     string
	Component string
	Err       error
}

func (e *TimeParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid timestamp %q: %s: %v", e.Value, e.Component, e.Err)
	}
	return fmt.Sprintf("invalid timestamp %q: %s", e.Value, e.Component)
}

func (e *TimeParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrTimeParse, e.Err}
	}
	return []error{ErrTimeParse}
}
