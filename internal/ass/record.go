package ass

import (
	"fmt"
	"strings"
)

const (
	// DialoguePrefix is the literal marker that opens every dialogue record.
	DialoguePrefix = "Dialogue: "
	// FieldCount is the number of comma-separated fields in a dialogue payload.
	FieldCount = 10
	// CanonicalLayer is written on every formatted record.
	CanonicalLayer = "10"
)

const (
	fieldLayer  = 0
	fieldStart  = 1
	fieldEnd    = 2
	fieldStyle  = 3
	fieldName   = 4
	fieldEffect = 8
	fieldText   = 9
)

// Record is one parsed dialogue line. Margins are not modeled and are written
// as zero.
type Record struct {
	Layer  string
	Start  float64
	End    float64
	Style  string
	Name   string
	Effect string
	Text   string
}

// LineKey identifies a record for adjacent-duplicate detection.
type LineKey struct {
	Start float64
	End   float64
	Style string
}

// Key returns the record's duplicate-detection identity.
func (r Record) Key() LineKey {
	return LineKey{Start: r.Start, End: r.End, Style: r.Style}
}

// Shifted returns a copy with start and end moved by delta seconds.
func (r Record) Shifted(delta float64) Record {
	r.Start += delta
	r.End += delta
	return r
}

// WithText returns a copy carrying the given text.
func (r Record) WithText(text string) Record {
	r.Text = text
	return r
}

// WithStyle returns a copy carrying the given style.
func (r Record) WithStyle(style string) Record {
	r.Style = style
	return r
}

// Parse decodes a raw dialogue line. The text field consumes every remaining
// comma.
func Parse(raw string) (Record, error) {
	payload, ok := strings.CutPrefix(raw, DialoguePrefix)
	if !ok {
		return Record{}, &MalformedError{Cause: ErrDialoguePrefixMissing}
	}
	parts := strings.SplitN(payload, ",", FieldCount)
	if len(parts) < FieldCount {
		return Record{}, &MalformedError{Cause: ErrMissingFields, Found: len(parts)}
	}
	start, err := ParseTime(parts[fieldStart])
	if err != nil {
		return Record{}, fmt.Errorf("start: %w", err)
	}
	end, err := ParseTime(parts[fieldEnd])
	if err != nil {
		return Record{}, fmt.Errorf("end: %w", err)
	}
	return Record{
		Layer:  strings.TrimSpace(parts[fieldLayer]),
		Start:  start,
		End:    end,
		Style:  strings.TrimSpace(parts[fieldStyle]),
		Name:   strings.TrimSpace(parts[fieldName]),
		Effect: strings.TrimSpace(parts[fieldEffect]),
		Text:   strings.TrimSpace(parts[fieldText]),
	}, nil
}

// Format renders a record as a canonical dialogue line.
func Format(r Record) string {
	var b strings.Builder
	b.Grow(len(DialoguePrefix) + len(r.Style) + len(r.Name) + len(r.Effect) + len(r.Text) + 40)
	b.WriteString(DialoguePrefix)
	b.WriteString(CanonicalLayer)
	b.WriteByte(',')
	b.WriteString(FormatTime(r.Start))
	b.WriteByte(',')
	b.WriteString(FormatTime(r.End))
	b.WriteByte(',')
	b.WriteString(r.Style)
	b.WriteByte(',')
	b.WriteString(r.Name)
	b.WriteString(",0,0,0,")
	b.WriteString(r.Effect)
	b.WriteByte(',')
	b.WriteString(r.Text)
	return b.String()
}
