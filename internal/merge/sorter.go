package merge

import (
	"cmp"
	"fmt"
	"slices"

	"durazubs/internal/ass"
)

// Split returns the header (every line before the first dialogue record) and
// the body (the rest).
func Split(lines []string) (header, body []string) {
	for idx, line := range lines {
		if ass.Default.IsDialogue(line) {
			return lines[:idx:idx], lines[idx:]
		}
	}
	return lines, nil
}

type timedLine struct {
	key  int64
	line string
}

// Sort returns lines with the header unchanged and the body stable-sorted by
// start time quantized to milliseconds. Every body line must parse.
func Sort(lines []string) ([]string, error) {
	header, body := Split(lines)
	timed := make([]timedLine, 0, len(body))
	for idx, line := range body {
		rec, err := ass.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("sort: body line %d: %w", idx+1, err)
		}
		timed = append(timed, timedLine{key: ass.SortKey(rec.Start), line: line})
	}
	slices.SortStableFunc(timed, func(a, b timedLine) int {
		return cmp.Compare(a.key, b.key)
	})

	out := make([]string, 0, len(lines))
	out = append(out, header...)
	for _, tl := range timed {
		out = append(out, tl.line)
	}
	return out, nil
}

// Prepare cleans and sorts a raw track while keeping its header verbatim.
func Prepare(lines []string, cleaner *Cleaner) ([]string, CleanStats, error) {
	if cleaner == nil {
		cleaner = NewCleaner(nil)
	}
	header, body := Split(lines)
	cleaned, stats := cleaner.Clean(body)
	sorted, err := Sort(cleaned)
	if err != nil {
		return nil, stats, err
	}
	out := make([]string, 0, len(header)+len(sorted))
	out = append(out, header...)
	out = append(out, sorted...)
	return out, stats, nil
}
