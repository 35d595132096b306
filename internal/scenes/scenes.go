package scenes

import (
	"fmt"

	"durazubs/internal/ass"
)

// Extract returns the text of every scene record in file order. Callers pass
// a cleaned, sorted track; a scene candidate that fails to parse aborts.
func Extract(lines []string) ([]string, error) {
	var texts []string
	for idx, line := range lines {
		isScene, err := ass.Default.IsScene(line)
		if err != nil {
			return nil, fmt.Errorf("extract scenes: line %d: %w", idx+1, err)
		}
		if !isScene {
			continue
		}
		rec, err := ass.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("extract scenes: line %d: %w", idx+1, err)
		}
		texts = append(texts, rec.Text)
	}
	return texts, nil
}

// Inject replaces the text of each scene record, in order, with the next
// translation. Once translations run out the remaining scene records are left
// untouched. Replaced records are rewritten in canonical form; every other
// line is copied verbatim.
func Inject(lines, translations []string) ([]string, error) {
	out := make([]string, 0, len(lines))
	next := 0
	for idx, line := range lines {
		if next >= len(translations) {
			out = append(out, line)
			continue
		}
		isScene, err := ass.Default.IsScene(line)
		if err != nil {
			return nil, fmt.Errorf("inject translations: line %d: %w", idx+1, err)
		}
		if !isScene {
			out = append(out, line)
			continue
		}
		rec, err := ass.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("inject translations: line %d: %w", idx+1, err)
		}
		out = append(out, ass.Format(rec.WithText(translations[next])))
		next++
	}
	return out, nil
}
