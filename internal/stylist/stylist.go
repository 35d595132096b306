// Package stylist rewrites a merged track for a fixed rendering profile:
// script resolution keys, an injected style definition, and restyled
// dialogue.
package stylist

import (
	"fmt"
	"slices"
	"strings"

	"durazubs/internal/ass"
)

// Script resolution written into [Script Info].
const (
	PlayResX     = 640
	PlayResY     = 360
	ScaledBorder = true
)

type scan struct {
	out         []string
	inInfo      bool
	inStyles    bool
	haveResX    bool
	haveResY    bool
	haveScaled  bool
	postInfo    int
	lastStyle   int
	stylesBlock int
	counts      map[string]int
	order       []string
}

// Apply returns a copy of lines prepared for profile. Script-info
// resolution keys are rewritten or injected, the profile's definitions are
// added to the styles section (creating one after the script info when
// absent), and every record using the dominant style or tagged as a scene is
// restyled.
func Apply(lines []string, profile Profile) ([]string, error) {
	s := &scan{
		out:         make([]string, 0, len(lines)+8),
		postInfo:    -1,
		lastStyle:   -1,
		stylesBlock: -1,
		counts:      make(map[string]int),
	}
	for idx, line := range lines {
		if err := s.consume(line); err != nil {
			return nil, fmt.Errorf("style: line %d: %w", idx+1, err)
		}
	}
	if s.inInfo {
		s.closeInfo()
	}

	out := s.insertDefinitions(profile.Definitions())
	dominant, ok := s.dominant()
	if !ok {
		return out, nil
	}
	for i, line := range out {
		if !ass.Default.IsDialogue(line) {
			continue
		}
		rec, err := ass.Parse(line)
		if err != nil {
			return nil, err
		}
		if rec.Style == dominant || ass.Default.IsSceneRecord(rec) {
			out[i] = ass.Format(profile.Apply(rec))
		}
	}
	return out, nil
}

func (s *scan) consume(line string) error {
	trimmed := strings.TrimSpace(line)
	switch {
	case ass.IsScriptInfo(trimmed):
		s.inInfo, s.inStyles = true, false
	case ass.IsStylesSection(trimmed):
		if s.inInfo {
			s.closeInfo()
		}
		s.inInfo, s.inStyles = false, true
		s.stylesBlock = len(s.out)
	case ass.IsSectionStart(trimmed):
		if s.inInfo {
			s.closeInfo()
		}
		s.inInfo, s.inStyles = false, false
	}

	if s.inInfo {
		switch {
		case ass.IsPlayResX(trimmed):
			s.haveResX = true
			s.out = append(s.out, ass.FormatPlayResX(PlayResX))
			return nil
		case ass.IsPlayResY(trimmed):
			s.haveResY = true
			s.out = append(s.out, ass.FormatPlayResY(PlayResY))
			return nil
		case ass.IsScaledBorder(trimmed):
			s.haveScaled = true
			s.out = append(s.out, ass.FormatScaledBorder(ScaledBorder))
			return nil
		case trimmed == "":
			s.closeInfo()
		}
	}

	if s.inStyles {
		switch {
		case ass.IsStyleDefinition(line):
			s.lastStyle = len(s.out)
		case ass.IsFormatLine(trimmed) && s.lastStyle < 0:
			s.stylesBlock = len(s.out)
		}
	}

	if ass.Default.IsDialogue(line) {
		rec, err := ass.Parse(line)
		if err != nil {
			return err
		}
		if _, seen := s.counts[rec.Style]; !seen {
			s.order = append(s.order, rec.Style)
		}
		s.counts[rec.Style]++
	}
	s.out = append(s.out, line)
	return nil
}

// closeInfo injects the resolution keys the section lacked and remembers
// where the section ended.
func (s *scan) closeInfo() {
	if !s.haveResX {
		s.out = append(s.out, ass.FormatPlayResX(PlayResX))
	}
	if !s.haveResY {
		s.out = append(s.out, ass.FormatPlayResY(PlayResY))
	}
	if !s.haveScaled {
		s.out = append(s.out, ass.FormatScaledBorder(ScaledBorder))
	}
	s.haveResX, s.haveResY, s.haveScaled = true, true, true
	s.inInfo = false
	if s.postInfo < 0 {
		s.postInfo = len(s.out)
	}
}

func (s *scan) insertDefinitions(defs []string) []string {
	switch {
	case s.lastStyle >= 0:
		return slices.Insert(s.out, s.lastStyle+1, defs...)
	case s.stylesBlock >= 0:
		return slices.Insert(s.out, s.stylesBlock+1, defs...)
	}
	at := s.postInfo
	if at < 0 {
		at = len(s.out)
	}
	section := append([]string{"", ass.StylesTag, ass.StylesFormat}, defs...)
	return slices.Insert(s.out, at, section...)
}

// dominant returns the most used dialogue style; ties go to the style seen first.
func (s *scan) dominant() (string, bool) {
	best, bestCount := "", 0
	for _, style := range s.order {
		if n := s.counts[style]; n > bestCount {
			best, bestCount = style, n
		}
	}
	return best, bestCount > 0
}
