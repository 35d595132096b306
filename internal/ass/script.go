package ass

import (
	"strconv"
	"strings"
)

const (
	ScriptInfoTag = "[Script Info]"
	StylesTag     = "[V4+ Styles]"
	EventsTag     = "[Events]"

	StylePrefix        = "Style:"
	FormatPrefix       = "Format:"
	PlayResXPrefix     = "PlayResX:"
	PlayResYPrefix     = "PlayResY:"
	ScaledBorderPrefix = "ScaledBorderAndShadow:"

	// StylesFormat is the column layout written when a styles section is created.
	StylesFormat = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"
)

// IsScriptInfo reports whether line opens the [Script Info] section.
func IsScriptInfo(line string) bool { return strings.Contains(line, ScriptInfoTag) }

// IsStylesSection reports whether line opens the [V4+ Styles] section.
func IsStylesSection(line string) bool { return strings.TrimSpace(line) == StylesTag }

// IsEventsSection reports whether line opens the [Events] section.
func IsEventsSection(line string) bool { return strings.HasPrefix(line, EventsTag) }

// IsSectionStart reports whether line opens any section.
func IsSectionStart(line string) bool { return strings.HasPrefix(strings.TrimSpace(line), "[") }

// IsStyleDefinition reports whether line is a "Style:" definition.
func IsStyleDefinition(line string) bool { return hasTrimmedPrefix(line, StylePrefix) }

// IsFormatLine reports whether line is a section "Format:" line.
func IsFormatLine(line string) bool { return strings.HasPrefix(line, FormatPrefix) }

func IsPlayResX(line string) bool { return hasTrimmedPrefix(line, PlayResXPrefix) }

func IsPlayResY(line string) bool { return hasTrimmedPrefix(line, PlayResYPrefix) }

func IsScaledBorder(line string) bool { return hasTrimmedPrefix(line, ScaledBorderPrefix) }

// FormatPlayResX renders the PlayResX script-info line.
func FormatPlayResX(value int) string { return PlayResXPrefix + " " + strconv.Itoa(value) }

// FormatPlayResY renders the PlayResY script-info line.
func FormatPlayResY(value int) string { return PlayResYPrefix + " " + strconv.Itoa(value) }

// FormatScaledBorder renders the ScaledBorderAndShadow script-info line.
func FormatScaledBorder(active bool) string {
	if active {
		return ScaledBorderPrefix + " yes"
	}
	return ScaledBorderPrefix + " no"
}

func hasTrimmedPrefix(line, prefix string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), prefix)
}
