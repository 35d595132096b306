package ass

import (
	"regexp"
	"strings"
)

const (
	songStylePattern   = `(?i)Opening|Ending|OP|ED`
	overrideTagPattern = `\{.*?\}`
	scenePattern       = `(?i)(additional scene|extra scene|bonus scene|special)`

	// excessiveTagThreshold is the total override-tag length above which a
	// record is treated as a typesetting effect rather than dialogue.
	excessiveTagThreshold = 50

	effectFX       = "fx"
	effectTemplate = "template"
	effectCode     = "code"
)

// Classifier bundles the compiled record predicates. A Classifier is never
// mutated after NewClassifier returns and may be shared freely.
type Classifier struct {
	songStyle *regexp.Regexp
	tags      *regexp.Regexp
	scene     *regexp.Regexp
}

// Default is the shared classifier used by package-level callers.
var Default = NewClassifier()

// NewClassifier compiles the record predicates.
func NewClassifier() *Classifier {
	return &Classifier{
		songStyle: regexp.MustCompile(songStylePattern),
		tags:      regexp.MustCompile(overrideTagPattern),
		scene:     regexp.MustCompile(scenePattern),
	}
}

// IsDialogue reports whether line carries the dialogue marker.
func (c *Classifier) IsDialogue(line string) bool {
	return strings.HasPrefix(line, DialoguePrefix)
}

// IsScene reports whether line is a dialogue record tagged as scene-extension
// content. Non-dialogue lines return false without error.
func (c *Classifier) IsScene(line string) (bool, error) {
	if !c.IsDialogue(line) {
		return false, nil
	}
	rec, err := Parse(line)
	if err != nil {
		return false, err
	}
	return c.IsSceneRecord(rec), nil
}

// IsSceneRecord reports whether the record's name carries a scene marker.
func (c *Classifier) IsSceneRecord(r Record) bool {
	return c.scene.MatchString(r.Name)
}

// IsNoise reports whether a record is a song cue, an effect, or has no
// visible text.
func (c *Classifier) IsNoise(r Record) bool {
	if c.songStyle.MatchString(r.Style) {
		return true
	}
	if isTechnicalEffect(r.Effect) {
		return true
	}
	if c.TagLength(r.Text) > excessiveTagThreshold {
		return true
	}
	return c.VisibleText(r.Text) == ""
}

// VisibleText strips every override span and surrounding whitespace.
func (c *Classifier) VisibleText(text string) string {
	return strings.TrimSpace(c.tags.ReplaceAllString(text, ""))
}

// TagLength sums the byte length of every override span in text.
func (c *Classifier) TagLength(text string) int {
	total := 0
	for _, span := range c.tags.FindAllString(text, -1) {
		total += len(span)
	}
	return total
}

func isTechnicalEffect(effect string) bool {
	effect = strings.ToLower(strings.TrimSpace(effect))
	return effect == effectFX ||
		strings.HasPrefix(effect, effectTemplate) ||
		strings.HasPrefix(effect, effectCode)
}
