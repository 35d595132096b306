package stylist

import (
	"strings"

	"durazubs/internal/ass"
)

// Profile is one closed style variant: it names the style applied to
// dialogue and supplies the definition lines injected into the styles section.
type Profile interface {
	Name() string
	Apply(rec ass.Record) ass.Record
	Definitions() []string
}

type mainProfile struct{}

func (mainProfile) Name() string { return "Main" }

func (p mainProfile) Apply(rec ass.Record) ass.Record { return rec.WithStyle(p.Name()) }

func (mainProfile) Definitions() []string {
	return []string{
		"Style: Main,Trebuchet MS,24,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,1,2,0010,0010,0018,1",
	}
}

type secondProfile struct{}

func (secondProfile) Name() string { return "Second" }

func (p secondProfile) Apply(rec ass.Record) ass.Record { return rec.WithStyle(p.Name()) }

func (secondProfile) Definitions() []string {
	return []string{
		"Style: Second,Roboto,22,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,1.5,2,10,10,10,1",
	}
}

var (
	// Main renders dialogue in Trebuchet MS 24.
	Main Profile = mainProfile{}
	// Second renders dialogue in Roboto 22.
	Second Profile = secondProfile{}
)

// ProfileFor selects a profile by configuration name: "1" or "main" choose
// Main, anything else chooses Second.
func ProfileFor(name string) Profile {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "1", "main":
		return Main
	default:
		return Second
	}
}
