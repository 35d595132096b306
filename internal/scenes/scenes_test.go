package scenes

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"durazubs/internal/ass"
)

var sceneTrack = []string{
	"[Script Info]",
	"Title: Full Scene Test",
	"ScriptType: v4.00+",
	"",
	"[Events]",
	"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text",
	"Dialogue: 0,0:00:00.50,0:00:02.50,Default,Character1,0,0,0,,Hey! Are you ready?",
	"Dialogue: 0,0:00:03.00,0:00:05.00,Default,ADDITIONAL SCENE,0,0,0,,Extra scene 1 line 1",
	"Dialogue: 0,0:00:05.50,0:00:07.00,Default,ADDITIONAL SCENE,0,0,0,,Extra scene 1 line 2",
	"Dialogue: 0,0:00:07.50,0:00:09.00,Default,Character2,0,0,0,,Let's go!",
	"Dialogue: 0,0:00:09.50,0:00:11.50,Default,ADDITIONAL SCENE,0,0,0,,Extra scene 2 line 1",
	"Dialogue: 0,0:00:12.00,0:00:14.00,Default,ADDITIONAL SCENE,0,0,0,,Extra scene 2 line 2",
	"Dialogue: 0,0:00:14.50,0:00:16.00,Default,Character3,0,0,0,,See you there!",
	"Dialogue: 0,0:00:16.50,0:00:18.00,Default,ADDITIONAL SCENE,0,0,0,,Final extra line",
	"Dialogue: 0,0:00:18.50,0:00:20.00,Default,Character1,0,0,0,,Bye!",
	"Dialogue: 0,0:00:23.00,0:00:25.00,Default,ADDITIONAL SCENE,0,0,0,,Bonus scene line",
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "scene text in order",
			input: sceneTrack,
			want: []string{
				"Extra scene 1 line 1",
				"Extra scene 1 line 2",
				"Extra scene 2 line 1",
				"Extra scene 2 line 2",
				"Final extra line",
				"Bonus scene line",
			},
		},
		{
			name: "no scenes",
			input: []string{
				"[Events]",
				"Dialogue: 0,0:00:01.00,0:00:02.00,Default,CHAR1,0,0,0,,Hello",
				"Dialogue: 0,0:00:02.50,0:00:03.00,Default,CHAR2,0,0,0,,Bye",
			},
			want: nil,
		},
		{
			name: "only scenes",
			input: []string{
				"Dialogue: 0,0:00:01.00,0:00:02.00,Default,ADDITIONAL SCENE,0,0,0,,Extra 1",
				"Dialogue: 0,0:00:02.50,0:00:03.50,Default,ADDITIONAL SCENE,0,0,0,,Extra 2",
			},
			want: []string{"Extra 1", "Extra 2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.input)
			if err != nil {
				t.Fatalf("Extract returned error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Extract = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractErrors(t *testing.T) {
	_, err := Extract([]string{"Dialogue: 0,0:00:01.00,NotEnoughFields"})
	var malformed *ass.MalformedError
	if !errors.As(err, &malformed) || malformed.Found != 3 {
		t.Fatalf("expected missing fields error with 3 found, got %v", err)
	}
	if _, err := Extract([]string{"Dialogue: invalid,metadata,no,text"}); err == nil {
		t.Fatal("expected error for corrupt dialogue line")
	}
}

func TestInject(t *testing.T) {
	tests := []struct {
		name         string
		input        []string
		translations []string
		want         []string
	}{
		{
			name: "replaces scene text",
			input: []string{
				"Dialogue: 0,0:00:10.00,0:00:12.00,Sign,ADDITIONAL SCENE,0,0,0,,[Original Text A]",
				"Dialogue: 0,0:00:15.00,0:00:17.00,Sign,ADDITIONAL SCENE,0,0,0,,[Original Text B]",
			},
			translations: []string{"Translated Text 1", "Translated Text 2"},
			want: []string{
				"Dialogue: 10,0:00:10.00,0:00:12.00,Sign,ADDITIONAL SCENE,0,0,0,,Translated Text 1",
				"Dialogue: 10,0:00:15.00,0:00:17.00,Sign,ADDITIONAL SCENE,0,0,0,,Translated Text 2",
			},
		},
		{
			name: "only scene records change",
			input: []string{
				"Dialogue: 0,0:00:01.00,0:00:03.00,Default,,0,0,0,,Normal Subtitle",
				"Dialogue: 0,0:00:20.00,0:00:22.00,Sign,ADDITIONAL SCENE,0,0,0,,Target Scene",
				"Dialogue: 0,0:00:25.00,0:00:27.00,Default,,0,0,0,,Another Subtitle",
			},
			translations: []string{"Processed Scene"},
			want: []string{
				"Dialogue: 0,0:00:01.00,0:00:03.00,Default,,0,0,0,,Normal Subtitle",
				"Dialogue: 10,0:00:20.00,0:00:22.00,Sign,ADDITIONAL SCENE,0,0,0,,Processed Scene",
				"Dialogue: 0,0:00:25.00,0:00:27.00,Default,,0,0,0,,Another Subtitle",
			},
		},
		{
			name: "exhausted translations leave the rest untouched",
			input: []string{
				"Dialogue: 0,0:00:01.00,0:00:02.00,Sign,Special,0,0,0,,First",
				"Dialogue: 0,0:00:03.00,0:00:04.00,Sign,Special,0,0,0,,Second",
			},
			translations: []string{"Primero"},
			want: []string{
				"Dialogue: 10,0:00:01.00,0:00:02.00,Sign,Special,0,0,0,,Primero",
				"Dialogue: 0,0:00:03.00,0:00:04.00,Sign,Special,0,0,0,,Second",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Inject(tt.input, tt.translations)
			if err != nil {
				t.Fatalf("Inject returned error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Inject mismatch\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestRoundTripWithIdentityTranslation(t *testing.T) {
	texts, err := Extract(sceneTrack)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	injected, err := Inject(sceneTrack, texts)
	if err != nil {
		t.Fatalf("Inject: %v", err)
	}
	again, err := Extract(injected)
	if err != nil {
		t.Fatalf("Extract after Inject: %v", err)
	}
	if !slices.Equal(again, texts) {
		t.Fatalf("round trip changed scene text: %q vs %q", again, texts)
	}
	for i, line := range injected {
		if !strings.Contains(line, "ADDITIONAL SCENE") && line != sceneTrack[i] {
			t.Fatalf("non-scene line %d changed: %q", i, line)
		}
	}
}

func TestInstructChunks(t *testing.T) {
	lines := make([]string, 0, 45)
	for i := range 45 {
		lines = append(lines, "line "+strings.Repeat("x", i%3))
	}
	payload := Instruct(lines, 40, "neutral latin american spanish")
	// two chunks: instruction, separator, lines, blank
	if want := 45 + 2*3; len(payload) != want {
		t.Fatalf("payload has %d lines, want %d", len(payload), want)
	}
	if !strings.Contains(payload[0], "NEUTRAL LATIN AMERICAN SPANISH") {
		t.Fatalf("instruction missing target language: %q", payload[0])
	}
	if payload[1] != ChunkSeparator || payload[42] != "" || payload[43] != payload[0] || payload[44] != ChunkSeparator {
		t.Fatalf("unexpected chunk framing: %q", payload[40:46])
	}
	if payload[len(payload)-1] != "" {
		t.Fatalf("expected trailing blank separator, got %q", payload[len(payload)-1])
	}
	if Instruct(nil, 40, "x") != nil {
		t.Fatal("expected empty payload for no lines")
	}
}

func TestChunks(t *testing.T) {
	chunks := Chunks([]string{"a", "b", "c"}, 2)
	if len(chunks) != 2 || len(chunks[0]) != 2 || chunks[1][0] != "c" {
		t.Fatalf("unexpected chunks: %q", chunks)
	}
	if got := Chunks([]string{"a"}, 0); len(got) != 1 {
		t.Fatalf("expected default chunk size, got %q", got)
	}
}
