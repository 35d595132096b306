package scenes

import (
	"fmt"
	"strings"
)

// DefaultChunkSize is the number of lines per translation request chunk.
const DefaultChunkSize = 40

// ChunkSeparator divides the instruction from the lines of a chunk.
const ChunkSeparator = "---"

const instructionTemplate = `Act as an expert anime translator. Translate the block of subtitles below from ENGLISH to %s.
Strict rules:
1. MAINTAIN FORMAT: the number of output lines must equal the number of input lines.
2. DO NOT TRANSLATE OTHER LANGUAGES: leave any line that is not English (romaji, kanji, or otherwise) identical.
3. TONE: natural and colloquial.
4. INTEGRITY: do not omit any line, even if it is empty.
5. OUTPUT: return only the full result inside a Markdown code block, without comments.`

// Instruction returns the translator instruction for the target language.
func Instruction(target string) string {
	target = strings.TrimSpace(target)
	if target == "" {
		target = "SPANISH"
	}
	return fmt.Sprintf(instructionTemplate, strings.ToUpper(target))
}

// Instruct builds the request payload: for every chunk of at most chunkSize
// lines, the instruction, a separator, the chunk, and a blank line.
func Instruct(lines []string, chunkSize int, target string) []string {
	if len(lines) == 0 {
		return nil
	}
	instruction := Instruction(target)
	chunks := Chunks(lines, chunkSize)
	out := make([]string, 0, len(lines)+3*len(chunks))
	for _, chunk := range chunks {
		out = append(out, instruction, ChunkSeparator)
		out = append(out, chunk...)
		out = append(out, "")
	}
	return out
}

// Chunks splits lines into consecutive groups of at most size lines.
func Chunks(lines []string, size int) [][]string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var chunks [][]string
	for start := 0; start < len(lines); start += size {
		end := min(start+size, len(lines))
		chunks = append(chunks, lines[start:end:end])
	}
	return chunks
}
