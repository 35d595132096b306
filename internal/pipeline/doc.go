// Package pipeline orchestrates one merge: read both tracks, clean and sort
// them, optionally translate the scene dialogue, synchronize, optionally
// restyle, write the result, and journal the run.
//
// The individual steps are also exposed on Processor for the CLI commands
// that only need one of them (extracting a translation request, applying
// translations, restyling a file).
package pipeline
