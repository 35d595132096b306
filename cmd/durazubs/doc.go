// Package main hosts the durazubs CLI entrypoint and command graph.
//
// The Cobra command tree maps terminal invocations onto the internal
// pipeline: merging a timing track with a text track, the offline scene
// translation round-trip (extract, then apply), standalone restyling, the run
// history, and configuration scaffolding. Configuration and logging are
// resolved lazily by the shared command context so subcommands only deal with
// their own flags.
package main
