// Package merge implements the subtitle merge core: cleaning, chronological
// sorting, scene-block indexing, and the drift-correcting synchronizer that
// re-times one track's dialogue onto another track's timeline.
//
// Everything here operates on in-memory line slices and never performs I/O.
// Inputs are never mutated; every pass returns a new slice.
package merge
