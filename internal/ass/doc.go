// Package ass models the slice of the Advanced SubStation Alpha format that
// durazubs touches: the Dialogue record, its timestamps, and the handful of
// section and script-info lines the stylist rewrites.
//
// Parse and Format convert between raw "Dialogue:" lines and Record values.
// Format always writes CanonicalLayer, so a parse/format round trip preserves
// every semantic field except the literal layer digits.
//
// Classifier holds the compiled predicates (dialogue, scene extension, noise)
// shared by the cleaner, sorter, synchronizer and stylist. It is immutable
// after construction; use Default unless a test needs its own instance.
package ass
