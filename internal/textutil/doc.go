// Package textutil provides small text helpers shared by the CLI and the
// translation backends: file-name sanitising and a cheap language heuristic
// that spares already translated lines a round trip to a translator.
package textutil
