// Package trackio reads and writes subtitle tracks as whole line sequences.
//
// Source decodes UTF-8 and UTF-16 input (a byte-order mark selects the
// encoding) and normalises CRLF line endings. Sink writes through a temporary
// file that is renamed into place while an exclusive lock file is held, and it
// refuses to overwrite any of the paths it was told to protect (usually the
// input tracks).
package trackio
