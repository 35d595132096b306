// Package history journals merge runs in a SQLite database so earlier
// results (counts, drift, failures) can be listed later.
//
// The schema is embedded and versioned; a database created by a different
// schema version is rejected with ErrSchemaMismatch rather than migrated.
package history
