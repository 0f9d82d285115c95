// Package sqlgen derives table definitions from JSON records and renders
// escaped, type-aware CREATE TABLE and bulk INSERT statements.
// It only produces statement text; executing it is up to the caller.
package sqlgen
