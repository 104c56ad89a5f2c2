// Package report models audit findings and renders them.
//
// A Report is built once per run from the findings of every check, ordered by
// the fixed category sequence, and rendered either as grouped text or as a
// JSON document with a per-category summary.
package report
