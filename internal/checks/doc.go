// Package checks implements the drift checks run against a collected FileSet.
//
// Kind is a closed enumeration; Runner dispatches each kind to its check in
// the fixed reporting order. Checks never fail the audit: unreadable inputs
// are logged or surfaced as advisory findings.
package checks
