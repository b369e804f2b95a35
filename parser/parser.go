// Package parser reconstructs a models.CourseDB from the two supported
// raw sources: the flat HTML listing table and the hierarchical XML dump.
// Both paths share one error policy: a malformed unit (one period, one
// day, one note) is logged and dropped, unless strict mode is requested,
// in which case the first malformed unit aborts the whole parse.
package parser

import "fmt"

// Options selects the ingestion error policy. The zero value is lenient.
type Options struct {
	Strict bool
}

// ValueParseError wraps a time or day value that failed validation.
type ValueParseError struct {
	Field string
	Err   error
}

func (e *ValueParseError) Error() string {
	return fmt.Sprintf("bad %s value: %v", e.Field, e.Err)
}

func (e *ValueParseError) Unwrap() error { return e.Err }

// RequiredFieldMissing reports an XML attribute or text node the schema
// requires but the document omits.
type RequiredFieldMissing struct {
	Node  string
	Field string
}

func (e *RequiredFieldMissing) Error() string {
	return fmt.Sprintf("%s is missing required %s", e.Node, e.Field)
}

// RowStructureError reports a table row that cannot be reconciled with
// the running course/section state or has a malformed shape.
type RowStructureError struct {
	Reason string
}

func (e *RowStructureError) Error() string { return e.Reason }

var (
	ErrNoOpenCourse  = &RowStructureError{Reason: "continuation row before any course row"}
	ErrNoOpenSection = &RowStructureError{Reason: "period row before any section row"}
	ErrNotTwoTimes   = &RowStructureError{Reason: "time range must split into exactly two times"}
	ErrMissingAMPM   = &RowStructureError{Reason: "time is missing its am/pm marker"}
	ErrMalformedAMPM = &RowStructureError{Reason: `am/pm marker must be "am" or "pm"`}
)
