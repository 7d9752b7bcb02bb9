package tally

import (
	"errors"
	"fmt"
)

// Fatal error categories. Every one of them aborts the run.
var (
	// ErrFileAccess indicates the dataset is missing, unreadable, or its size is unknown.
	ErrFileAccess = errors.New("dataset not accessible")

	// ErrEmptyDataset indicates a zero-byte dataset.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrMalformedRecord indicates a draw record that cannot be tallied.
	ErrMalformedRecord = errors.New("malformed draw record")

	// ErrInvalidTopN indicates a requested result size outside [1, TableSize].
	ErrInvalidTopN = errors.New("invalid top-n")
)

// RecordError describes a malformed draw record.
type RecordError struct {
	// Line is the 1-based line number in the dataset.
	Line int

	// Column is the 0-based field index, or -1 when the whole line is at fault.
	Column int

	// Value is the offending raw field value, if any.
	Value string

	// Reason is a short description of the problem.
	Reason string

	// Err is the underlying parse error, if any.
	Err error
}

func (e *RecordError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("%s: line %d: %s", ErrMalformedRecord, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: line %d, column %d: %s (value %q)",
		ErrMalformedRecord, e.Line, e.Column, e.Reason, e.Value)
}

// Unwrap returns the underlying parse error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedRecord.
func (e *RecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
