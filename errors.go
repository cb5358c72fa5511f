package usbids

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedID is returned when an ID token is not valid hexadecimal
	// of the width expected for its record kind.
	ErrMalformedID = errors.New("malformed ID")

	// ErrMalformedRecord is returned when the separator between ID and name
	// is missing, or the name is empty.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMalformedHierarchy is returned when a line is nested deeper than
	// its section allows, or has no live parent to attach to.
	ErrMalformedHierarchy = errors.New("malformed hierarchy")

	// ErrUnknownSection is returned when a top-level line carries an
	// unrecognized section marker.
	ErrUnknownSection = errors.New("unknown section")

	// ErrDuplicateID is returned when a key appears twice within one owning
	// scope, e.g. two devices with the same ID under one vendor.
	ErrDuplicateID = errors.New("duplicate ID")
)

// ParseError is the error type returned by Parse. It carries the 1-based
// line number of the offending input line.
//
// The underlying cause satisfies errors.Is against one of the sentinel
// errors above and can be accessed via errors.Unwrap.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("usb.ids: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorf(line int, sentinel error, format string, args ...any) *ParseError {
	return &ParseError{
		Line: line,
		Err:  fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}
