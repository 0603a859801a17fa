package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file extension no normaliser handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNoDocument indicates an archive without any requirements document inside.
	ErrNoDocument = errors.New("no requirements document in archive")

	// ErrNotDirectory indicates a folder comparison root that is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrTooManyFiles indicates discovery found more files than the configured limit.
	ErrTooManyFiles = errors.New("too many files")

	// ErrNotImplemented indicates a service was built without a required dependency.
	ErrNotImplemented = errors.New("not implemented")
)

// ParseError is a fatal, file-level parse failure: the archive could not be
// read or the XML is malformed at the byte level. It aborts the parse of
// that one file only.
type ParseError struct {
	// Path is the file that failed.
	Path string

	// Entry is the archive member being parsed, empty for plain documents.
	Entry string

	// Line is the XML line of a syntax error, 0 when unknown.
	Line int

	// Err is the underlying cause.
	Err error
}

func (e *ParseError) Error() string {
	msg := "parse " + e.Path
	if e.Entry != "" {
		msg += "!" + e.Entry
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(":%d", e.Line)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PairError records a matched file pair whose comparison could not run.
// It is isolated to that pair and excluded from aggregate counts.
type PairError struct {
	// File1 is the relative path in the first tree.
	File1 string `yaml:"file1"`

	// File2 is the relative path in the second tree.
	File2 string `yaml:"file2"`

	// Err is the failure message.
	Err string `yaml:"error"`
}

func (e PairError) Error() string {
	return fmt.Sprintf("compare %s <-> %s: %s", e.File1, e.File2, e.Err)
}
