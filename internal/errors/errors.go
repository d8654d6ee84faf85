// Package errors defines the typed errors the tag pipeline reports.
// FileError and ParseError are recoverable per file; WriteError aborts the
// whole run.
package errors

import "fmt"

// FileError is a failure touching a file path before parsing: unreadable
// file, directory argument, stat failure. The caller warns and skips.
type FileError struct {
	Operation  string
	Path       string
	Underlying error
}

// NewFileError creates a file error with context
func NewFileError(op, path string, err error) *FileError {
	return &FileError{
		Operation:  op,
		Path:       path,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *FileError) Unwrap() error {
	return e.Underlying
}

// ParseError is a failure producing a syntax tree for a file. Also
// recoverable: the file is skipped and processing continues.
type ParseError struct {
	Path       string
	Underlying error
}

// NewParseError creates a parse error for one file
func NewParseError(path string, err error) *ParseError {
	return &ParseError{
		Path:       path,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// WriteError is a failure writing a tag line to the output sink. The sink
// is shared by the whole run, so this is unrecoverable.
type WriteError struct {
	Tag        string
	Underlying error
}

// NewWriteError creates a write error naming the tag being emitted
func NewWriteError(tag string, err error) *WriteError {
	return &WriteError{
		Tag:        tag,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *WriteError) Error() string {
	return fmt.Sprintf("write tag for %s: %v", e.Tag, e.Underlying)
}

// Unwrap returns the underlying error
func (e *WriteError) Unwrap() error {
	return e.Underlying
}
