// Package ctf provides error types for CTF parsing.
package ctf

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-ctf/internal/parser"
	"github.com/shapestone/shape-ctf/internal/reader"
)

// ParseError represents a parsing error with position information.
// Line and Column are 1-indexed. Any parse failure discards the dataset
// being built: a file either parses completely or yields no dataset.
type ParseError struct {
	// Line is the line where the error occurred.
	Line int
	// Column is the column where the error occurred, 0 when the error is not
	// tied to a specific column.
	Column int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("ctf: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("ctf: parse error on line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("ctf: parse error: %v", e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Grammar errors surfaced by the line parser. All are wrapped in *ParseError
// with the offending line and column.
var (
	// ErrMissingNamePrefix indicates a sample or comment was expected but the
	// line did not continue with "|".
	ErrMissingNamePrefix = parser.ErrMissingNamePrefix

	// ErrMalformedSequenceID indicates a sequence id that does not fit an
	// unsigned 64-bit integer.
	ErrMalformedSequenceID = parser.ErrMalformedSequenceID

	// ErrEmptySampleName indicates a "|" not followed by a name character.
	ErrEmptySampleName = parser.ErrEmptySampleName

	// ErrExpectedValue indicates a missing or non-numeric value token.
	ErrExpectedValue = parser.ErrExpectedValue

	// ErrMalformedValue indicates a numeric token violating the grammar:
	// multiple signs, decimal points, or sparse delimiters, or an unparsable
	// index or magnitude.
	ErrMalformedValue = parser.ErrMalformedValue

	// ErrLineTooLong indicates a line exceeding Options.MaxLineSize.
	ErrLineTooLong = reader.ErrLineTooLong
)

// Assembly errors raised while folding parsed samples into the dataset.
var (
	// ErrUnknownStream indicates a sample name not declared in the schema.
	ErrUnknownStream = errors.New("unknown input stream")

	// ErrMissingSparseIndex indicates a value without an explicit index
	// destined for a sparse stream.
	ErrMissingSparseIndex = errors.New("sparse stream requires index:value pairs")

	// ErrUnexpectedSparseIndex indicates an index:value pair destined for a
	// dense stream.
	ErrUnexpectedSparseIndex = errors.New("dense stream cannot take index:value pairs")

	// ErrDimensionMismatch indicates a dense stream whose accumulated value
	// count does not line up with the declared dimension.
	ErrDimensionMismatch = errors.New("dense stream dimension mismatch")
)

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "ctf: invalid " + e.Field + ": " + e.Message
}
