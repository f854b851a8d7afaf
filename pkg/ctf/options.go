// Package ctf provides configurable options for CTF parsing.
package ctf

import "fmt"

// DataType selects the numeric element width values are stored at.
type DataType int

const (
	// Double stores magnitudes as 64-bit floating point (default).
	Double DataType = iota
	// Float quantizes magnitudes through 32-bit floating point.
	Float
)

// String returns the string representation of DataType.
func (t DataType) String() string {
	switch t {
	case Double:
		return "double"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// UnknownStreamMode specifies how the builder handles sample names absent
// from the schema.
type UnknownStreamMode int

const (
	// UnknownStreamError fails the whole parse on an undeclared sample name
	// (default).
	UnknownStreamError UnknownStreamMode = iota
	// UnknownStreamSkip ignores samples with undeclared names.
	UnknownStreamSkip
)

// String returns the string representation of UnknownStreamMode.
func (m UnknownStreamMode) String() string {
	switch m {
	case UnknownStreamError:
		return "error"
	case UnknownStreamSkip:
		return "skip"
	default:
		return fmt.Sprintf("UnknownStreamMode(%d)", int(m))
	}
}

// SkippedStreamCallback is invoked for every sample ignored under
// UnknownStreamSkip. It receives the line number and the sample name.
type SkippedStreamCallback func(line int, name string)

// Options configures CTF parsing behavior.
type Options struct {
	// DataType is the numeric element width for stored values.
	// Default: Double
	DataType DataType

	// OnUnknownStream specifies how to handle sample names not declared in
	// the schema. Default: UnknownStreamError
	OnUnknownStream UnknownStreamMode

	// SkippedStreamCallback is invoked for skipped samples when
	// OnUnknownStream is UnknownStreamSkip. If nil, skips are silent.
	SkippedStreamCallback SkippedStreamCallback

	// MaxLineSize is the maximum allowed size of a single line in bytes.
	// 0 means no limit.
	MaxLineSize int
}

// DefaultOptions returns the default parser configuration.
func DefaultOptions() Options {
	return Options{
		DataType:        Double,
		OnUnknownStream: UnknownStreamError,
		MaxLineSize:     0,
	}
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.DataType != Double && o.DataType != Float {
		return &OptionsError{Field: "DataType", Message: "unsupported data type"}
	}
	if o.OnUnknownStream != UnknownStreamError && o.OnUnknownStream != UnknownStreamSkip {
		return &OptionsError{Field: "OnUnknownStream", Message: "unsupported mode"}
	}
	if o.MaxLineSize < 0 {
		return &OptionsError{Field: "MaxLineSize", Message: "must not be negative"}
	}
	return nil
}
