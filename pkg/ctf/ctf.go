// Package ctf parses the CTF text format used to feed sequence-structured
// sparse or dense numeric data into learning pipelines.
//
// A CTF file is line oriented. Every line belongs to a numbered sequence and
// carries one or more named samples, each either a dense run of numbers or a
// set of index:value sparse pairs:
//
//	100 |a 1 2 3 |b 100 200
//	|a 4 5 6 |b 101 201
//	|word 234:1 123:1 890:1 |class 3:1 |# a comment
//
// Sequence numbering can be explicit per line or implicit: once an explicit
// id has been seen, id-less lines continue that sequence; before any id has
// been seen, each line opens a new sequence numbered 1, 2, 3, ...
//
// Every sample name is resolved against a caller-supplied Schema of declared
// input streams, each with a storage kind (sparse or dense), a role (feature
// or label), and, for dense streams, a vector dimension. Parsing is all or
// nothing: any grammar violation, unknown stream, or dimension mismatch
// fails the whole file and no dataset is returned.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple
// goroutines. Each call owns an independent reader, parser, and dataset; the
// only shared input, the Schema, is immutable after construction. Parsing
// several files concurrently means running one whole pipeline per file.
//
// # Parsing APIs
//
//   - Parse(string, schema) - parses CTF from a string in memory
//   - ParseReader(io.Reader, schema) - parses from any io.Reader with
//     constant-size buffered reads
//   - ParseFile(path, schema) - opens and parses a file; ".gz" files are
//     transparently decompressed
//
// Example:
//
//	schema, err := ctf.NewSchema(
//		ctf.StreamDescriptor{ID: 0, Name: "word", Role: ctf.Feature, Storage: ctf.Sparse},
//		ctf.StreamDescriptor{ID: 1, Name: "class", Role: ctf.Label, Storage: ctf.Sparse},
//	)
//	if err != nil {
//		// handle error
//	}
//	dataset, err := ctf.Parse("|word 234:1 123:1 |class 3:1", schema)
package ctf

import (
	"io"
	"strings"

	"github.com/shapestone/shape-ctf/internal/parser"
	"github.com/shapestone/shape-ctf/internal/reader"
)

// Parse parses a complete CTF document from a string against schema.
func Parse(input string, schema *Schema) (*Dataset, error) {
	return ParseWithOptions(input, schema, DefaultOptions())
}

// ParseWithOptions parses a CTF document from a string with custom options.
//
// Example:
//
//	opts := ctf.DefaultOptions()
//	opts.DataType = ctf.Float
//	dataset, err := ctf.ParseWithOptions(input, schema, opts)
func ParseWithOptions(input string, schema *Schema, opts Options) (*Dataset, error) {
	return ParseReaderWithOptions(strings.NewReader(input), schema, opts)
}

// ParseReader parses a CTF document from an io.Reader against schema.
//
// The source is read in constant-size chunks, making this suitable for files
// that do not fit in memory. The reader can be any io.Reader implementation:
// an os.File, a network stream, a decompressor, etc.
func ParseReader(r io.Reader, schema *Schema) (*Dataset, error) {
	return ParseReaderWithOptions(r, schema, DefaultOptions())
}

// ParseReaderWithOptions parses a CTF document from an io.Reader with custom
// options.
func ParseReaderWithOptions(r io.Reader, schema *Schema, opts Options) (*Dataset, error) {
	return parse(reader.New(r), schema, opts)
}

// ParseFile opens and parses the CTF file at path against schema. Files
// ending in ".gz" are transparently decompressed. The file handle is
// released on every exit path, including parse failure.
func ParseFile(path string, schema *Schema) (*Dataset, error) {
	return ParseFileWithOptions(path, schema, DefaultOptions())
}

// ParseFileWithOptions opens and parses a CTF file with custom options.
func ParseFileWithOptions(path string, schema *Schema, opts Options) (*Dataset, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return parse(r, schema, opts)
}

// Validate checks whether input is a valid CTF document under schema.
func Validate(input string, schema *Schema) error {
	_, err := Parse(input, schema)
	return err
}

func parse(r *reader.Reader, schema *Schema, opts Options) (*Dataset, error) {
	if schema == nil {
		return nil, &SchemaError{Message: "schema must not be nil"}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxLineSize > 0 {
		r.SetMaxLineSize(opts.MaxLineSize)
	}
	return build(parser.New(r), schema, opts)
}
