// Package ctf provides dataset assembly from parsed CTF lines.
package ctf

import (
	"errors"
	"fmt"
	"io"

	"github.com/shapestone/shape-ctf/internal/parser"
)

// builder folds parsed (sequence id, sample) pairs into a typed dataset.
// It drives the line parser to end-of-input; on any error the dataset under
// construction is discarded.
type builder struct {
	schema  *Schema
	opts    Options
	dataset *Dataset
}

func build(p *parser.Parser, schema *Schema, opts Options) (*Dataset, error) {
	b := &builder{
		schema:  schema,
		opts:    opts,
		dataset: newDataset(schema, opts.DataType),
	}
	for {
		line, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapParserError(err)
		}
		if err := b.fold(line); err != nil {
			return nil, err
		}
	}
	if err := b.finalize(); err != nil {
		return nil, err
	}
	return b.dataset, nil
}

// fold merges one parsed line into the dataset. Successive lines with the
// same sequence id append to the same record; the comment is overwritten.
func (b *builder) fold(line *parser.Line) error {
	seq := b.dataset.sequence(line.SequenceID)
	for _, sample := range line.Samples {
		i, ok := b.schema.indexOf(sample.Name)
		if !ok {
			if b.opts.OnUnknownStream == UnknownStreamSkip {
				if b.opts.SkippedStreamCallback != nil {
					b.opts.SkippedStreamCallback(line.Number, sample.Name)
				}
				continue
			}
			return &ParseError{
				Line: line.Number,
				Err:  fmt.Errorf("%w: %q", ErrUnknownStream, sample.Name),
			}
		}
		desc := b.schema.descriptors[i]
		if err := b.foldSample(seq.Streams[i], desc, sample, line.Number); err != nil {
			return err
		}
	}
	if line.HasComment {
		seq.Comment = line.Comment
	}
	return nil
}

func (b *builder) foldSample(stream StreamData, desc StreamDescriptor, sample parser.Sample, lineNum int) error {
	switch s := stream.(type) {
	case *SparseStream:
		for _, v := range sample.Values {
			if !v.HasIndex {
				return &ParseError{
					Line: lineNum,
					Err:  fmt.Errorf("%w: stream %q", ErrMissingSparseIndex, desc.Name),
				}
			}
			s.Indices = append(s.Indices, v.Index)
			s.Values = append(s.Values, b.convert(v.Value))
		}
	case *DenseStream:
		for _, v := range sample.Values {
			if v.HasIndex {
				return &ParseError{
					Line: lineNum,
					Err:  fmt.Errorf("%w: stream %q", ErrUnexpectedSparseIndex, desc.Name),
				}
			}
			s.Values = append(s.Values, b.convert(v.Value))
		}
		// Overflow is caught eagerly; underflow only at finalization, since a
		// later line may still complete the vector.
		if desc.Dimension > 0 && len(s.Values) > desc.Dimension {
			return &ParseError{
				Line: lineNum,
				Err: fmt.Errorf("%w: stream %q accumulated %d values, dimension is %d",
					ErrDimensionMismatch, desc.Name, len(s.Values), desc.Dimension),
			}
		}
	}
	return nil
}

// finalize verifies that every dense stream with a declared dimension that
// received any values accumulated the full vector. A stream absent from a
// sequence is not an underflow.
func (b *builder) finalize() error {
	for _, seq := range b.dataset.sequences {
		for i, desc := range b.schema.descriptors {
			if desc.Storage != Dense || desc.Dimension == 0 {
				continue
			}
			n := seq.Streams[i].Len()
			if n != 0 && n != desc.Dimension {
				return &ParseError{
					Err: fmt.Errorf("%w: sequence %d stream %q holds %d values, dimension is %d",
						ErrDimensionMismatch, seq.ID, desc.Name, n, desc.Dimension),
				}
			}
		}
	}
	return nil
}

// convert applies the configured element width. Integer-to-float conversion
// is lossless widening; Float quantizes through 32 bits.
func (b *builder) convert(v float64) float64 {
	if b.opts.DataType == Float {
		return float64(float32(v))
	}
	return v
}

// wrapParserError converts internal parser errors into the public ParseError
// shape, preserving position information.
func wrapParserError(err error) error {
	var syn *parser.SyntaxError
	if errors.As(err, &syn) {
		return &ParseError{Line: syn.Line, Column: syn.Column, Err: syn.Err}
	}
	return err
}
