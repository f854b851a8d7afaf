// Package parser implements recursive descent parsing for the CTF grammar.
// One physical line is parsed at a time from an owned byte buffer with an
// explicit cursor; every scan loop is bounds-checked and returns a typed
// result or a positioned syntax error.
//
// Grammar (one line):
//
//	Line       = [ SequenceID ] ( Sample | Comment )* ;
//	SequenceID = Digit+ ;                   (* only when followed by "|" *)
//	Sample     = "|" Name Value+ ;
//	Comment    = "|#" Text ;
//	Name       = ( Digit | Alpha )+ ;
//	Value      = Numeric [ ":" Numeric ] ;  (* index ":" value when present *)
//	Numeric    = Sign? Digit* Point? Digit* ;
//
// A line without an explicit sequence id belongs to the previous line's
// sequence once any id has been established; before that, every line opens a
// new sequence with ids assigned 1, 2, 3, ... in line order.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/shapestone/shape-ctf/internal/reader"
	"github.com/shapestone/shape-ctf/internal/scanner"
)

// Grammar-level errors. They are wrapped in *SyntaxError with the offending
// line and column attached.
var (
	// ErrMissingNamePrefix indicates a sample or comment was expected but the
	// line did not continue with "|".
	ErrMissingNamePrefix = errors.New("missing name prefix")

	// ErrMalformedSequenceID indicates a sequence id that does not fit an
	// unsigned 64-bit integer.
	ErrMalformedSequenceID = errors.New("malformed sequence id")

	// ErrEmptySampleName indicates a "|" immediately followed by something
	// other than a name character.
	ErrEmptySampleName = errors.New("empty sample name")

	// ErrExpectedValue indicates a sample name without at least one numeric
	// value, or a non-numeric token where a value was required.
	ErrExpectedValue = errors.New("expected a numeric value")

	// ErrMalformedValue indicates a numeric token violating the grammar:
	// multiple signs, multiple decimal points, multiple sparse delimiters,
	// or an unparsable index or magnitude.
	ErrMalformedValue = errors.New("malformed value token")
)

// SyntaxError is a grammar violation at a specific position in the input.
// Line and Column are 1-indexed.
type SyntaxError struct {
	Line   int
	Column int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying grammar error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ValueKind classifies a scanned numeric token.
type ValueKind int

const (
	// Integer is a token without a decimal point.
	Integer ValueKind = iota
	// Real is a token with a decimal point.
	Real
)

// String returns the string representation of ValueKind.
func (k ValueKind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Real:
		return "real"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is one scanned numeric token. HasIndex distinguishes a sparse
// "index:value" pair from a dense positional value.
type Value struct {
	Kind     ValueKind
	Value    float64
	Index    uint64
	HasIndex bool
}

// Sample is one scanned "|name value+" group.
type Sample struct {
	Name   string
	Values []Value
}

// Line is the parsed form of one physical line. Comment holds the last
// comment on the line when HasComment is set.
type Line struct {
	Number     int
	SequenceID uint64
	Samples    []Sample
	Comment    string
	HasComment bool
}

// Parser scans a CTF source line by line. The implicit sequence id carry is
// per-parser state, so each file parse owns an independent Parser.
type Parser struct {
	r   *reader.Reader
	buf []byte
	pos int

	lineNum      int
	lastID       uint64
	haveExplicit bool
}

// New returns a Parser consuming lines from r.
func New(r *reader.Reader) *Parser {
	return &Parser{r: r}
}

// Next parses and returns the next non-blank line, or io.EOF when the source
// is exhausted. Grammar violations are returned as *SyntaxError.
func (p *Parser) Next() (*Line, error) {
	for {
		if !p.r.HasMore() {
			return nil, io.EOF
		}
		buf, err := p.r.ReadLine()
		p.lineNum++
		if err != nil {
			if errors.Is(err, reader.ErrLineTooLong) {
				return nil, &SyntaxError{Line: p.lineNum, Column: 1, Err: err}
			}
			return nil, err
		}
		p.buf, p.pos = buf, 0
		p.skipDelimiters()
		if p.atEnd() {
			continue // blank line
		}
		return p.parseLine()
	}
}

// parseLine recognizes [SequenceID] (Sample | Comment)* on the current buffer.
func (p *Parser) parseLine() (*Line, error) {
	ln := &Line{Number: p.lineNum}

	id, explicit, err := p.scanSequenceID()
	if err != nil {
		return nil, err
	}
	switch {
	case explicit:
		p.lastID = id
		p.haveExplicit = true
	case p.haveExplicit:
		id = p.lastID
	default:
		// No id has ever been established: each line opens a new sequence.
		p.lastID++
		id = p.lastID
	}
	ln.SequenceID = id

	for {
		p.skipDelimiters()
		if p.atEnd() {
			break
		}
		if !scanner.IsNamePrefix(p.peek()) {
			return nil, p.errAt(p.pos, ErrMissingNamePrefix)
		}
		if p.commentAhead() {
			ln.Comment = p.scanComment()
			ln.HasComment = true
			continue
		}
		sample, err := p.scanSample()
		if err != nil {
			return nil, err
		}
		ln.Samples = append(ln.Samples, sample)
	}
	return ln, nil
}

// scanSequenceID attempts to recognize an explicit sequence id: a digit run
// followed, after optional delimiters, by a name prefix. When the lookahead
// does not match, the cursor is restored and ok is false; that is a
// classification miss, not an error.
func (p *Parser) scanSequenceID() (id uint64, ok bool, err error) {
	mark := p.pos
	if p.atEnd() || !scanner.IsDigit(p.peek()) {
		return 0, false, nil
	}
	start := p.pos
	for !p.atEnd() && scanner.IsDigit(p.peek()) {
		p.pos++
	}
	digits := p.buf[start:p.pos]
	p.skipDelimiters()
	if p.atEnd() || !scanner.IsNamePrefix(p.peek()) {
		p.pos = mark
		return 0, false, nil
	}
	id, perr := strconv.ParseUint(string(digits), 10, 64)
	if perr != nil {
		return 0, false, p.errAt(start, fmt.Errorf("%w: %q", ErrMalformedSequenceID, digits))
	}
	return id, true, nil
}

// scanSample recognizes "|" Name Value+.
func (p *Parser) scanSample() (Sample, error) {
	nameCol := p.pos
	p.pos++ // consume '|'

	start := p.pos
	for !p.atEnd() && (scanner.IsDigit(p.peek()) || scanner.IsAlpha(p.peek())) {
		p.pos++
	}
	name := string(p.buf[start:p.pos])
	if name == "" {
		return Sample{}, p.errAt(nameCol, ErrEmptySampleName)
	}
	p.skipDelimiters()

	// At least one value must follow the name.
	if p.atEnd() || !scanner.IsNumberStart(p.peek()) {
		return Sample{}, p.errAt(p.pos, fmt.Errorf("%w after sample name %q", ErrExpectedValue, name))
	}

	sample := Sample{Name: name}
	for !p.atEnd() && !scanner.IsNamePrefix(p.peek()) {
		value, err := p.scanValue()
		if err != nil {
			return Sample{}, err
		}
		sample.Values = append(sample.Values, value)
		p.skipDelimiters()
	}
	return sample, nil
}

// scanValue recognizes Numeric [ ":" Numeric ]. Sign and decimal point
// counts are enforced over the whole token; at most one sparse delimiter
// may appear.
func (p *Parser) scanValue() (Value, error) {
	col := p.pos
	start := p.pos
	signs, points, colons := 0, 0, 0
	for !p.atEnd() {
		c := p.peek()
		if !scanner.IsNumberStart(c) && !scanner.IsSparseDelimiter(c) {
			break
		}
		switch {
		case scanner.IsSign(c):
			signs++
		case scanner.IsDecimalPoint(c):
			points++
		case scanner.IsSparseDelimiter(c):
			colons++
		}
		p.pos++
	}
	token := p.buf[start:p.pos]

	switch {
	case len(token) == 0:
		return Value{}, p.errAt(col, ErrExpectedValue)
	case signs > 1:
		return Value{}, p.errAt(col, fmt.Errorf("%w: multiple signs in %q", ErrMalformedValue, token))
	case points > 1:
		return Value{}, p.errAt(col, fmt.Errorf("%w: multiple decimal points in %q", ErrMalformedValue, token))
	case colons > 1:
		return Value{}, p.errAt(col, fmt.Errorf("%w: multiple sparse delimiters in %q", ErrMalformedValue, token))
	}

	magnitude := token
	var value Value
	if colons == 1 {
		cut := bytes.IndexByte(token, scanner.SparseDelimiter)
		index, err := strconv.ParseUint(string(token[:cut]), 10, 64)
		if err != nil {
			return Value{}, p.errAt(col, fmt.Errorf("%w: bad sparse index in %q", ErrMalformedValue, token))
		}
		value.Index, value.HasIndex = index, true
		magnitude = token[cut+1:]
	}

	f, err := strconv.ParseFloat(string(magnitude), 64)
	if err != nil {
		return Value{}, p.errAt(col, fmt.Errorf("%w: %q", ErrMalformedValue, token))
	}
	value.Value = f
	if bytes.IndexByte(magnitude, scanner.DecimalPoint) >= 0 {
		value.Kind = Real
	}
	return value, nil
}

// scanComment recognizes "|#" Text up to the end of the line. An embedded
// name prefix terminates the comment unless an odd number of quote
// characters has been seen since the comment began.
func (p *Parser) scanComment() string {
	p.pos += 2 // consume "|#"
	start := p.pos
	quotes := 0
	for !p.atEnd() {
		c := p.peek()
		if scanner.IsQuote(c) {
			quotes++
		}
		if scanner.IsNamePrefix(c) && quotes%2 == 0 {
			break
		}
		p.pos++
	}
	return string(p.buf[start:p.pos])
}

// commentAhead reports whether the cursor sits on "|#".
func (p *Parser) commentAhead() bool {
	return p.pos+1 < len(p.buf) && scanner.IsCommentSuffix(p.buf[p.pos+1])
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.buf)
}

func (p *Parser) peek() byte {
	return p.buf[p.pos]
}

func (p *Parser) skipDelimiters() {
	for !p.atEnd() && scanner.IsValueDelimiter(p.peek()) {
		p.pos++
	}
}

func (p *Parser) errAt(col int, err error) error {
	return &SyntaxError{Line: p.lineNum, Column: col + 1, Err: err}
}
