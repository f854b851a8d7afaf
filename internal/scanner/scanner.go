// Package scanner provides character classification for the CTF grammar.
//
// CTF tokenization works at the byte level: every structural decision in the
// format (sample names, sparse pairs, comments, sequence ids) is driven by
// single-byte classes. The predicates here are pure functions composed by
// internal/parser; they carry no state and never fail.
package scanner

// Structural bytes of the CTF grammar.
const (
	NamePrefix      = '|'
	CommentSuffix   = '#'
	SparseDelimiter = ':'
	DecimalPoint    = '.'
)

// IsNamePrefix reports whether c starts a sample name or comment ("|").
func IsNamePrefix(c byte) bool {
	return c == NamePrefix
}

// IsCommentSuffix reports whether c is the comment marker following a name
// prefix ("|#" opens a comment).
func IsCommentSuffix(c byte) bool {
	return c == CommentSuffix
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsAlpha reports whether c is an ASCII letter.
func IsAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsSign reports whether c is a numeric sign.
func IsSign(c byte) bool {
	return c == '+' || c == '-'
}

// IsDecimalPoint reports whether c is a decimal point.
func IsDecimalPoint(c byte) bool {
	return c == DecimalPoint
}

// IsSparseDelimiter reports whether c separates a sparse index from its value.
func IsSparseDelimiter(c byte) bool {
	return c == SparseDelimiter
}

// IsValueDelimiter reports whether c separates fields on a line.
func IsValueDelimiter(c byte) bool {
	return c == ' ' || c == '\t'
}

// IsEOL reports whether c terminates a physical line.
func IsEOL(c byte) bool {
	return c == '\r' || c == '\n'
}

// IsQuote reports whether c is a quote character. Quote parity controls
// whether an embedded name prefix terminates a comment.
func IsQuote(c byte) bool {
	return c == '\'' || c == '"'
}

// IsNumberStart reports whether c can open a numeric token: a digit, a sign,
// or a decimal point.
func IsNumberStart(c byte) bool {
	return IsDigit(c) || IsSign(c) || IsDecimalPoint(c)
}
