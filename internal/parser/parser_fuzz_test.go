//go:build go1.18
// +build go1.18

package parser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shapestone/shape-ctf/internal/reader"
)

// FuzzParser tests the line parser with random inputs to find edge cases and
// panics. Run with: go test -fuzz=FuzzParser -fuzztime=30s ./internal/parser
func FuzzParser(f *testing.F) {
	seeds := []string{
		"",
		"\n",
		"|",
		"|#",
		"|a 1",
		"|a 1 2 3",
		"100 |a 1 2 3 |b 100 200",
		"|word 234:1 123:1 890:1 |class 3:1",
		"333 |b 500 100\n333 |b 600 -900",
		"|a 1.5 -2 +.25",
		"|a 1 |#comment with 'quoted |pipe'",
		"|a 1 |#comment |b 2",
		"1 | 2",
		"5",
		"|a 1..2",
		"|a --1",
		"|a 1:2:3",
		"  \t  ",
		"\r\n\r\n",
		"18446744073709551615 |a 1",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		// The parser must never panic and must always terminate; every
		// failure must be a positioned syntax error.
		p := New(reader.New(strings.NewReader(input)))
		for {
			line, err := p.Next()
			if err != nil {
				if err != io.EOF {
					var syn *SyntaxError
					if !errors.As(err, &syn) {
						t.Fatalf("unexpected error type: %v", err)
					}
				}
				return
			}
			if line == nil {
				t.Fatal("nil line without error")
			}
		}
	})
}
