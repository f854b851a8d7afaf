// Package ctf provides dataset rendering back to CTF text.
//
// Rendering is deterministic: sequences are emitted in first-appearance
// order, streams in schema declaration order, values in encounter order.
// Rendering a dataset and re-parsing the result against the same schema
// yields a structurally equal dataset.
package ctf

import (
	"bytes"
	"strconv"
)

// Render converts a Dataset to CTF bytes, one line per sequence:
//
//	<id> |<name> [<index>:]<value> ... |<name> ... [|#<comment>]
//
// Streams that accumulated no values for a sequence are omitted. Magnitudes
// are formatted without exponents so the output stays within the CTF value
// grammar.
func Render(d *Dataset) ([]byte, error) {
	if d == nil {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	descriptors := d.schema.Descriptors()
	for _, seq := range d.sequences {
		buf.WriteString(strconv.FormatUint(seq.ID, 10))
		for i, desc := range descriptors {
			if seq.Streams[i].Len() == 0 {
				continue
			}
			buf.WriteString(" |")
			buf.WriteString(desc.Name)
			renderStream(&buf, seq.Streams[i])
		}
		if seq.Comment != "" {
			buf.WriteString(" |#")
			buf.WriteString(seq.Comment)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// RenderString converts a Dataset to a CTF string.
func RenderString(d *Dataset) (string, error) {
	b, err := Render(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func renderStream(buf *bytes.Buffer, stream StreamData) {
	switch s := stream.(type) {
	case *SparseStream:
		for i, v := range s.Values {
			buf.WriteByte(' ')
			buf.WriteString(strconv.FormatUint(s.Indices[i], 10))
			buf.WriteByte(':')
			buf.WriteString(formatMagnitude(v))
		}
	case *DenseStream:
		for _, v := range s.Values {
			buf.WriteByte(' ')
			buf.WriteString(formatMagnitude(v))
		}
	}
}

// formatMagnitude renders a value with the fewest digits that round-trip,
// never using exponent notation (the grammar has none).
func formatMagnitude(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
