// Package ctf provides the in-memory dataset assembled from a CTF source.
package ctf

// StreamData is the per-sequence container for one declared input stream.
// The concrete type is *SparseStream or *DenseStream, matching the
// descriptor's Storage.
type StreamData interface {
	// Len returns the number of values held.
	Len() int
	// Equal reports value-by-value structural equality with other.
	Equal(other StreamData) bool
}

// SparseStream holds explicit (index, value) pairs in file encounter order.
// Indices and Values are parallel, append-only lists; omitted positions are
// implicitly zero.
type SparseStream struct {
	Indices []uint64
	Values  []float64
}

// Len returns the number of (index, value) pairs held.
func (s *SparseStream) Len() int {
	return len(s.Values)
}

// Equal reports whether other is a SparseStream with the same pairs in the
// same order.
func (s *SparseStream) Equal(other StreamData) bool {
	o, ok := other.(*SparseStream)
	if !ok || len(s.Values) != len(o.Values) {
		return false
	}
	for i := range s.Values {
		if s.Indices[i] != o.Indices[i] || s.Values[i] != o.Values[i] {
			return false
		}
	}
	return true
}

// DenseStream holds positional values. Successive dense samples for the
// same stream within one sequence accumulate by concatenation.
type DenseStream struct {
	Values []float64
}

// Len returns the number of values held.
func (s *DenseStream) Len() int {
	return len(s.Values)
}

// Equal reports whether other is a DenseStream with the same values in the
// same order.
func (s *DenseStream) Equal(other StreamData) bool {
	o, ok := other.(*DenseStream)
	if !ok || len(s.Values) != len(o.Values) {
		return false
	}
	for i := range s.Values {
		if s.Values[i] != o.Values[i] {
			return false
		}
	}
	return true
}

// Sequence is one assembled sequence: its id, one stream container per
// declared descriptor in declaration order, and the last comment seen for
// the sequence.
type Sequence struct {
	ID      uint64
	Streams []StreamData
	Comment string
}

func newSequence(id uint64, schema *Schema) *Sequence {
	streams := make([]StreamData, schema.Len())
	for i, d := range schema.Descriptors() {
		if d.Storage == Sparse {
			streams[i] = &SparseStream{}
		} else {
			streams[i] = &DenseStream{}
		}
	}
	return &Sequence{ID: id, Streams: streams}
}

// Equal reports structural equality of two sequences: same id, same comment,
// and the same ordered stream contents under exact numeric equality.
func (q *Sequence) Equal(other *Sequence) bool {
	if q.ID != other.ID || q.Comment != other.Comment || len(q.Streams) != len(other.Streams) {
		return false
	}
	for i := range q.Streams {
		if !q.Streams[i].Equal(other.Streams[i]) {
			return false
		}
	}
	return true
}

// Dataset is the finished in-memory result of a parse. Sequences are keyed
// by id; first-appearance order is preserved for deterministic rendering.
// A Dataset is immutable once the parse that built it returns.
type Dataset struct {
	schema    *Schema
	dataType  DataType
	sequences []*Sequence
	index     map[uint64]int
}

func newDataset(schema *Schema, dataType DataType) *Dataset {
	return &Dataset{
		schema:   schema,
		dataType: dataType,
		index:    make(map[uint64]int),
	}
}

// Schema returns the schema the dataset was assembled against.
func (d *Dataset) Schema() *Schema {
	return d.schema
}

// DataType returns the numeric element width values were stored at.
func (d *Dataset) DataType() DataType {
	return d.dataType
}

// Len returns the number of distinct sequences.
func (d *Dataset) Len() int {
	return len(d.sequences)
}

// Sequences returns all sequences in first-appearance order.
// The returned slice must not be mutated.
func (d *Dataset) Sequences() []*Sequence {
	return d.sequences
}

// Sequence returns the sequence with the given id.
func (d *Dataset) Sequence(id uint64) (*Sequence, bool) {
	i, ok := d.index[id]
	if !ok {
		return nil, false
	}
	return d.sequences[i], true
}

// sequence returns the record for id, creating it on first reference.
// At most one record exists per distinct id: a later line referencing an
// existing id appends to it.
func (d *Dataset) sequence(id uint64) *Sequence {
	if i, ok := d.index[id]; ok {
		return d.sequences[i]
	}
	seq := newSequence(id, d.schema)
	d.index[id] = len(d.sequences)
	d.sequences = append(d.sequences, seq)
	return seq
}

// Equal reports structural equality: the same set of sequence ids and, for
// each id, equal sequence contents. First-appearance order is a rendering
// concern and does not participate in equality.
func (d *Dataset) Equal(other *Dataset) bool {
	if other == nil || len(d.sequences) != len(other.sequences) {
		return false
	}
	for _, seq := range d.sequences {
		o, ok := other.Sequence(seq.ID)
		if !ok || !seq.Equal(o) {
			return false
		}
	}
	return true
}
