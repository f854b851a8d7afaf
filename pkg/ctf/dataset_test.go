package ctf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/shape-ctf/pkg/ctf"
)

func mustParse(t *testing.T, input string, schema *ctf.Schema) *ctf.Dataset {
	t.Helper()
	dataset, err := ctf.Parse(input, schema)
	require.NoError(t, err)
	return dataset
}

func TestDataset_Equal(t *testing.T) {
	schema := sparseSchema(t)

	a := mustParse(t, "|word 1:1 |class 2:1\n|word 3:1", schema)
	b := mustParse(t, "|word 1:1 |class 2:1\n|word 3:1", schema)
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

// TestDataset_Equal_OrderInsensitive: equality is over the set of sequence
// ids; first-appearance order only affects rendering.
func TestDataset_Equal_OrderInsensitive(t *testing.T) {
	schema := sparseSchema(t)

	a := mustParse(t, "1 |word 5:1\n2 |word 6:1", schema)
	b := mustParse(t, "2 |word 6:1\n1 |word 5:1", schema)
	assert.True(t, a.Equal(b))
}

func TestDataset_NotEqual(t *testing.T) {
	schema := sparseSchema(t)
	base := mustParse(t, "1 |word 5:1 |#note", schema)

	tests := []struct {
		name  string
		input string
	}{
		{"different value", "1 |word 5:2 |#note"},
		{"different index", "1 |word 6:1 |#note"},
		{"different id", "2 |word 5:1 |#note"},
		{"different comment", "1 |word 5:1 |#other"},
		{"extra sequence", "1 |word 5:1 |#note\n2 |word 5:1"},
		{"missing values", "1 |word 5:1 5:1 |#note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := mustParse(t, tt.input, schema)
			assert.False(t, base.Equal(other))
		})
	}
}

func TestDataset_EqualNil(t *testing.T) {
	base := mustParse(t, "|word 1:1", sparseSchema(t))
	assert.False(t, base.Equal(nil))
}

func TestStreamData_EqualAcrossKinds(t *testing.T) {
	sparse := &ctf.SparseStream{Indices: []uint64{0}, Values: []float64{1}}
	dense := &ctf.DenseStream{Values: []float64{1}}
	assert.False(t, sparse.Equal(dense))
	assert.False(t, dense.Equal(sparse))
}

func TestDataset_SequenceLookup(t *testing.T) {
	dataset := mustParse(t, "42 |word 1:1", sparseSchema(t))

	seq, ok := dataset.Sequence(42)
	require.True(t, ok)
	assert.Equal(t, uint64(42), seq.ID)

	_, ok = dataset.Sequence(7)
	assert.False(t, ok)
}

func TestDataset_SchemaAccessors(t *testing.T) {
	schema := sparseSchema(t)
	dataset := mustParse(t, "|word 1:1", schema)

	assert.Same(t, schema, dataset.Schema())
	assert.Equal(t, ctf.Double, dataset.DataType())
}
