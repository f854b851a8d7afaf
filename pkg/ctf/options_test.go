package ctf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/shape-ctf/pkg/ctf"
)

func TestDefaultOptions(t *testing.T) {
	opts := ctf.DefaultOptions()
	assert.Equal(t, ctf.Double, opts.DataType)
	assert.Equal(t, ctf.UnknownStreamError, opts.OnUnknownStream)
	assert.Zero(t, opts.MaxLineSize)
	assert.NoError(t, opts.Validate())
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ctf.Options)
		field  string
	}{
		{"bad data type", func(o *ctf.Options) { o.DataType = ctf.DataType(99) }, "DataType"},
		{"bad unknown-stream mode", func(o *ctf.Options) { o.OnUnknownStream = ctf.UnknownStreamMode(99) }, "OnUnknownStream"},
		{"negative max line size", func(o *ctf.Options) { o.MaxLineSize = -1 }, "MaxLineSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := ctf.DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			require.Error(t, err)

			optErr, ok := err.(*ctf.OptionsError)
			require.True(t, ok, "error should be a *OptionsError, got %T", err)
			assert.Equal(t, tt.field, optErr.Field)
		})
	}
}

func TestParseWithOptions_InvalidOptionsRejected(t *testing.T) {
	opts := ctf.DefaultOptions()
	opts.DataType = ctf.DataType(99)
	_, err := ctf.ParseWithOptions("|word 1:1", sparseSchema(t), opts)
	require.Error(t, err)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "double", ctf.Double.String())
	assert.Equal(t, "float", ctf.Float.String())
	assert.Equal(t, "error", ctf.UnknownStreamError.String())
	assert.Equal(t, "skip", ctf.UnknownStreamSkip.String())
	assert.Equal(t, "feature", ctf.Feature.String())
	assert.Equal(t, "label", ctf.Label.String())
	assert.Equal(t, "dense", ctf.Dense.String())
	assert.Equal(t, "sparse", ctf.Sparse.String())
}
