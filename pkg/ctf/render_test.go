package ctf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/shape-ctf/pkg/ctf"
)

func TestRender_Deterministic(t *testing.T) {
	input := "|word 234:1 123:1 890:1 |class 3:1\n" +
		"|word 11:1 344:1 |class 2:1\n"
	dataset, err := ctf.Parse(input, sparseSchema(t))
	require.NoError(t, err)

	got, err := ctf.RenderString(dataset)
	require.NoError(t, err)

	want := "1 |word 234:1 123:1 890:1 |class 3:1\n" +
		"2 |word 11:1 344:1 |class 2:1\n"
	assert.Equal(t, want, got)
}

func TestRender_FirstSeenOrder(t *testing.T) {
	input := "200 |a 1 2\n100 |a 3 4\n200 |a 5 6\n"
	dataset, err := ctf.Parse(input, denseSchema(t, 0, 0))
	require.NoError(t, err)

	got, err := ctf.RenderString(dataset)
	require.NoError(t, err)
	assert.Equal(t, "200 |a 1 2 5 6\n100 |a 3 4\n", got)
}

func TestRender_Comment(t *testing.T) {
	dataset, err := ctf.Parse("7 |a 1 2 |#session note", denseSchema(t, 0, 0))
	require.NoError(t, err)

	got, err := ctf.RenderString(dataset)
	require.NoError(t, err)
	assert.Equal(t, "7 |a 1 2 |#session note\n", got)
}

func TestRender_EmptyDataset(t *testing.T) {
	dataset, err := ctf.Parse("", sparseSchema(t))
	require.NoError(t, err)

	got, err := ctf.Render(dataset)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRender_NilDataset(t *testing.T) {
	got, err := ctf.Render(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestRender_RoundTrip: rendering any valid dataset and re-parsing the
// result yields a structurally equal dataset.
func TestRender_RoundTrip(t *testing.T) {
	schema, err := ctf.NewSchema(
		ctf.StreamDescriptor{ID: 0, Name: "a", Dimension: 3, Role: ctf.Feature, Storage: ctf.Dense},
		ctf.StreamDescriptor{ID: 1, Name: "b", Role: ctf.Label, Storage: ctf.Dense},
		ctf.StreamDescriptor{ID: 2, Name: "word", Role: ctf.Feature, Storage: ctf.Sparse},
	)
	require.NoError(t, err)

	inputs := []string{
		"",
		"|a 1 2 3",
		"|word 234:1 123:1\n|word 11:0.5",
		"100 |a 1 2 3 |b 100 200\n|b 101 201\n500 |a -1.5 0.25 3",
		"333 |b 500 100\n333 |b 600 -900",
		"9 |a 1 2 3 |#with a comment",
		"|b 0.125 -0.5 |word 42:3.75",
	}

	for _, input := range inputs {
		original, err := ctf.Parse(input, schema)
		require.NoError(t, err, "input %q", input)

		rendered, err := ctf.RenderString(original)
		require.NoError(t, err)

		reparsed, err := ctf.Parse(rendered, schema)
		require.NoError(t, err, "rendered %q", rendered)
		assert.True(t, original.Equal(reparsed), "round trip changed dataset:\ninput    %q\nrendered %q", input, rendered)
	}
}
