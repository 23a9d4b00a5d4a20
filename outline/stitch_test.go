package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStitchSquare(t *testing.T) {
	g := mustGrid(t, "#")
	paths, stats, err := Stitch(Boundary(g, Group(g)[0]))
	require.NoError(t, err)
	require.Len(t, paths, 1)

	p := paths[0]
	assert.True(t, p.Closed())
	assert.Len(t, p, 5)
	assert.Len(t, p.Vertices(), 4)
	assert.Equal(t, Stats{}, stats)
}

// uEdges is three sides of a unit square; no walk over them can close.
var uEdges = []Edge{
	{Pt(0, 0), Pt(1, 0)},
	{Pt(1, 0), Pt(1, 1)},
	{Pt(0, 1), Pt(1, 1)},
}

func TestStitchForcedClosure(t *testing.T) {
	paths, stats, err := Stitch(uEdges)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	assert.Equal(t, Path{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1), Pt(0, 0)}, paths[0])
	assert.Equal(t, Stats{Forced: 1}, stats)
}

func TestStitchStrict(t *testing.T) {
	paths, _, err := Tracer{Strict: true}.Stitch(uEdges)
	require.ErrorIs(t, err, ErrMalformedBoundary)
	assert.Nil(t, paths)
}

func TestStitchDiscardsShortWalk(t *testing.T) {
	for _, tr := range []Tracer{{}, {Strict: true}} {
		paths, stats, err := tr.Stitch([]Edge{{Pt(0, 0), Pt(1, 0)}})
		require.NoError(t, err)
		assert.Empty(t, paths)
		assert.Equal(t, Stats{Discarded: 1}, stats)
	}
}

func TestStitchSplitsPinch(t *testing.T) {
	// Two unit squares meeting at (1,1), ordered so the walk around the
	// first square crosses into the second one at the shared corner.
	edges := []Edge{
		{Pt(0, 0), Pt(1, 0)},
		{Pt(1, 0), Pt(1, 1)},
		{Pt(1, 1), Pt(2, 1)},
		{Pt(2, 1), Pt(2, 2)},
		{Pt(1, 2), Pt(2, 2)},
		{Pt(1, 1), Pt(1, 2)},
		{Pt(0, 1), Pt(1, 1)},
		{Pt(0, 0), Pt(0, 1)},
	}
	paths, stats, err := Tracer{Strict: true}.Stitch(edges)
	require.NoError(t, err)
	assert.Equal(t, Stats{Splits: 1}, stats)

	want := []Path{
		{Pt(1, 1), Pt(1, 2), Pt(2, 2), Pt(2, 1), Pt(1, 1)},
		{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1), Pt(0, 0)},
	}
	assert.Equal(t, want, paths)
	for _, p := range paths {
		assert.True(t, p.Simple())
	}
}

func TestStitchEmpty(t *testing.T) {
	paths, stats, err := Stitch(nil)
	require.NoError(t, err)
	assert.Empty(t, paths)
	assert.Zero(t, stats)
}

func TestStitchCoversEveryEdge(t *testing.T) {
	for _, g := range randomGrids(200) {
		for _, r := range Group(g) {
			edges := Boundary(g, r)
			paths, stats, err := Tracer{Strict: true}.Stitch(edges)
			require.NoError(t, err, "grid:\n%s", g)
			assert.Zero(t, stats.Forced)
			assert.Zero(t, stats.Discarded)

			var walked []Edge
			for _, p := range paths {
				require.True(t, p.Closed(), "open path %v", p)
				require.True(t, p.Simple(), "self-touching path %v", p)
				for i := 1; i < len(p); i++ {
					walked = append(walked, NewEdge(p[i-1], p[i]))
				}
			}
			assert.ElementsMatch(t, edges, walked, "grid:\n%s", g)
		}
	}
}
