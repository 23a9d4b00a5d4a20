package spritefont

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/spritefont/outline"
)

func TestMatrix(t *testing.T) {
	assert.True(t, Identity().IsIdentity())
	assert.False(t, Translate(1, 0).IsIdentity())

	p := Pt(2, 3)
	assert.Equal(t, p, Identity().TransformPoint(p))
	assert.Equal(t, Pt(5, 1), Translate(3, -2).TransformPoint(p))
	assert.Equal(t, Pt(4, -9), Scale(2, -3).TransformPoint(p))

	// Multiply applies the right operand first.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	assert.Equal(t, Pt(14, 6), m.TransformPoint(p))
	assert.True(t, Identity().Multiply(Identity()).IsIdentity())
}

func TestLatticeToFont(t *testing.T) {
	tests := []struct {
		name                           string
		height, baseline, scale, shift int
		in, want                       Point
	}{
		{"top left", 16, 2, 10, 0, Pt(0, 0), Pt(0, 140)},
		{"bottom right", 16, 2, 10, 0, Pt(16, 16), Pt(160, -20)},
		{"on baseline", 16, 2, 10, 0, Pt(3, 14), Pt(30, 0)},
		{"shifted", 8, 1, 5, 2, Pt(2, 7), Pt(0, 0)},
		{"unit scale", 4, 0, 1, 0, Pt(1, 1), Pt(1, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := LatticeToFont(tt.height, tt.baseline, tt.scale, tt.shift)
			assert.Equal(t, tt.want, m.TransformPoint(tt.in))
		})
	}
}

func TestPoint(t *testing.T) {
	assert.Equal(t, Pt(4, 6), Pt(1, 2).Add(Pt(3, 4)))
	assert.Equal(t, Pt(-2, -2), Pt(1, 2).Sub(Pt(3, 4)))
	assert.Equal(t, Pt(2, -3), Pt(1.6, -2.5).Round())
}

func TestPathFromOutline(t *testing.T) {
	square := outline.Path{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	degenerate := outline.Path{{X: 0, Y: 0}, {X: 1, Y: 0}}

	p := PathFromOutline([]outline.Path{square, degenerate, square})
	elems := p.Elements()
	require.Len(t, elems, 10)
	assert.Equal(t, MoveTo{Point: Pt(0, 0)}, elems[0])
	assert.Equal(t, LineTo{Point: Pt(1, 0)}, elems[1])
	assert.Equal(t, Close{}, elems[4])
	assert.Equal(t, MoveTo{Point: Pt(0, 0)}, elems[5])

	contours := p.Contours()
	require.Len(t, contours, 2)
	assert.Equal(t, []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1)}, contours[0])
}

func TestPathTransformAndClone(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(2, 0)
	p.LineTo(2, 1)
	p.Close()

	q := p.Transform(Scale(10, -10))
	assert.Equal(t, [][]Point{{Pt(0, 0), Pt(20, 0), Pt(20, -10)}}, q.Contours())
	assert.Equal(t, [][]Point{{Pt(0, 0), Pt(2, 0), Pt(2, 1)}}, p.Contours(), "Transform must not modify the receiver")

	c := p.Clone()
	c.LineTo(5, 5)
	assert.Len(t, p.Elements(), 4)
	assert.Len(t, c.Elements(), 5)
}

func TestPathContours(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(1, 0)
	p.LineTo(1, 1)
	p.LineTo(0, 0)
	p.MoveTo(5, 5)
	p.LineTo(6, 5)

	assert.Equal(t, [][]Point{
		{Pt(0, 0), Pt(1, 0), Pt(1, 1)},
		{Pt(5, 5), Pt(6, 5)},
	}, p.Contours())
	assert.Empty(t, NewPath().Contours())
}
