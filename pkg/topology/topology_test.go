package topology

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridwalk/pkg/grid"
)

func TestRejectsDegenerateDimensions(t *testing.T) {
	_, err := NewFlat(1, 5)
	require.ErrorIs(t, err, ErrInvalidDimension)
	_, err = NewCube(0)
	require.ErrorIs(t, err, ErrInvalidDimension)
	assert.Panics(t, func() { MustCube(1) })
}

func TestFlatNeighborStopsAtBorder(t *testing.T) {
	f := MustFlat(4, 3)
	assert.Equal(t, 12, f.CellCount())
	assert.Equal(t, -1, f.Neighbor(f.Index(0, 0, 0), grid.West))
	assert.Equal(t, -1, f.Neighbor(f.Index(0, 3, 2), grid.North))
	assert.Equal(t, f.Index(0, 1, 1), f.Neighbor(f.Index(0, 1, 0), grid.North))
	_, x, y := f.Coords(7)
	assert.Equal(t, []int{3, 1}, []int{x, y})
}

func TestEdgeTablesNeverMapToSelfOrOpposite(t *testing.T) {
	for f := Face(0); f < FaceCount; f++ {
		seen := map[Face]bool{}
		for _, d := range grid.Directions {
			to := NextFace(d, f)
			assert.NotEqual(t, f, to)
			assert.True(t, adjacent(f, to), "%v %v -> %v", f, d, to)
			seen[to] = true
			assert.True(t, NextFaceDirection(d, f).Valid())
		}
		assert.Len(t, seen, 4, "face %v touches four distinct faces", f)
	}
}

func TestKnownCrossings(t *testing.T) {
	const n = 8
	c := MustCube(n)

	assert.Equal(t, XPos, NextFace(grid.East, ZPos))
	assert.Equal(t, grid.East, NextFaceDirection(grid.East, ZPos))
	assert.Equal(t, c.Index(int(XPos), 0, 5), c.CellIndexFromExitEdge(grid.East, ZPos, n-1, 5))

	assert.Equal(t, YPos, NextFace(grid.North, ZPos))
	assert.Equal(t, grid.North, NextFaceDirection(grid.North, ZPos))
	assert.Equal(t, c.Index(int(YPos), 3, 0), c.CellIndexFromExitEdge(grid.North, ZPos, 3, n-1))
}

func TestCubeNeighborsAreReciprocal(t *testing.T) {
	c := MustCube(5)
	for i := 0; i < c.CellCount(); i++ {
		face, _, _ := c.Coords(i)
		for _, d := range grid.Directions {
			j, heading := c.Step(i, d)
			require.GreaterOrEqual(t, j, 0)
			require.Less(t, j, c.CellCount())
			if jf, _, _ := c.Coords(j); jf != face {
				assert.Equal(t, NextFaceDirection(d, Face(face)), heading)
			} else {
				assert.Equal(t, d, heading)
			}
			assert.Equal(t, i, c.Neighbor(j, heading.Reverse()), "cell %d dir %v", i, d)
		}
	}
}

func TestExitEdgePriority(t *testing.T) {
	c := MustCube(4)
	d, off := c.ExitEdge(-1, 4)
	assert.True(t, off)
	assert.Equal(t, grid.North, d)
	d, _ = c.ExitEdge(4, -1)
	assert.Equal(t, grid.South, d)
	d, _ = c.ExitEdge(-1, 2)
	assert.Equal(t, grid.West, d)
	_, off = c.ExitEdge(3, 3)
	assert.False(t, off)
}

func TestFaceToFaceKeepsEdgePointsOnSurface(t *testing.T) {
	const n = 6
	c := MustCube(n)
	for f := Face(0); f < FaceCount; f++ {
		for _, d := range grid.Directions {
			to := NextFace(d, f)
			x, y := edgePoint(d, n, 2.25)
			nx, ny := c.TransformPosition(f, to, x, y)
			a := c.WorldPosition(f, x, y)
			b := c.WorldPosition(to, nx, ny)
			assert.True(t, a.ApproxEqualThreshold(b, 1e-4), "%v %v: %v vs %v", f, d, a, b)
		}
	}
}

func TestFaceToFaceAgreesWithCellRemap(t *testing.T) {
	const n = 4
	c := MustCube(n)
	for f := Face(0); f < FaceCount; f++ {
		for _, d := range grid.Directions {
			to := NextFace(d, f)
			for k := 0; k < n; k++ {
				cx, cy := edgeCell(d, n, k)
				dx, dy := d.Vector()
				px := float32(cx) + 0.5 + dx
				py := float32(cy) + 0.5 + dy
				nx, ny := c.TransformPosition(f, to, px, py)

				want := c.CellIndexFromExitEdge(d, f, cx, cy)
				wf, wx, wy := c.Coords(want)
				assert.Equal(t, int(to), wf)
				assert.Equal(t, wx, int(math.Floor(float64(nx))), "%v %v k=%d", f, d, k)
				assert.Equal(t, wy, int(math.Floor(float64(ny))), "%v %v k=%d", f, d, k)
			}
		}
	}
}

func TestOppositeFacesUseIdentity(t *testing.T) {
	c := MustCube(3)
	x, y := c.TransformPosition(ZPos, ZNeg, 1.5, 2)
	assert.Equal(t, float32(1.5), x)
	assert.Equal(t, float32(2), y)
}

// edgePoint returns a point lying on the edge of a face crossed by d.
func edgePoint(d grid.Direction, n int, along float32) (float32, float32) {
	switch d {
	case grid.North:
		return along, float32(n)
	case grid.South:
		return along, 0
	case grid.West:
		return 0, along
	}
	return float32(n), along
}

// edgeCell returns the k-th cell along the border crossed by d.
func edgeCell(d grid.Direction, n, k int) (int, int) {
	switch d {
	case grid.North:
		return k, n - 1
	case grid.South:
		return k, 0
	case grid.West:
		return 0, k
	}
	return n - 1, k
}
