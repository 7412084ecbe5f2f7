package topology

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"gridwalk/pkg/grid"
)

// Face identifies one side of the folded cube.
type Face uint8

const (
	XPos Face = iota
	XNeg
	YPos
	YNeg
	ZPos
	ZNeg

	FaceCount = 6
)

func (f Face) String() string {
	if int(f) < FaceCount {
		return [FaceCount]string{"X+", "X-", "Y+", "Y-", "Z+", "Z-"}[f]
	}
	return "invalid"
}

// frame is a face's orientation in world space. right is local +x (East),
// up is local +y (North), and right × up = normal.
type frame struct {
	normal, right, up mgl32.Vec3
}

var frames = [FaceCount]frame{
	XPos: {mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	XNeg: {mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	YPos: {mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	YNeg: {mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	ZPos: {mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	ZNeg: {mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
}

// remap is the integer change of basis applied to doubled, face-centred
// coordinates when a cell index crosses an edge:
//
//	c' = m·c + (N-1)·o
type remap struct {
	m [2][2]int
	o [2]int
}

// Edge tables indexed [edge][face]. Built once in init and read-only after.
var (
	nextFace          [4][FaceCount]Face
	nextFaceDirection [4][FaceCount]grid.Direction
	edgeRemap         [4][FaceCount]remap
)

func init() {
	for f := Face(0); f < FaceCount; f++ {
		for _, edge := range grid.Directions {
			exit := faceVector(f, edge)
			to := faceWithNormal(exit)
			nextFace[edge][f] = to
			nextFaceDirection[edge][f] = directionAlong(to, frames[f].normal.Mul(-1))

			src, dst := frames[f], frames[to]
			edgeRemap[edge][f] = remap{
				m: [2][2]int{
					{idot(src.right, dst.right), idot(src.up, dst.right)},
					{idot(src.right, dst.up), idot(src.up, dst.up)},
				},
				o: [2]int{idot(src.normal, dst.right), idot(src.normal, dst.up)},
			}
		}
	}
}

// faceVector returns the world vector of local direction d on face f.
func faceVector(f Face, d grid.Direction) mgl32.Vec3 {
	fr := frames[f]
	switch d {
	case grid.North:
		return fr.up
	case grid.South:
		return fr.up.Mul(-1)
	case grid.West:
		return fr.right.Mul(-1)
	default:
		return fr.right
	}
}

func faceWithNormal(v mgl32.Vec3) Face {
	for f := Face(0); f < FaceCount; f++ {
		if frames[f].normal.ApproxEqual(v) {
			return f
		}
	}
	panic(fmt.Sprintf("topology: no face with normal %v", v))
}

func directionAlong(f Face, v mgl32.Vec3) grid.Direction {
	for _, d := range grid.Directions {
		if faceVector(f, d).ApproxEqual(v) {
			return d
		}
	}
	panic(fmt.Sprintf("topology: face %v has no direction along %v", f, v))
}

func idot(a, b mgl32.Vec3) int { return int(math.Round(float64(a.Dot(b)))) }

// NextFace returns the face reached by leaving face through edge.
func NextFace(edge grid.Direction, face Face) Face { return nextFace[edge][face] }

// NextFaceDirection returns the heading on the new face after leaving face
// through edge.
func NextFaceDirection(edge grid.Direction, face Face) grid.Direction {
	return nextFaceDirection[edge][face]
}

// Cube is six N×N faces folded into a closed surface. Cell index i is
// face*N*N + y*N + x.
type Cube struct {
	n int

	faceToWorld [FaceCount]mgl32.Mat4
	faceToFace  [FaceCount][FaceCount]mgl32.Mat3
}

// NewCube builds the topology for faces of n×n cells.
func NewCube(n int) (*Cube, error) {
	if n <= 1 {
		return nil, fmt.Errorf("cube face %dx%d: %w", n, n, ErrInvalidDimension)
	}
	c := &Cube{n: n}
	c.buildTransforms()
	return c, nil
}

// MustCube is NewCube that panics on malformed dimensions.
func MustCube(n int) *Cube {
	c, err := NewCube(n)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Cube) Faces() int     { return FaceCount }
func (c *Cube) Cols() int      { return c.n }
func (c *Cube) Rows() int      { return c.n }
func (c *Cube) CellCount() int { return FaceCount * c.n * c.n }

func (c *Cube) Index(face, x, y int) int { return face*c.n*c.n + y*c.n + x }

func (c *Cube) Coords(i int) (face, x, y int) {
	area := c.n * c.n
	face = i / area
	rem := i - face*area
	return face, rem % c.n, rem / c.n
}

// ExitEdge reports which edge an off-face coordinate has crossed. When more
// than one axis overflows the priority is y overflow, y underflow, x
// underflow, x overflow.
func (c *Cube) ExitEdge(x, y int) (grid.Direction, bool) {
	switch {
	case y >= c.n:
		return grid.North, true
	case y < 0:
		return grid.South, true
	case x < 0:
		return grid.West, true
	case x >= c.n:
		return grid.East, true
	}
	return grid.None, false
}

// CellIndexFromExitEdge returns the index of the cell on the neighbouring
// face reached by stepping from (x, y) on face through edge.
func (c *Cube) CellIndexFromExitEdge(edge grid.Direction, face Face, x, y int) int {
	r := edgeRemap[edge][face]
	n1 := c.n - 1
	cx := 2*x - n1
	cy := 2*y - n1
	nx := r.m[0][0]*cx + r.m[0][1]*cy + n1*r.o[0]
	ny := r.m[1][0]*cx + r.m[1][1]*cy + n1*r.o[1]
	return c.Index(int(nextFace[edge][face]), (nx+n1)/2, (ny+n1)/2)
}

func (c *Cube) Neighbor(i int, d grid.Direction) int {
	j, _ := c.Step(i, d)
	return j
}

func (c *Cube) Step(i int, d grid.Direction) (int, grid.Direction) {
	face, x, y := c.Coords(i)
	dx, dy := d.Step()
	nx, ny := x+dx, y+dy
	if _, off := c.ExitEdge(nx, ny); !off {
		return c.Index(face, nx, ny), d
	}
	return c.CellIndexFromExitEdge(d, Face(face), x, y), nextFaceDirection[d][face]
}
