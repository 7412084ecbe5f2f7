package topology

import "github.com/go-gl/mathgl/mgl32"

func (c *Cube) buildTransforms() {
	half := float32(c.n) / 2
	for f := Face(0); f < FaceCount; f++ {
		fr := frames[f]
		origin := fr.normal.Mul(half).Sub(fr.right.Mul(half)).Sub(fr.up.Mul(half))
		c.faceToWorld[f] = mgl32.Mat4FromCols(
			fr.right.Vec4(0),
			fr.up.Vec4(0),
			fr.normal.Vec4(0),
			origin.Vec4(1),
		)
	}

	for from := Face(0); from < FaceCount; from++ {
		for to := Face(0); to < FaceCount; to++ {
			if !adjacent(from, to) {
				c.faceToFace[from][to] = mgl32.Ident3()
				continue
			}
			o := c.fold(from, to, 0, 0)
			ex := c.fold(from, to, 1, 0).Sub(o)
			ey := c.fold(from, to, 0, 1).Sub(o)
			c.faceToFace[from][to] = mgl32.Mat3FromCols(
				mgl32.Vec3{ex.X(), ex.Y(), 0},
				mgl32.Vec3{ey.X(), ey.Y(), 0},
				mgl32.Vec3{o.X(), o.Y(), 1},
			)
		}
	}
}

func adjacent(a, b Face) bool {
	return frames[a].normal.Dot(frames[b].normal) == 0
}

// fold lifts a face-local point into world space and rotates whatever lies
// past the shared edge onto the neighbouring face, preserving the distance
// travelled beyond the edge.
func (c *Cube) fold(from, to Face, x, y float32) mgl32.Vec2 {
	half := float32(c.n) / 2
	src, dst := frames[from], frames[to]
	p := src.normal.Mul(half).Add(src.right.Mul(x - half)).Add(src.up.Mul(y - half))
	over := p.Dot(dst.normal) - half
	q := p.Sub(dst.normal.Mul(over)).Sub(src.normal.Mul(over))
	return mgl32.Vec2{q.Dot(dst.right) + half, q.Dot(dst.up) + half}
}

// FaceToWorld returns the matrix placing face-local (x, y, 0, 1) onto the
// cube surface, centred on the origin with side length N.
func (c *Cube) FaceToWorld(f Face) mgl32.Mat4 { return c.faceToWorld[f] }

// FaceToFace returns the affine 2D transform taking a position that has
// stepped off from across the shared edge into the local frame of to. Pairs
// that do not share an edge map to the identity.
func (c *Cube) FaceToFace(from, to Face) mgl32.Mat3 { return c.faceToFace[from][to] }

// TransformPosition applies FaceToFace to a single point.
func (c *Cube) TransformPosition(from, to Face, x, y float32) (float32, float32) {
	v := c.faceToFace[from][to].Mul3x1(mgl32.Vec3{x, y, 1})
	return v.X(), v.Y()
}

// WorldPosition returns the 3D surface point for a face-local position.
func (c *Cube) WorldPosition(f Face, x, y float32) mgl32.Vec3 {
	return c.faceToWorld[f].Mul4x1(mgl32.Vec4{x, y, 0, 1}).Vec3()
}
