package tumble

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the affine matrix that maps content pixels
// to scene units for e. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-anchor*size) -> Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(e *Entity) [6]float64 {
	w, h := e.size()
	px := e.AnchorX * w
	py := e.AnchorY * h

	sx := e.ScaleX
	sy := e.ScaleY
	sin, cos := math.Sincos(e.Rotation * math.Pi / 180)

	preTx := -px * sx
	preTy := -py * sy

	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + e.X,
		sin*preTx + cos*preTy + e.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// affineFromGeoM reads an ebiten.GeoM into the [a, b, c, d, tx, ty] layout.
func affineFromGeoM(g ebiten.GeoM) [6]float64 {
	return [6]float64{
		g.Element(0, 0), g.Element(1, 0),
		g.Element(0, 1), g.Element(1, 1),
		g.Element(0, 2), g.Element(1, 2),
	}
}

// geoMFromAffine builds an ebiten.GeoM from the [a, b, c, d, tx, ty] layout.
func geoMFromAffine(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// Bounds returns the axis-aligned bounding box of the entity's content in
// scene units, taking scale and rotation into account.
func (e *Entity) Bounds() Rect {
	m := computeLocalTransform(e)
	w, h := e.size()
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := transformPoint(m, c[0], c[1])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
