package knob

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	arcSegmentDegrees = 4.0 // maximum angular length of one ring quad
	discSegments      = 64
)

// meshBuffer accumulates triangles for one DrawTriangles call. Buffers are
// reused across frames using a high-water-mark strategy.
type meshBuffer struct {
	verts []ebiten.Vertex
	inds  []uint16
}

func (b *meshBuffer) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// texSize returns the width and height of img, or zeros for untextured
// geometry drawn with the white pixel.
func texSize(img *ebiten.Image) (float64, float64) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// ringUV maps a point onto a texture stretched over the square bounding a
// circle of radius r around c. Untextured geometry samples the center of the
// white pixel.
func ringUV(p, c Vec2, r, texW, texH float64) (float32, float32) {
	if texW == 0 || texH == 0 || r <= 0 {
		return 0.5, 0.5
	}
	u := (p.X - (c.X - r)) / (2 * r) * texW
	v := (p.Y - (c.Y - r)) / (2 * r) * texH
	return float32(u), float32(v)
}

// appendArc appends an annular sector as a strip of quads: two vertices per
// step along the arc, six indices per quad. Points are offset by origin to
// move from local into destination space. Zero-sweep arcs add nothing.
func (b *meshBuffer) appendArc(arc Arc, origin Vec2, texW, texH float64) {
	sweep := arc.Sweep()
	if sweep == 0 || arc.Outer <= 0 {
		return
	}
	segs := int(math.Ceil(math.Abs(sweep) / arcSegmentDegrees))
	if segs < 1 {
		segs = 1
	}
	g := Geometry{Center: arc.Center, Radius: arc.Outer}
	cr, cg, cb, ca := arc.Color.premultiplied()
	base := uint16(len(b.verts))

	for i := 0; i <= segs; i++ {
		a := arc.Start + sweep*float64(i)/float64(segs)
		outer := g.PointOnCircle(a, arc.Outer)
		inner := g.PointOnCircle(a, math.Max(arc.Inner, 0))
		ou, ov := ringUV(outer, arc.Center, arc.Outer, texW, texH)
		iu, iv := ringUV(inner, arc.Center, arc.Outer, texW, texH)
		b.verts = append(b.verts,
			ebiten.Vertex{
				DstX: float32(outer.X + origin.X), DstY: float32(outer.Y + origin.Y),
				SrcX: ou, SrcY: ov,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			},
			ebiten.Vertex{
				DstX: float32(inner.X + origin.X), DstY: float32(inner.Y + origin.Y),
				SrcX: iu, SrcY: iv,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			},
		)
	}

	for i := 0; i < segs; i++ {
		v := base + uint16(i*2)
		b.inds = append(b.inds, v, v+1, v+2, v+1, v+3, v+2)
	}
}

// appendDisc appends a filled circle as a triangle fan around its center.
func (b *meshBuffer) appendDisc(center Vec2, radius float64, c Color, origin Vec2) {
	if radius <= 0 {
		return
	}
	cr, cg, cb, ca := c.premultiplied()
	g := Geometry{Center: center, Radius: radius}
	base := uint16(len(b.verts))

	b.verts = append(b.verts, ebiten.Vertex{
		DstX: float32(center.X + origin.X), DstY: float32(center.Y + origin.Y),
		SrcX: 0.5, SrcY: 0.5,
		ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
	})
	for i := 0; i < discSegments; i++ {
		p := g.PointOnCircle(360*float64(i)/discSegments, radius)
		b.verts = append(b.verts, ebiten.Vertex{
			DstX: float32(p.X + origin.X), DstY: float32(p.Y + origin.Y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	for i := 0; i < discSegments; i++ {
		next := (i+1)%discSegments + 1
		b.inds = append(b.inds, base, base+uint16(i+1), base+uint16(next))
	}
}
