package knob

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Indicator notch on untextured faces. Inner and outer are fractions of the
// knob radius; width is in pixels.
const (
	indicatorInner = 0.55
	indicatorOuter = 0.9
	indicatorWidth = 4.0
	indicatorShade = 0.35
)

// white pixel singleton (no sync.Once; knobs live on the game loop)
var whitePixelImage *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// renderer draws RenderModels. It keeps the mesh buffers between frames.
type renderer struct {
	mesh meshBuffer
}

// drawOptions carries the per-draw inputs that are not part of the model.
type drawOptions struct {
	origin   Vec2 // destination position of the widget's top-left corner
	textures Textures
	font     *Font
	faceTint Color
}

// draw paints the marker ring, the backing disc, the face and the label, in
// that order.
func (r *renderer) draw(dst *ebiten.Image, m RenderModel, opts drawOptions) {
	for i, arc := range m.MarkerGeometry() {
		img := opts.textures.Marker
		if i > 0 {
			img = opts.textures.MarkerOff
		}
		r.drawArc(dst, arc, img, opts.origin)
	}

	geom := m.Geometry()
	if bg, ok := m.FaceBackground(); ok && bg.A > 0 {
		r.mesh.reset()
		r.mesh.appendDisc(geom.Center, m.KnobRadius(), bg, opts.origin)
		r.flush(dst, ensureWhitePixel())
	}

	if opts.textures.Face != nil {
		drawFace(dst, m, opts.textures.Face, opts.origin, opts.faceTint)
	} else {
		r.drawSolidFace(dst, m, opts.origin, opts.faceTint)
	}

	if m.LabelVisible() {
		font := opts.font
		if font == nil {
			font = DefaultFont()
		}
		drawLabel(dst, m, font, opts.origin)
	}
}

func (r *renderer) drawArc(dst *ebiten.Image, arc Arc, img *ebiten.Image, origin Vec2) {
	if arc.Color.A <= 0 {
		return
	}
	texW, texH := texSize(img)
	if img == nil {
		img = ensureWhitePixel()
	}
	r.mesh.reset()
	r.mesh.appendArc(arc, origin, texW, texH)
	r.flush(dst, img)
}

// drawSolidFace fills the face with its tint and marks the rotation with a
// darker notch.
func (r *renderer) drawSolidFace(dst *ebiten.Image, m RenderModel, origin Vec2, tint Color) {
	if tint.A <= 0 {
		return
	}
	geom := m.Geometry()
	kr := m.KnobRadius()
	r.mesh.reset()
	r.mesh.appendDisc(geom.Center, kr, tint, origin)
	if kr > 0 {
		mid := kr * (indicatorInner + indicatorOuter) / 2
		half := indicatorWidth / 2 / mid * 180 / math.Pi
		rot := m.RotationAngle()
		r.mesh.appendArc(Arc{
			Center: geom.Center,
			Inner:  kr * indicatorInner,
			Outer:  kr * indicatorOuter,
			Start:  rot - half,
			End:    rot + half,
			Color:  tint.Scale(indicatorShade),
		}, origin, 0, 0)
	}
	r.flush(dst, ensureWhitePixel())
}

func (r *renderer) flush(dst *ebiten.Image, img *ebiten.Image) {
	if len(r.mesh.inds) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(r.mesh.verts, r.mesh.inds, img, op)
}

// drawFace draws the face texture scaled into FaceRect and rotated about the
// knob center.
func drawFace(dst *ebiten.Image, m RenderModel, face *ebiten.Image, origin Vec2, tint Color) {
	w, h := texSize(face)
	if w == 0 || h == 0 {
		return
	}
	fr := m.FaceRect()
	c := m.Geometry().Center

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(fr.Width/w, fr.Height/h)
	op.GeoM.Rotate(m.FaceRotation())
	op.GeoM.Translate(c.X+origin.X, c.Y+origin.Y)
	cr, cg, cb, ca := tint.premultiplied()
	op.ColorScale.Scale(cr, cg, cb, ca)
	dst.DrawImage(face, op)
}

// drawLabel draws the value text centered on the knob.
func drawLabel(dst *ebiten.Image, m RenderModel, font *Font, origin Vec2) {
	lc := m.LabelColor()
	if lc.A <= 0 {
		return
	}
	face := font.Face(m.FontSize())
	c := m.Geometry().Center

	op := &text.DrawOptions{}
	op.GeoM.Translate(c.X+origin.X, c.Y+origin.Y)
	cr, cg, cb, ca := lc.premultiplied()
	op.ColorScale.Scale(cr, cg, cb, ca)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, m.LabelText(), face, op)
}
