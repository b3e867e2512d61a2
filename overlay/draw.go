package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// StrokeWidth is the outline drawn around overlay text, in pixels.
const StrokeWidth = 3

var (
	strokeColor = color.Black
	gridColor   = color.RGBA{R: 0x80, B: 0x80, A: 0xff}
)

const gridLineWidth = 5

// drawText renders text with its ascent line at box.Min.Y, outlined in
// black. The outline is the glyph mask stamped at every offset within
// StrokeWidth before the fill goes on top.
func drawText(dst draw.Image, face font.Face, text string, box image.Rectangle, fill color.Color) {
	if text == "" {
		return
	}
	bounds, _ := font.BoundString(face, text)
	dot := image.Pt(box.Min.X, box.Min.Y+face.Metrics().Ascent.Ceil())

	ink := image.Rect(
		dot.X+bounds.Min.X.Floor(), dot.Y+bounds.Min.Y.Floor(),
		dot.X+bounds.Max.X.Ceil(), dot.Y+bounds.Max.Y.Ceil(),
	)
	maskRect := ink.Union(box).Inset(-StrokeWidth)
	if maskRect.Empty() {
		return
	}

	mask := image.NewAlpha(maskRect)
	drawer := &font.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(color.Opaque),
		Face: face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	drawer.DrawString(text)

	stroke := image.NewUniform(strokeColor)
	for dy := -StrokeWidth; dy <= StrokeWidth; dy++ {
		for dx := -StrokeWidth; dx <= StrokeWidth; dx++ {
			if dx*dx+dy*dy > StrokeWidth*StrokeWidth || (dx == 0 && dy == 0) {
				continue
			}
			draw.DrawMask(dst, maskRect.Add(image.Pt(dx, dy)), stroke, image.Point{}, mask, maskRect.Min, draw.Over)
		}
	}
	draw.DrawMask(dst, maskRect, image.NewUniform(fill), image.Point{}, mask, maskRect.Min, draw.Over)
}

// drawIcon pastes icon at box.Min, blending through its alpha channel.
func drawIcon(dst draw.Image, icon image.Image, box image.Rectangle) {
	draw.Draw(dst, box, icon, icon.Bounds().Min, draw.Over)
}

// drawGrid outlines every cell. Debug aid for tuning the layout.
func drawGrid(dst draw.Image, grid Grid, origin image.Point) {
	src := image.NewUniform(gridColor)
	for i := 1; i <= grid.Size; i++ {
		x := origin.X + i*grid.CellWidth
		draw.Draw(dst, image.Rect(x, origin.Y, x+gridLineWidth, origin.Y+grid.Height), src, image.Point{}, draw.Over)
		y := origin.Y + i*grid.CellHeight
		draw.Draw(dst, image.Rect(origin.X, y, origin.X+grid.Width, y+gridLineWidth), src, image.Point{}, draw.Over)
	}
}
