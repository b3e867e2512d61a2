package matrixdisplay

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Default geometry of a single Adafruit 64x64 HUB75 panel.
const (
	PanelWidth  = 64
	PanelHeight = 64
)

const defaultBrightness = 60

// Options describes the attached matrix. Zero fields take the single-panel
// defaults.
type Options struct {
	Rows            int
	Cols            int
	ChainLength     int
	Parallel        int
	Brightness      int
	HardwareMapping string
}

// DefaultOptions matches one 64x64 panel on the Adafruit RGB Matrix Bonnet.
func DefaultOptions() Options {
	return Options{
		Rows:            PanelHeight,
		Cols:            PanelWidth,
		ChainLength:     1,
		Parallel:        1,
		Brightness:      defaultBrightness,
		HardwareMapping: "adafruit-hat-pwm",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Rows <= 0 {
		o.Rows = d.Rows
	}
	if o.Cols <= 0 {
		o.Cols = d.Cols
	}
	if o.ChainLength <= 0 {
		o.ChainLength = d.ChainLength
	}
	if o.Parallel <= 0 {
		o.Parallel = d.Parallel
	}
	if o.Brightness <= 0 {
		o.Brightness = d.Brightness
	}
	if o.HardwareMapping == "" {
		o.HardwareMapping = d.HardwareMapping
	}
	return o
}

// Size is the pixel size of the whole display surface.
func (o Options) Size() image.Point {
	o = o.withDefaults()
	return image.Pt(o.Cols*o.ChainLength, o.Rows*o.Parallel)
}

// Fit scales img to fit inside a width x height frame, keeping its aspect
// ratio and centering it on black.
func Fit(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)
	if img == nil {
		return dst
	}

	src := img.Bounds()
	if src.Empty() {
		return dst
	}

	w, h := width, src.Dy()*width/src.Dx()
	if h > height {
		w, h = src.Dx()*height/src.Dy(), height
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	x := (width - w) / 2
	y := (height - h) / 2
	xdraw.ApproxBiLinear.Scale(dst, image.Rect(x, y, x+w, y+h), img, src, xdraw.Over, nil)
	return dst
}
