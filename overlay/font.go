package overlay

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	// DefaultSamplePhrase is measured to size the base font.
	DefaultSamplePhrase = "Hello World 0158"

	embeddedFontName = "goregular"
)

// Ratios applied to the base size for the larger text elements.
const (
	ClockScale = 2.0
	TitleScale = 1.5
)

// TextSize is the pixel footprint of a rendered string: advance width, and
// height from the font's ascent line down to the bottom of the ink.
type TextSize struct {
	Width  int
	Height int
}

// Measurer renders text at a point size and reports its size.
type Measurer interface {
	Path() string
	Measure(text string, sizePt int) (TextSize, error)
}

// FontChoice is the outcome of a font search for one string.
type FontChoice struct {
	Path   string
	SizePt int
	Width  int
	Height int
}

// Typeface is a parsed font file. Faces at specific sizes are created on
// demand and closed after use.
type Typeface struct {
	path   string
	parsed *opentype.Font
}

// LoadTypeface reads and parses the font at path. An empty path selects
// the embedded Go Regular font.
func LoadTypeface(path string) (*Typeface, error) {
	data := goregular.TTF
	name := embeddedFontName
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %q: %v", ErrFontLoad, path, err)
		}
		data = raw
		name = path
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %q: %v", ErrFontLoad, name, err)
	}
	return &Typeface{path: name, parsed: parsed}, nil
}

// Path names the font source.
func (t *Typeface) Path() string { return t.path }

// Face returns a face at sizePt points (72 DPI, so points are pixels).
// The caller closes it.
func (t *Typeface) Face(sizePt int) (font.Face, error) {
	if sizePt <= 0 {
		return nil, fmt.Errorf("overlay: font size %d must be positive", sizePt)
	}
	face, err := opentype.NewFace(t.parsed, &opentype.FaceOptions{
		Size:    float64(sizePt),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create face at %dpt: %v", ErrFontLoad, sizePt, err)
	}
	return face, nil
}

// Measure renders text at sizePt and reports its footprint.
func (t *Typeface) Measure(text string, sizePt int) (TextSize, error) {
	face, err := t.Face(sizePt)
	if err != nil {
		return TextSize{}, err
	}
	defer face.Close()
	return measureFace(face, text), nil
}

func measureFace(face font.Face, text string) TextSize {
	if text == "" {
		return TextSize{}
	}
	bounds, advance := font.BoundString(face, text)
	ts := TextSize{Width: advance.Ceil()}
	if bounds.Empty() {
		return ts
	}
	ts.Height = max(face.Metrics().Ascent.Ceil()+bounds.Max.Y.Ceil(), 0)
	return ts
}

// FitBaseFont finds the smallest point size at which sample renders at
// least targetHeight pixels tall. The search walks up one point at a time
// from 1, so the result never overshoots. Any inked sample reaches the
// target by 2*targetHeight+1 points; ErrFontTooSmall means it has no ink.
func FitBaseFont(m Measurer, targetHeight int, sample string) (FontChoice, error) {
	limit := max(2*targetHeight+1, 1)
	for size := 1; size <= limit; size++ {
		ts, err := m.Measure(sample, size)
		if err != nil {
			return FontChoice{}, err
		}
		if ts.Height >= targetHeight {
			return FontChoice{
				Path:   m.Path(),
				SizePt: size,
				Width:  ts.Width,
				Height: ts.Height,
			}, nil
		}
	}
	return FontChoice{}, fmt.Errorf("%w: %q stays under %dpx at %dpt", ErrFontTooSmall, sample, targetHeight, limit)
}

// Fonts holds the point sizes used for one frame. Row is the line height
// the base font was fitted to.
type Fonts struct {
	Measurer Measurer
	Row      int
	Base     FontChoice
	Clock    int
	Title    int
}

// NewFonts fits the base font to targetHeight and derives the clock and
// title sizes from it.
func NewFonts(m Measurer, targetHeight int, sample string) (Fonts, error) {
	base, err := FitBaseFont(m, targetHeight, sample)
	if err != nil {
		return Fonts{}, err
	}
	return Fonts{
		Measurer: m,
		Row:      targetHeight,
		Base:     base,
		Clock:    int(float64(base.SizePt) * ClockScale),
		Title:    int(float64(base.SizePt) * TitleScale),
	}, nil
}
