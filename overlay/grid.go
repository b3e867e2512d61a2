package overlay

import (
	"fmt"
	"image"
)

// Border is the margin, in cells, kept clear around the edge of the canvas.
const Border = 1

// MinGridSize is the smallest grid that still leaves an interior between
// the left and right borders.
const MinGridSize = 2*Border + 1

// Grid is a uniform Size×Size division of a canvas. All overlay geometry
// is expressed in multiples of its cells so the layout scales with the
// photo's resolution.
type Grid struct {
	Width      int
	Height     int
	Size       int
	CellWidth  int
	CellHeight int
	Border     int
}

// NewGrid derives the grid for a width×height canvas. Cell sizes truncate.
func NewGrid(width, height, size int) (Grid, error) {
	if size < MinGridSize {
		return Grid{}, fmt.Errorf("%w: grid size %d, need at least %d", ErrInvalidGeometry, size, MinGridSize)
	}
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("%w: canvas %dx%d", ErrInvalidGeometry, width, height)
	}

	g := Grid{
		Width:      width,
		Height:     height,
		Size:       size,
		CellWidth:  width / size,
		CellHeight: height / size,
		Border:     Border,
	}
	if g.CellWidth == 0 || g.CellHeight == 0 {
		return Grid{}, fmt.Errorf("%w: canvas %dx%d too small for a %d cell grid", ErrInvalidGeometry, width, height, size)
	}
	return g, nil
}

// Left, Right, Top and Bottom are the pixel edges of the area inside the border.
func (g Grid) Left() int   { return g.CellWidth * g.Border }
func (g Grid) Right() int  { return (g.Size - g.Border) * g.CellWidth }
func (g Grid) Top() int    { return g.CellHeight * g.Border }
func (g Grid) Bottom() int { return (g.Size - g.Border) * g.CellHeight }

// Interior is the area inside the border. Every overlay element lies
// within it.
func (g Grid) Interior() image.Rectangle {
	return image.Rect(g.Left(), g.Top(), g.Right(), g.Bottom())
}

// TextHeight is the height of one line of general overlay text: three rows.
func (g Grid) TextHeight() int { return 3 * g.CellHeight }
