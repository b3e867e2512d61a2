// Package overlay annotates photos with the current date and time, the
// photo's title, creation date and location, and the weather.
//
// All geometry derives from a grid laid over the photo, so the same layout
// reads the same on a 640×480 snapshot and a 3840×2160 frame. Nothing is
// cached between photos: fonts are sized and icons loaded per call.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"
)

// Config holds the engine settings. The zero value of any field picks the
// default from DefaultConfig.
type Config struct {
	GridSize       int
	FontPath       string
	TextColor      color.Color
	DateLayout     string
	TimeLayout     string
	CreationLayout string
	SamplePhrase   string
	IconGap        float64
	ShowGrid       bool
	Icons          IconSource
	Now            func() time.Time
}

// DefaultConfig returns the settings used by the photo frame.
func DefaultConfig() Config {
	return Config{
		GridSize:       20,
		TextColor:      color.White,
		DateLayout:     "Mon 2 Jan",
		TimeLayout:     "15:04",
		CreationLayout: "2 Jan 2006",
		SamplePhrase:   DefaultSamplePhrase,
		IconGap:        DefaultIconGap,
		Now:            time.Now,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.GridSize == 0 {
		c.GridSize = def.GridSize
	}
	if c.TextColor == nil {
		c.TextColor = def.TextColor
	}
	if c.DateLayout == "" {
		c.DateLayout = def.DateLayout
	}
	if c.TimeLayout == "" {
		c.TimeLayout = def.TimeLayout
	}
	if c.CreationLayout == "" {
		c.CreationLayout = def.CreationLayout
	}
	if c.SamplePhrase == "" {
		c.SamplePhrase = def.SamplePhrase
	}
	if c.IconGap <= 0 {
		c.IconGap = def.IconGap
	}
	if c.Now == nil {
		c.Now = def.Now
	}
	return c
}

// minRowFraction bounds how far Layout shrinks the text row to make room.
const minRowFraction = 5

// Engine draws overlays onto photos. It holds no per-photo state and is
// safe for concurrent use on distinct canvases.
type Engine struct {
	cfg      Config
	typeface *Typeface
}

// New validates cfg and loads the font, so a missing font asset fails at
// startup rather than on the first photo.
func New(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	if cfg.GridSize < MinGridSize {
		return nil, fmt.Errorf("%w: grid size %d, need at least %d", ErrInvalidGeometry, cfg.GridSize, MinGridSize)
	}

	typeface, err := LoadTypeface(cfg.FontPath)
	if err != nil {
		return nil, err
	}
	sample, err := typeface.Measure(cfg.SamplePhrase, 72)
	if err != nil {
		return nil, err
	}
	if sample.Height == 0 {
		return nil, fmt.Errorf("%w: sample phrase %q has no ink", ErrFontTooSmall, cfg.SamplePhrase)
	}
	return &Engine{cfg: cfg, typeface: typeface}, nil
}

// Layout computes where every element of a photo's overlay goes on a
// canvas of the given size, without drawing anything. When the elements do
// not all fit inside the border without overlapping, the text row is
// shrunk in steps and the layout redone.
func (e *Engine) Layout(size image.Point, imagePath string, tags Tags, weatherCode, temperature string) ([]Element, Grid, error) {
	grid, err := NewGrid(size.X, size.Y, e.cfg.GridSize)
	if err != nil {
		return nil, Grid{}, err
	}

	meta := Resolve(imagePath, tags)
	now := e.cfg.Now()
	content := Content{
		Date:        now.Format(e.cfg.DateLayout),
		Time:        now.Format(e.cfg.TimeLayout),
		Title:       meta.Title,
		Location:    meta.Location,
		WeatherCode: weatherCode,
		Temperature: temperature,
	}
	if meta.HasCreated() {
		content.CreationDate = meta.Created.Format(e.cfg.CreationLayout)
	}

	icons := e.cfg.Icons
	if icons == nil {
		icons = missingIcons{}
	}

	// Past minRowFraction of the grid's row, whatever still does not fit
	// is left out.
	row := grid.TextHeight()
	floor := max(row/minRowFraction, 1)
	for {
		fonts, err := NewFonts(e.typeface, row, e.cfg.SamplePhrase)
		if err != nil {
			return nil, Grid{}, err
		}
		elements, skipped, err := PlaceAll(grid, fonts, icons, content, e.cfg.IconGap)
		if err != nil {
			return nil, Grid{}, err
		}
		if len(skipped) == 0 || row <= floor {
			logDebug("base font %s at %dpt for %dpx rows (clock %dpt, title %dpt), skipped %v",
				fonts.Base.Path, fonts.Base.SizePt, row, fonts.Clock, fonts.Title, skipped)
			return elements, grid, nil
		}
		row = max(min(row*4/5, row-1), floor)
	}
}

// Annotate draws the overlay for the photo at imagePath onto canvas in
// place. Only configuration failures are returned; missing metadata or
// weather leaves the matching element off the frame.
func (e *Engine) Annotate(canvas draw.Image, imagePath string, tags Tags, weatherCode, temperature string) error {
	bounds := canvas.Bounds()
	elements, grid, err := e.Layout(bounds.Size(), imagePath, tags, weatherCode, temperature)
	if err != nil {
		return err
	}

	if e.cfg.ShowGrid {
		drawGrid(canvas, grid, bounds.Min)
	}

	for _, el := range elements {
		box := el.Box.Add(bounds.Min)
		if el.Icon != nil {
			drawIcon(canvas, el.Icon, box)
			continue
		}
		face, err := e.typeface.Face(el.SizePt)
		if err != nil {
			return err
		}
		drawText(canvas, face, el.Text, box, e.cfg.TextColor)
		face.Close()
	}
	return nil
}

// missingIcons stands in when no icon set is configured: any photo shown
// with weather then fails the same way a missing asset would.
type missingIcons struct{}

func (missingIcons) Icon(code string, tier int) (image.Image, error) {
	return nil, fmt.Errorf("%w: no icon set configured for %q at %dpx", ErrIconAssetMissing, code, tier)
}
