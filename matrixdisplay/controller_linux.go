//go:build linux

package matrixdisplay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	rgbmatrix "github.com/mcuadros/go-rpi-rgb-led-matrix"
)

// Controller manages a HUB75 RGB LED matrix and scales frames of any size
// onto it.
type Controller struct {
	matrix rgbmatrix.Matrix
	canvas *rgbmatrix.Canvas
	size   image.Point
}

// NewController initializes the LED matrix and clears the display. Call Close
// when finished to release resources.
func NewController(opts Options) (*Controller, error) {
	opts = opts.withDefaults()

	config := rgbmatrix.DefaultConfig
	config.Rows = opts.Rows
	config.Cols = opts.Cols
	config.ChainLength = opts.ChainLength
	config.Parallel = opts.Parallel
	config.Brightness = opts.Brightness
	config.HardwareMapping = opts.HardwareMapping

	matrix, err := rgbmatrix.NewRGBLedMatrix(&config)
	if err != nil {
		return nil, fmt.Errorf("matrixdisplay: create matrix: %w", err)
	}

	ctrl := &Controller{
		matrix: matrix,
		canvas: rgbmatrix.NewCanvas(matrix),
		size:   opts.Size(),
	}

	if err := ctrl.Clear(); err != nil {
		_ = ctrl.Close()
		return nil, err
	}

	return ctrl, nil
}

// Size reports the pixel size of the display.
func (c *Controller) Size() image.Point {
	return c.size
}

// Show letterboxes img onto the matrix and renders it.
func (c *Controller) Show(img image.Image) error {
	if img == nil {
		return fmt.Errorf("matrixdisplay: nil image")
	}

	frame := Fit(img, c.size.X, c.size.Y)
	draw.Draw(c.canvas, c.canvas.Bounds(), frame, image.Point{}, draw.Src)
	if err := c.canvas.Render(); err != nil {
		return fmt.Errorf("matrixdisplay: render image: %w", err)
	}
	return nil
}

// Clear turns off all pixels on the matrix.
func (c *Controller) Clear() error {
	draw.Draw(c.canvas, c.canvas.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)
	if err := c.canvas.Render(); err != nil {
		return fmt.Errorf("matrixdisplay: clear display: %w", err)
	}
	return nil
}

// Close clears the display and releases the underlying resources.
func (c *Controller) Close() error {
	return c.canvas.Close()
}
