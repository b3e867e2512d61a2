package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"photoframe/overlay"
	"photoframe/photo"
)

var errNoPhotos = errors.New("slideshow: no photos to show")

// frameSink receives annotated frames; the LED matrix in production.
type frameSink interface {
	Show(img image.Image) error
}

type slideshow struct {
	engine  *overlay.Engine
	paths   []string
	weather *weatherState
	sink    frameSink
	delay   time.Duration
	load    func(path string) (*photo.Photo, error)
}

// run shows one photo per delay, cycling through paths until ctx is done.
func (s *slideshow) run(ctx context.Context) error {
	if len(s.paths) == 0 {
		return errNoPhotos
	}

	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for i := 0; ; i = (i + 1) % len(s.paths) {
		if err := s.show(s.paths[i]); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// skippable reports whether an overlay error is specific to one photo, so
// the slideshow can move on to the next.
func skippable(err error) bool {
	return errors.Is(err, overlay.ErrInvalidGeometry) || errors.Is(err, overlay.ErrFontTooSmall)
}

// show annotates one photo and sends it to the sink. Photos that cannot be
// decoded or laid out are logged and skipped; missing assets stop the
// slideshow.
func (s *slideshow) show(path string) error {
	entry := logrus.WithField("photo", path)

	p, err := s.load(path)
	if err != nil {
		entry.WithError(err).Warn("skipping photo")
		return nil
	}

	report := s.weather.get()
	if err := s.engine.Annotate(p.Image, p.Path, p.Tags, report.Code, report.Temperature); err != nil {
		if skippable(err) {
			entry.WithError(err).Warn("skipping photo")
			return nil
		}
		return fmt.Errorf("slideshow: annotate %q: %w", path, err)
	}

	if err := s.sink.Show(p.Image); err != nil {
		return fmt.Errorf("slideshow: show %q: %w", path, err)
	}
	entry.Debug("photo shown")
	return nil
}

// dryRun logs the overlay layout of every photo once without drawing.
func (s *slideshow) dryRun(ctx context.Context) error {
	if len(s.paths) == 0 {
		return errNoPhotos
	}

	report := s.weather.get()
	for _, path := range s.paths {
		if ctx.Err() != nil {
			return nil
		}
		entry := logrus.WithField("photo", path)
		p, err := s.load(path)
		if err != nil {
			entry.WithError(err).Warn("skipping photo")
			continue
		}

		elements, grid, err := s.engine.Layout(p.Image.Bounds().Size(), p.Path, p.Tags, report.Code, report.Temperature)
		if err != nil {
			if skippable(err) {
				entry.WithError(err).Warn("skipping photo")
				continue
			}
			return fmt.Errorf("slideshow: layout %q: %w", path, err)
		}

		entry.WithFields(logrus.Fields{
			"width":  grid.Width,
			"height": grid.Height,
			"cell":   fmt.Sprintf("%dx%d", grid.CellWidth, grid.CellHeight),
		}).Info("layout")
		for _, el := range elements {
			entry.WithFields(logrus.Fields{
				"kind": el.Kind.String(),
				"text": el.Text,
				"size": el.SizePt,
				"box":  el.Box.String(),
			}).Info("element")
		}
	}
	return nil
}
