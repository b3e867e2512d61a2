package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"photoframe/overlay"
	"photoframe/photo"
	"photoframe/weather"
)

type recordingSink struct {
	mu     sync.Mutex
	frames []image.Image
	onShow func(n int)
}

func (s *recordingSink) Show(img image.Image) error {
	s.mu.Lock()
	s.frames = append(s.frames, img)
	n := len(s.frames)
	s.mu.Unlock()
	if s.onShow != nil {
		s.onShow(n)
	}
	return nil
}

var errUndecodable = errors.New("photo: decode: unknown format")

func fakeLoader(sizes map[string]image.Point) func(string) (*photo.Photo, error) {
	return func(path string) (*photo.Photo, error) {
		size, ok := sizes[path]
		if !ok {
			return nil, errUndecodable
		}
		return &photo.Photo{
			Path:  path,
			Image: imaging.New(size.X, size.Y, color.NRGBA{R: 0x40, G: 0x60, B: 0x80, A: 0xff}),
			Tags:  overlay.Tags{Title: "Sunset"},
		}, nil
	}
}

func newTestSlideshow(t *testing.T, paths []string, sizes map[string]image.Point, cfg overlay.Config) *slideshow {
	t.Helper()
	cfg.Now = func() time.Time { return time.Date(2019, time.August, 16, 18, 32, 0, 0, time.UTC) }
	engine, err := overlay.New(cfg)
	if err != nil {
		t.Fatalf("overlay.New returned error: %v", err)
	}
	return &slideshow{
		engine:  engine,
		paths:   paths,
		weather: &weatherState{},
		delay:   time.Millisecond,
		load:    fakeLoader(sizes),
	}
}

func TestSlideshowCyclesAndSkipsBadPhotos(t *testing.T) {
	paths := []string{"/images/Iceland_2019/a.jpg", "/images/broken.jpg", "/images/tiny.jpg", "/images/b.jpg"}
	sizes := map[string]image.Point{
		"/images/Iceland_2019/a.jpg": {X: 640, Y: 480},
		"/images/tiny.jpg":           {X: 8, Y: 8},
		"/images/b.jpg":              {X: 480, Y: 640},
	}
	s := newTestSlideshow(t, paths, sizes, overlay.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink := &recordingSink{onShow: func(n int) {
		if n == 3 {
			cancel()
		}
	}}
	s.sink = sink

	if err := s.run(ctx); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.frames) != 3 {
		t.Fatalf("frames shown = %d, want 3", len(sink.frames))
	}
	if got := sink.frames[1].Bounds().Size(); got != image.Pt(480, 640) {
		t.Fatalf("second frame size = %v, want the portrait photo", got)
	}
	if got := sink.frames[2].Bounds().Size(); got != image.Pt(640, 480) {
		t.Fatalf("third frame size = %v, want the loop to wrap around", got)
	}
}

func TestSlideshowStopsOnMissingIcon(t *testing.T) {
	paths := []string{"/images/a.jpg"}
	s := newTestSlideshow(t, paths, map[string]image.Point{"/images/a.jpg": {X: 640, Y: 480}}, overlay.Config{})
	s.weather.set(weather.Report{Code: "01d", Temperature: "21°"})
	s.sink = &recordingSink{}

	err := s.run(context.Background())
	if !errors.Is(err, overlay.ErrIconAssetMissing) {
		t.Fatalf("run error = %v, want ErrIconAssetMissing", err)
	}
}

func TestSkippable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{fmt.Errorf("%w: canvas 8x8", overlay.ErrInvalidGeometry), true},
		{fmt.Errorf("%w: sample has no ink", overlay.ErrFontTooSmall), true},
		{fmt.Errorf("%w: 01d at 192px", overlay.ErrIconAssetMissing), false},
		{overlay.ErrFontLoad, false},
	}
	for _, tc := range cases {
		if got := skippable(tc.err); got != tc.want {
			t.Fatalf("skippable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestSlideshowShowsLargePhoto(t *testing.T) {
	paths := []string{"/images/Iceland_2019/big.jpg"}
	s := newTestSlideshow(t, paths, map[string]image.Point{paths[0]: {X: 8000, Y: 6000}}, overlay.Config{})
	sink := &recordingSink{}
	s.sink = sink

	if err := s.show(paths[0]); err != nil {
		t.Fatalf("show returned error: %v", err)
	}
	if len(sink.frames) != 1 {
		t.Fatalf("frames shown = %d, want 1", len(sink.frames))
	}
}

func TestSlideshowNoPhotos(t *testing.T) {
	s := newTestSlideshow(t, nil, nil, overlay.Config{})
	if err := s.run(context.Background()); !errors.Is(err, errNoPhotos) {
		t.Fatalf("run error = %v, want errNoPhotos", err)
	}
	if err := s.dryRun(context.Background()); !errors.Is(err, errNoPhotos) {
		t.Fatalf("dryRun error = %v, want errNoPhotos", err)
	}
}

func TestDryRunDoesNotDraw(t *testing.T) {
	paths := []string{"/images/a.jpg", "/images/broken.jpg"}
	s := newTestSlideshow(t, paths, map[string]image.Point{"/images/a.jpg": {X: 640, Y: 480}}, overlay.Config{})
	sink := &recordingSink{}
	s.sink = sink

	if err := s.dryRun(context.Background()); err != nil {
		t.Fatalf("dryRun returned error: %v", err)
	}
	if len(sink.frames) != 0 {
		t.Fatalf("dry run showed %d frames", len(sink.frames))
	}
}
