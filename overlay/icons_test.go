package overlay

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func solidPNG(t *testing.T, size int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func iconFS(t *testing.T) fstest.MapFS {
	t.Helper()
	fsys := fstest.MapFS{
		"32px/broken.png": &fstest.MapFile{Data: []byte("not a png")},
	}
	for _, tier := range IconTiers {
		fsys[tierPath(tier, "clear-day")] = &fstest.MapFile{Data: solidPNG(t, tier, color.NRGBA{R: 0xff, A: 0xff})}
	}
	return fsys
}

func tierPath(tier int, name string) string {
	return fmt.Sprintf("%dpx/%s.png", tier, name)
}

func TestIconTier(t *testing.T) {
	cases := []struct{ target, want int }{
		{1, 32}, {32, 32}, {33, 64}, {64, 64}, {100, 128}, {128, 128},
		{129, 192}, {216, 192}, {220, 192}, {221, 256}, {256, 256}, {257, 512}, {4000, 512},
	}
	for _, tc := range cases {
		if got := IconTier(tc.target); got != tc.want {
			t.Fatalf("IconTier(%d) = %d, want %d", tc.target, got, tc.want)
		}
	}
}

func TestIconSetLoadsTier(t *testing.T) {
	set := NewIconSet(iconFS(t))
	icon, err := set.Icon("01d", 192)
	if err != nil {
		t.Fatalf("Icon returned error: %v", err)
	}
	if got := icon.Bounds().Size(); got != image.Pt(192, 192) {
		t.Fatalf("icon size = %v, want 192x192", got)
	}
}

func TestIconSetMissingAssets(t *testing.T) {
	set := NewIconSet(iconFS(t))
	cases := []struct {
		name string
		set  *IconSet
		code string
		tier int
	}{
		{"unknown code", set, "99x", 64},
		{"no file for night icon", set, "01n", 64},
		{"corrupt file", set.WithNames(map[string]string{"xx": "broken"}), "xx", 32},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.set.Icon(tc.code, tc.tier)
			if !errors.Is(err, ErrIconAssetMissing) {
				t.Fatalf("error = %v, want ErrIconAssetMissing", err)
			}
		})
	}
}
