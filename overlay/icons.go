package overlay

import (
	"fmt"
	"image"
	"io/fs"
	"path"

	"github.com/disintegration/imaging"
)

// IconTiers are the pixel sizes icon bitmaps are rendered at.
var IconTiers = []int{32, 64, 128, 192, 256, 512}

// IconTier picks the icon bitmap size for a target pixel height.
func IconTier(target int) int {
	switch {
	case target <= 32:
		return 32
	case target <= 64:
		return 64
	case target <= 128:
		return 128
	case target <= 220:
		return 192
	case target <= 256:
		return 256
	default:
		return 512
	}
}

// IconSource supplies the bitmap for a weather code at a size tier.
type IconSource interface {
	Icon(code string, tier int) (image.Image, error)
}

// OpenWeatherIcons maps OpenWeather condition icons to asset names.
var OpenWeatherIcons = map[string]string{
	"01d": "clear-day",
	"01n": "clear-night",
	"02d": "partly-cloudy-day",
	"02n": "partly-cloudy-night",
	"03d": "cloudy",
	"03n": "cloudy",
	"04d": "overcast",
	"04n": "overcast",
	"09d": "rain",
	"09n": "rain",
	"10d": "showers-day",
	"10n": "showers-night",
	"11d": "thunderstorm",
	"11n": "thunderstorm",
	"13d": "snow",
	"13n": "snow",
	"50d": "fog",
	"50n": "fog",
}

// IconSet reads icons laid out as "<tier>px/<name>.png" from a file system.
// Bitmaps are decoded on every call.
type IconSet struct {
	fsys  fs.FS
	names map[string]string
}

// NewIconSet serves icons from fsys using the OpenWeather naming table.
func NewIconSet(fsys fs.FS) *IconSet {
	return &IconSet{fsys: fsys, names: OpenWeatherIcons}
}

// WithNames replaces the code to asset name table.
func (s *IconSet) WithNames(names map[string]string) *IconSet {
	return &IconSet{fsys: s.fsys, names: names}
}

func (s *IconSet) Icon(code string, tier int) (image.Image, error) {
	name, ok := s.names[code]
	if !ok {
		return nil, fmt.Errorf("%w: no icon for weather code %q", ErrIconAssetMissing, code)
	}

	assetPath := path.Join(fmt.Sprintf("%dpx", tier), name+".png")
	f, err := s.fsys.Open(assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrIconAssetMissing, assetPath, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrIconAssetMissing, assetPath, err)
	}
	return img, nil
}
