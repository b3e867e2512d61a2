package photo

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	"photoframe/overlay"
)

// Photo is a decoded image ready to be annotated.
type Photo struct {
	Path  string
	Image *image.NRGBA
	Tags  overlay.Tags
}

// Load decodes the photo at path, rotated upright according to its EXIF
// orientation, along with its embedded tags.
func Load(path string) (*Photo, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("photo: decode %q: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("photo: open %q: %w", path, err)
	}
	defer f.Close()

	return &Photo{
		Path:  path,
		Image: imaging.Clone(img),
		Tags:  ReadTags(f),
	}, nil
}
