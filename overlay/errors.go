package overlay

import "errors"

// Fatal configuration errors. Everything else that can go wrong while
// annotating a photo (missing tags, no weather) just drops the affected
// element from the frame.
var (
	// ErrInvalidGeometry reports a canvas or grid size that cannot hold a layout.
	ErrInvalidGeometry = errors.New("overlay: invalid geometry")
	// ErrFontLoad reports a font asset that cannot be read or parsed.
	ErrFontLoad = errors.New("overlay: font load failure")
	// ErrFontTooSmall reports a sample phrase that renders no ink, so no
	// point size reaches the target height.
	ErrFontTooSmall = errors.New("overlay: font cannot reach target height")
	// ErrIconAssetMissing reports a weather code without a readable icon bitmap.
	ErrIconAssetMissing = errors.New("overlay: icon asset missing")
)
