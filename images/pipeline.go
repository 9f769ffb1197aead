package images

import (
	"image"

	"github.com/pkg/errors"
)

// Options is the full configuration surface of Process.
type Options struct {
	// BackgroundColor is the final flatten color, 6 hex digits without
	// a prefix.
	BackgroundColor string
	// Padding is the fraction of the canvas reserved as margin on each
	// side, in [0, 0.5).
	Padding float64
	// Shadow enables the grounding-shadow stage.
	Shadow bool
	// OutputSize is the final canvas size in pixels.
	OutputSize image.Point
	// EdgeStrength selects the edge-refinement erosion count.
	EdgeStrength Strength
	// ShadowOptions configures the cast shadow when Shadow is on.
	ShadowOptions ShadowOptions
}

// DefaultOptions returns the standard product-photo configuration:
// white background, 10% margin, soft shadow, 1200x1200 canvas.
func DefaultOptions() Options {
	return Options{
		BackgroundColor: "FFFFFF",
		Padding:         0.1,
		Shadow:          true,
		OutputSize:      image.Pt(1200, 1200),
		EdgeStrength:    StrengthLight,
		ShadowOptions:   DefaultShadowOptions(),
	}
}

// validate checks every option and parses the background color so a
// bad configuration fails before any buffer work.
func (o Options) validate() (RGB, error) {
	bg, err := ParseHexColor(o.BackgroundColor)
	if err != nil {
		return RGB{}, err
	}
	if o.Padding < 0 || o.Padding >= 0.5 {
		return RGB{}, errors.Errorf("padding must be in [0, 0.5), got %v", o.Padding)
	}
	if o.OutputSize.X <= 0 || o.OutputSize.Y <= 0 {
		return RGB{}, errors.Errorf("output size must be positive, got %dx%d", o.OutputSize.X, o.OutputSize.Y)
	}
	if o.ShadowOptions.Opacity < 0 || o.ShadowOptions.Opacity > 1 {
		return RGB{}, errors.Errorf("shadow opacity must be in [0, 1], got %v", o.ShadowOptions.Opacity)
	}
	return bg, nil
}

// Process turns a foreground cutout into a finished product photo:
// refined edges, content-aware centered layout, optional dual-layer
// shadow, opaque background of OutputSize.
//
// The stage sequence is fixed and non-reorderable; each stage consumes
// the previous stage's output and owns its buffers. Process is pure
// and deterministic - identical inputs yield byte-identical output -
// and retains no state across calls. Any failure is terminal for the
// image; no stage is retried or silently skipped.
//
// Arguments:
//   - fg: The RGBA cutout, straight alpha, as supplied by segmentation.
//   - opts: The configuration surface; see DefaultOptions.
//
// Returns:
//   - *Raster: The opaque result (alpha forced to 255 everywhere).
//   - error: Validation or contract errors; no partial output.
func Process(fg *Raster, opts Options) (*Raster, error) {
	bg, err := opts.validate()
	if err != nil {
		return nil, err
	}
	if err := fg.validate(); err != nil {
		return nil, errors.Wrap(err, "foreground")
	}

	refined := Refine(fg, opts.EdgeStrength)
	cropped := CropToContent(refined)

	place := FitWithin(cropped.Width, cropped.Height, opts.OutputSize.X, opts.OutputSize.Y, opts.Padding)
	scaled, err := ScaleToFit(cropped, place)
	if err != nil {
		return nil, errors.Wrap(err, "scale foreground")
	}

	canvas, err := NewRaster(opts.OutputSize.X, opts.OutputSize.Y)
	if err != nil {
		return nil, err
	}

	if opts.Shadow {
		layer := SynthesizeShadow(scaled, canvas.Width, canvas.Height, place.X, place.Y, opts.ShadowOptions)
		canvas, err = AlphaOver(canvas, layer)
		if err != nil {
			return nil, errors.Wrap(err, "composite shadow")
		}
	}

	canvas = PasteOver(canvas, scaled, place.X, place.Y)

	return FlattenOpaque(canvas, bg), nil
}
