// Package inference - the background-segmentation collaborator. It
// wraps a BiRefNet ONNX model behind an explicitly constructed session
// with caller-managed lifetime. The compositing core consumes only the
// Segmenter contract and never touches the runtime.
package inference

import (
	"context"

	"github.com/lumapix/studioshot/images"
)

// Segmenter maps a photo to an RGBA raster of the same size whose
// alpha channel encodes inferred foreground coverage (0 background,
// 255 foreground). Implementations decide their own concurrency
// discipline; Session serializes calls internally.
type Segmenter interface {
	Segment(ctx context.Context, src *images.Raster) (*images.Raster, error)
}
