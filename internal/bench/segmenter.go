package bench

import (
	"context"

	sbd "github.com/jamesainslie/go-sbd"
)

// Segmenter predicts sentence end offsets for a text.
type Segmenter interface {
	Boundaries(ctx context.Context, text string) ([]int, error)
}

// SegmenterFunc adapts a function to Segmenter.
type SegmenterFunc func(ctx context.Context, text string) ([]int, error)

// Boundaries calls f.
func (f SegmenterFunc) Boundaries(ctx context.Context, text string) ([]int, error) {
	return f(ctx, text)
}

// SBD adapts an sbd.Segmenter.
func SBD(seg *sbd.Segmenter) Segmenter {
	return SegmenterFunc(func(_ context.Context, text string) ([]int, error) {
		_, boundaries := seg.SegmentWithBoundaries(text)
		return boundaries, nil
	})
}
