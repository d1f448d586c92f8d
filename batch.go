package sbd

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// SegmentAll segments independent documents concurrently, sharing the
// classifier read-only. Results are in input order. Cancelling ctx stops
// documents that have not started yet.
func (s *Segmenter) SegmentAll(ctx context.Context, texts []string) ([][]string, error) {
	out := make([][]string, len(texts))
	if len(texts) == 0 {
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			_, span := s.tracer.Start(ctx, "sbd.segment",
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					attribute.Int("document.index", i),
					attribute.Int("document.bytes", len(text)),
				),
			)
			out[i] = s.Segment(text)
			span.SetAttributes(attribute.Int("document.sentences", len(out[i])))
			span.SetStatus(codes.Ok, "")
			span.End()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("segmenting documents: %w", err)
	}

	s.logger.Debug("batch segmented", "documents", len(texts), "concurrency", s.concurrency)
	return out, nil
}
