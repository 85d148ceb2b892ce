package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/layouter"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// GenerateLayout places every tag in order with a fresh layouter.
// Placement stops early if ctx is cancelled.
func GenerateLayout(ctx context.Context, list tags.List, opts Options) (cloud.Layout, error) {
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Compaction, len(list))

	out, err := placeAll(ctx, list, opts)

	observability.Pipeline().OnLayoutComplete(ctx, opts.Compaction, len(list), time.Since(start), err)
	return out, err
}

func placeAll(ctx context.Context, list tags.List, opts Options) (cloud.Layout, error) {
	l := layouter.New(opts.Center, opts.LayoutOptions()...)
	for i, t := range list {
		if err := ctx.Err(); err != nil {
			return cloud.Layout{}, err
		}
		if _, err := l.PlaceNext(t.Size()); err != nil {
			return cloud.Layout{}, fmt.Errorf("place tag %d (%s): %w", i+1, t.Size(), err)
		}
	}
	return cloud.FromLayouter(l, list.Labels()), nil
}
