package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// Parse returns the tag list of opts: the parsed Input if set, otherwise
// the validated Tags.
func Parse(ctx context.Context, opts Options) (tags.List, error) {
	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, opts.InputFormat, len(opts.Input))

	var (
		list tags.List
		err  error
	)
	if len(opts.Input) > 0 {
		list, err = tags.Parse(opts.Input, opts.InputFormat)
	} else {
		list, err = opts.Tags, opts.Tags.Validate()
	}

	observability.Pipeline().OnParseComplete(ctx, opts.InputFormat, len(list), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return list, nil
}
