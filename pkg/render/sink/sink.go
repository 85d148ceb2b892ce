package sink

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}

var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// ValidFormat reports whether format is supported.
func ValidFormat(format string) bool { return slices.Contains(Formats, format) }

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Render renders l in the given format.
func Render(ctx context.Context, l cloud.Layout, format string, opts ...Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(l, opts...), nil
	case FormatPNG:
		return RenderPNG(l, opts...)
	case FormatPDF:
		return RenderPDF(l, opts...)
	case FormatJSON:
		return RenderJSON(l)
	case FormatDOT:
		return RenderDOT(ctx, l, opts...)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat,
		"invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
}
