package cli

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layouter"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestPrintStats(t *testing.T) {
	stats := layouter.Stats{
		Count:     12,
		Bounds:    geom.NewRect(0, 0, 320, 240),
		MaxRadius: 180.4,
		Density:   0.614,
	}

	tests := []struct {
		cached bool
		origin string
	}{
		{false, "fresh"},
		{true, "cached"},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			out := captureStdout(t, func() { printStats(stats, tt.cached) })
			for _, want := range []string{"12 tags", "320x240", "r 180", "density 0.61", tt.origin} {
				if !strings.Contains(out, want) {
					t.Errorf("printStats() = %q, missing %q", out, want)
				}
			}
		})
	}
}

func TestPrintStatusLines(t *testing.T) {
	out := captureStdout(t, func() {
		printSuccess("wrote %d files", 3)
		printWarning("cache %s", "disabled")
		printFile("cloud.svg")
	})
	for _, want := range []string{"wrote 3 files", "cache disabled", "cloud.svg"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
