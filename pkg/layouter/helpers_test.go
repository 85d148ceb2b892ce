package layouter_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/layouter"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
)

// dumpOnFailure saves a PNG of the session under testdata/failed when the
// test fails, so broken layouts can be inspected.
func dumpOnFailure(t *testing.T, l *layouter.Layouter) {
	t.Helper()
	t.Cleanup(func() {
		if !t.Failed() || l.Len() == 0 {
			return
		}
		dir := filepath.Join("testdata", "failed")
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Logf("create %s: %v", dir, err)
			return
		}
		data, err := sink.RenderPNG(cloud.FromLayouter(l, nil))
		if err != nil {
			t.Logf("render failed layout: %v", err)
			return
		}
		path := filepath.Join(dir, strings.ReplaceAll(t.Name(), "/", "_")+".png")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Logf("write %s: %v", path, err)
			return
		}
		t.Logf("layout image saved to %s", path)
	})
}
