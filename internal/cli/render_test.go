package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/geom"
)

const testTags = `# width height label
120 40 golang
80 30 rust
60 24 zig
140 44 kubernetes
`

// newTestCLI returns a CLI whose config and cache live in temp dirs.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(io.Discard, LogInfo)
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeTags(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "langs.txt")
	if err := os.WriteFile(path, []byte(testTags), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and empty parts", " svg, ,dot ", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "tags.txt", "tags"},
		{"", "dir/cloud.layout.json", "dir/cloud"},
		{"out.svg", "tags.txt", "out"},
		{"out.pdf", "tags.txt", "out"},
		{"out", "tags.txt", "out"},
		{"out.v2", "tags.txt", "out.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		output, input, format string
		single                bool
		want                  string
	}{
		{"cloud.png", "tags.txt", "png", true, "cloud.png"},
		{"", "tags.txt", "svg", true, "tags.svg"},
		{"cloud.svg", "tags.txt", "pdf", false, "cloud.pdf"},
		{"", "-", "svg", true, "cloud.svg"},
	}

	for _, tt := range tests {
		if got := artifactPath(tt.output, tt.input, tt.format, tt.single); got != tt.want {
			t.Errorf("artifactPath(%q, %q, %q, %v) = %q, want %q",
				tt.output, tt.input, tt.format, tt.single, got, tt.want)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	c := newTestCLI(t)
	input := writeTags(t)
	base := filepath.Join(t.TempDir(), "out", "cloud")

	if err := execute(t, c, "render", input, "-f", "svg,png,json", "-o", base, "--center-x", "200", "--center-y", "100"); err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, ext := range []string{"svg", "png", "json"} {
		if _, err := os.Stat(base + "." + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}

	l, err := cloud.ReadFile(base + ".json")
	if err != nil {
		t.Fatalf("read json artifact: %v", err)
	}
	if len(l.Tags) != 4 {
		t.Fatalf("got %d tags, want 4", len(l.Tags))
	}
	if got, want := l.Tags[0].Rect(), geom.RectAround(geom.Pt(200, 100), geom.Sz(120, 40)); got != want {
		t.Errorf("first tag = %v, want %v", got, want)
	}
}

func TestLayoutThenRender(t *testing.T) {
	c := newTestCLI(t)
	input := writeTags(t)
	layoutFile := filepath.Join(t.TempDir(), "cloud.layout.json")

	if err := execute(t, c, "layout", input, "-o", layoutFile, "--compaction", "axes"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := cloud.ReadFile(layoutFile)
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if l.Compaction != "axes" || len(l.Tags) != 4 {
		t.Errorf("unexpected layout: compaction %q, %d tags", l.Compaction, len(l.Tags))
	}

	svg := filepath.Join(t.TempDir(), "cloud.svg")
	if err := execute(t, New(io.Discard, LogInfo), "render", layoutFile, "-o", svg); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	data, err := os.ReadFile(svg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("kubernetes")) {
		t.Error("svg does not contain the tag labels")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := writeTags(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"render", filepath.Join(t.TempDir(), "nope.txt")}},
		{"bad format", []string{"render", input, "-f", "gif"}},
		{"bad compaction", []string{"render", input, "--compaction", "spiral"}},
		{"bad palette", []string{"render", input, "--palette", "neon"}},
		{"bad step", []string{"layout", input, "--angle-step", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t)
			args := append(tt.args, "-o", filepath.Join(t.TempDir(), "out.svg"))
			if err := execute(t, c, args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
