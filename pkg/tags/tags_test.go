package tags

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

func TestParse(t *testing.T) {
	want := List{
		{Label: "go", Width: 40, Height: 12},
		{Label: "cloud layout", Width: 8, Height: 8},
		{Width: 6, Height: 6},
	}

	tests := []struct {
		name   string
		format string
		input  string
	}{
		{"json array", FormatJSON, `[
			{"label": "go", "width": 40, "height": 12},
			{"label": "cloud layout", "width": 8, "height": 8},
			{"width": 6, "height": 6}
		]`},
		{"json object", FormatJSON, `{"tags": [
			{"label": "go", "width": 40, "height": 12},
			{"label": "cloud layout", "width": 8, "height": 8},
			{"width": 6, "height": 6}
		]}`},
		{"toml", FormatTOML, `
[[tag]]
label = "go"
width = 40
height = 12

[[tag]]
label = "cloud layout"
width = 8
height = 8

[[tag]]
width = 6
height = 6
`},
		{"text", FormatText, `
# width height label
40 12 go
8 8   cloud   layout

6 6
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("Parse() = %d tags, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("tag %d = %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
		code   errors.Code
	}{
		{"negative width", FormatText, "-4 16 a", errors.ErrCodeInvalidArgument},
		{"negative height", FormatJSON, `[{"width": 77, "height": -8}]`, errors.ErrCodeInvalidArgument},
		{"zero width", FormatTOML, "[[tag]]\nwidth = 0\nheight = 3", errors.ErrCodeInvalidArgument},
		{"missing height", FormatText, "12", errors.ErrCodeInvalidInput},
		{"not a number", FormatText, "twelve 3", errors.ErrCodeInvalidInput},
		{"bad json", FormatJSON, `[{"width": }]`, errors.ErrCodeInvalidInput},
		{"bad toml", FormatTOML, "[[tag]\n", errors.ErrCodeInvalidInput},
		{"control label", FormatJSON, `[{"label": "a\u0007", "width": 1, "height": 1}]`, errors.ErrCodeInvalidInput},
		{"unknown format", "yaml", "", errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]string{
		"tags.json":  FormatJSON,
		"TAGS.JSON":  FormatJSON,
		"tags.toml":  FormatTOML,
		"tags.txt":   FormatText,
		"tags":       FormatText,
		"dir.json/x": FormatText,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.txt")
	if err := os.WriteFile(path, []byte("3 4 hello world\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(got) != 1 || got[0].Label != "hello world" || got[0].Size().Area() != 12 {
		t.Errorf("ReadFile() = %+v", got)
	}

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteThenParse(t *testing.T) {
	list := List{{Label: "alpha beta", Width: 30, Height: 9}, {Width: 5, Height: 5}}

	for _, format := range []string{FormatJSON, FormatTOML, FormatText} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, list, format); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			got, err := Parse(buf.Bytes(), format)
			if err != nil {
				t.Fatalf("Parse() error: %v\n%s", err, buf.String())
			}
			if len(got) != 2 || got[0] != list[0] || got[1] != list[1] {
				t.Errorf("got %+v, want %+v", got, list)
			}
		})
	}
}

func TestListAccessors(t *testing.T) {
	list := List{{Label: "a", Width: 1, Height: 2}, {Label: "b", Width: 3, Height: 4}}
	sizes := list.Sizes()
	labels := list.Labels()
	if sizes[1].Width != 3 || sizes[1].Height != 4 {
		t.Errorf("Sizes() = %v", sizes)
	}
	if labels[0] != "a" || labels[1] != "b" {
		t.Errorf("Labels() = %v", labels)
	}
}
