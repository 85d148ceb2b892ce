package tags

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
)

// Input formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatText = "text"
)

// Tag is one entry of a tag list.
type Tag struct {
	Label  string `json:"label,omitempty" toml:"label"`
	Width  int    `json:"width" toml:"width"`
	Height int    `json:"height" toml:"height"`
}

// Size returns the rectangle size of the tag.
func (t Tag) Size() geom.Size { return geom.Sz(t.Width, t.Height) }

// Validate checks the tag size and label.
func (t Tag) Validate() error {
	if err := errors.ValidateSize(t.Width, t.Height); err != nil {
		return err
	}
	return errors.ValidateLabel(t.Label)
}

// List is an ordered tag list. Order is placement order.
type List []Tag

// Sizes returns the tag sizes in order.
func (l List) Sizes() []geom.Size {
	sizes := make([]geom.Size, len(l))
	for i, t := range l {
		sizes[i] = t.Size()
	}
	return sizes
}

// Labels returns the tag labels in order.
func (l List) Labels() []string {
	labels := make([]string, len(l))
	for i, t := range l {
		labels[i] = t.Label
	}
	return labels
}

// Validate checks every tag and reports the first failure with its index.
func (l List) Validate() error {
	for i, t := range l {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tag %d: %w", i+1, err)
		}
	}
	return nil
}

// FormatFor returns the input format implied by a file name.
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

// ReadFile parses the tag list at path, choosing the format by extension.
func ReadFile(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tag file not found: %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, FormatFor(path))
}

// Read parses a tag list in the given format from r.
func Read(r io.Reader, format string) (List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}
	return Parse(data, format)
}

// Parse parses data in the given format and validates the result.
func Parse(data []byte, format string) (List, error) {
	var (
		list List
		err  error
	)
	switch format {
	case FormatJSON:
		list, err = parseJSON(data)
	case FormatTOML:
		list, err = parseTOML(data)
	case FormatText, "":
		list, err = parseText(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"invalid tag format: %q (must be one of: json, toml, text)", format)
	}
	if err != nil {
		return nil, err
	}
	if err := list.Validate(); err != nil {
		return nil, err
	}
	return list, nil
}

func parseJSON(data []byte) (List, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var doc struct {
			Tags List `json:"tags"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse json tags")
		}
		return doc.Tags, nil
	}
	var list List
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse json tags")
	}
	return list, nil
}

func parseTOML(data []byte) (List, error) {
	var doc struct {
		Tag List `toml:"tag"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse toml tags")
	}
	return doc.Tag, nil
}

func parseText(data []byte) (List, error) {
	var list List
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"line %d: want \"width height [label]\", got %q", n, line)
		}
		w, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d: width", n)
		}
		h, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d: height", n)
		}
		list = append(list, Tag{
			Label:  strings.Join(fields[2:], " "),
			Width:  w,
			Height: h,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan tags: %w", err)
	}
	return list, nil
}

// Write encodes l in the given format.
func Write(w io.Writer, l List, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(struct {
			Tag List `toml:"tag"`
		}{l})
	case FormatText, "":
		for _, t := range l {
			line := fmt.Sprintf("%d %d", t.Width, t.Height)
			if t.Label != "" {
				line += " " + t.Label
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid tag format: %q", format)
}
