package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layouter"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render/palette"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// Preview styles
var (
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	previewCenterStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

// Terminal cells are roughly twice as tall as wide.
const cellAspect = 2.0

// previewCommand creates the preview command, an interactive terminal view
// that places one tag per key press.
func (c *CLI) previewCommand() *cobra.Command {
	var inputFormat string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [tags]",
		Short: "Place tags interactively in the terminal",
		Long: `Place tags interactively in the terminal.

Each key press places the next tag and redraws the cloud as a character
grid. Keys: space/enter place next, a place all, r restart, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Config.Apply(&opts, cmd.Flags().Changed)
			return c.runPreview(cmd.Context(), args[0], inputFormat, opts)
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "input-format", "i", "", "input format: text, json, toml (default: from extension)")
	cmd.Flags().StringVarP(&opts.Palette, "palette", "p", palette.Default, "fill palette name or #rrggbb-#rrggbb gradient")
	layoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input, inputFormat string, opts pipeline.Options) error {
	data, format, err := readInput(input, inputFormat)
	if err != nil {
		return err
	}
	list, err := tags.Parse(data, format)
	if err != nil {
		return err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	pal, err := palette.New(opts.Palette)
	if err != nil {
		return err
	}

	m := newPreviewModel(list, opts, pal)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if pm, ok := final.(previewModel); ok && pm.l.Len() > 0 {
		printSuccess("Placed %d of %d tags", pm.l.Len(), len(list))
		printStats(pm.l.Stats(), false)
	}
	return nil
}

// =============================================================================
// previewModel - Interactive placement
// =============================================================================

type previewModel struct {
	list    tags.List
	opts    pipeline.Options
	palette palette.Palette

	l    *layouter.Layouter
	last *layouter.Placement
	err  error

	width, height int
}

func newPreviewModel(list tags.List, opts pipeline.Options, pal palette.Palette) previewModel {
	return previewModel{
		list:    list,
		opts:    opts,
		palette: pal,
		l:       layouter.New(opts.Center, opts.LayoutOptions()...),
		width:   80,
		height:  24,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter", "n":
			m = m.placeNext()
		case "a":
			for m.err == nil && m.l.Len() < len(m.list) {
				m = m.placeNext()
			}
		case "r":
			m.l = layouter.New(m.opts.Center, m.opts.LayoutOptions()...)
			m.last, m.err = nil, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

// placeNext places the next tag. The layouter is left unchanged on error.
func (m previewModel) placeNext() previewModel {
	i := m.l.Len()
	if i >= len(m.list) {
		return m
	}
	p, err := m.l.PlaceNextTraced(m.list[i].Size())
	if err != nil {
		m.err = fmt.Errorf("tag %d: %w", i+1, err)
		return m
	}
	m.last, m.err = &p, nil
	return m
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("tagcloud preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("space place  a all  r restart  q quit"))
	b.WriteString("\n\n")

	rows := max(m.height-5, 4)
	cols := max(m.width, 10)
	b.WriteString(m.grid(cols, rows))
	b.WriteString("\n")
	b.WriteString(m.status())
	return b.String()
}

func (m previewModel) status() string {
	placed := m.l.Len()
	parts := []string{fmt.Sprintf("placed %d/%d", placed, len(m.list))}
	if m.last != nil {
		parts = append(parts,
			fmt.Sprintf("last %s", m.last.Rect),
			fmt.Sprintf("%d candidates", m.last.Candidates),
			fmt.Sprintf("%d moves", m.last.Moves))
	}
	if placed > 0 {
		parts = append(parts, fmt.Sprintf("density %.2f", m.l.Stats().Density))
	}
	line := previewStatusStyle.Render(strings.Join(parts, " · "))
	if m.err != nil {
		line += "\n" + previewErrorStyle.Render(m.err.Error())
	}
	return line
}

// grid draws the placed rectangles into a cols x rows character grid,
// scaled so the whole cloud and its center fit.
func (m previewModel) grid(cols, rows int) string {
	rects := m.l.Rectangles()
	center := m.l.Center()
	frame := geom.Bounds(append(rects, geom.NewRect(center.X, center.Y, 1, 1)))

	scale := math.Max(float64(frame.Width)/float64(cols), float64(frame.Height)/(float64(rows)*cellAspect))
	scale = math.Max(scale, 1/cellAspect)

	cells := make([][]int, rows)
	for y := range cells {
		cells[y] = make([]int, cols)
		for x := range cells[y] {
			cells[y][x] = -1
		}
	}
	labelAt := make([]geom.Point, len(rects)) // first cell of each label
	for i, r := range rects {
		x0, x1 := cellSpan(r.Left(), r.Right(), frame.X, scale, cols)
		y0, y1 := cellSpan(r.Top(), r.Bottom(), frame.Y, scale*cellAspect, rows)
		labelAt[i] = geom.Pt(x0, (y0+y1)/2)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				cells[y][x] = i
			}
		}
	}
	cx, _ := cellSpan(center.X, center.X+1, frame.X, scale, cols)
	cy, _ := cellSpan(center.Y, center.Y+1, frame.Y, scale*cellAspect, rows)

	var b strings.Builder
	for y, row := range cells {
		for x, idx := range row {
			switch {
			case x == cx && y == cy:
				b.WriteString(previewCenterStyle.Render("+"))
			case idx < 0:
				b.WriteByte(' ')
			default:
				style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Hex(idx)))
				b.WriteString(style.Render(m.cellRune(idx, geom.Pt(x, y).Sub(labelAt[idx]))))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// cellRune returns the label letter at offset off from the label start,
// or a block outside the label.
func (m previewModel) cellRune(idx int, off geom.Point) string {
	label := []rune(m.list[idx].Label)
	if off.Y == 0 && off.X >= 0 && off.X < len(label) {
		return string(label[off.X])
	}
	return "█"
}

// cellSpan maps the unit interval [lo, hi) to an inclusive cell range,
// always covering at least one cell.
func cellSpan(lo, hi, origin int, scale float64, n int) (int, int) {
	a := int(float64(lo-origin) / scale)
	b := int(math.Ceil(float64(hi-origin)/scale)) - 1
	a = min(max(a, 0), n-1)
	b = min(max(b, a), n-1)
	return a, b
}
