package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tagcloud/pkg/layouter"
)

// Terminal colors (ANSI 256).
var (
	colorAccent = lipgloss.Color("36")  // teal: titles, addresses, spinner
	colorOK     = lipgloss.Color("35")  // placed, written, cached
	colorWarn   = lipgloss.Color("220") // skipped or degraded work
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings such as the preview title.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight renders values the user acts on, like a listen address.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
)

var (
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarn)
	styleCommand = lipgloss.NewStyle().Foreground(colorAccent).Italic(true)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// status line markers
var (
	markSuccess = lipgloss.NewStyle().Foreground(colorOK).Render("✓")
	markError   = lipgloss.NewStyle().Foreground(colorRed).Render("✗")
	markWarning = styleWarning.Render("!")
	markInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
)

func printStatus(mark, format string, args ...any) {
	fmt.Println(mark + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printStatus(markSuccess, format, args...) }

func printError(format string, args ...any) { printStatus(markError, format, args...) }

func printInfo(format string, args ...any) { printStatus(markInfo, format, args...) }

func printWarning(format string, args ...any) {
	printStatus(markWarning, "%s", styleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written artifact path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

// printStats prints a one-line summary of a cloud: tag count, bounding box,
// radius, density and whether the layout came from the cache.
func printStats(stats layouter.Stats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d tags", stats.Count),
		fmt.Sprintf("%dx%d", stats.Bounds.Width, stats.Bounds.Height),
		fmt.Sprintf("r %.0f", stats.MaxRadius),
		fmt.Sprintf("density %.2f", stats.Density),
	}
	origin := StyleDim.Render("fresh")
	if cached {
		origin = lipgloss.NewStyle().Foreground(colorOK).Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Println("  " + StyleDim.Render(strings.Join(parts, " · ")) + sep + origin)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }
