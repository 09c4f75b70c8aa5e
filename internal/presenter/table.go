package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/Egor213/LogTrail/internal/domain"
	"github.com/Egor213/LogTrail/internal/parser"
	"github.com/charmbracelet/lipgloss"
)

const maxMessageWidth = 72

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	styleTime   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleComp   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styleInfo   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleFatal  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("196")).
			Bold(true)
)

// TableRenderer prints one row per entry with the breadcrumb colored by level.
type TableRenderer struct{}

func NewTableRenderer() *TableRenderer {
	return &TableRenderer{}
}

func (r *TableRenderer) Render(w io.Writer, entries []domain.LogEntry) error {
	re := lipgloss.NewRenderer(w)

	tsWidth, compWidth := len("TIMESTAMP"), len("COMPONENT")
	for _, e := range entries {
		tsWidth = max(tsWidth, lipgloss.Width(parser.FormatTimestamp(e)))
		compWidth = max(compWidth, lipgloss.Width(e.Component))
	}

	header := strings.Join([]string{
		pad("TIMESTAMP", tsWidth),
		pad("COMPONENT", compWidth),
		pad("MESSAGE", maxMessageWidth),
		"BREADCRUMB",
	}, "  ")
	if _, err := fmt.Fprintln(w, styleHeader.Renderer(re).Render(header)); err != nil {
		return err
	}

	for _, e := range entries {
		row := strings.Join([]string{
			styleTime.Renderer(re).Render(pad(parser.FormatTimestamp(e), tsWidth)),
			styleComp.Renderer(re).Render(pad(e.Component, compWidth)),
			pad(truncate(oneLine(e.Message), maxMessageWidth), maxMessageWidth),
			levelStyle(e.Level).Renderer(re).Render(e.Breadcrumb),
		}, "  ")
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}

func levelStyle(level string) lipgloss.Style {
	switch strings.ToUpper(level) {
	case "WARN", "WARNING":
		return styleWarn
	case "ERROR":
		return styleError
	case "FATAL", "CRITICAL":
		return styleFatal
	default:
		return styleInfo
	}
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
