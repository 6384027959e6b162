package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorYellow = lipgloss.Color("#eab308")
	colorRed    = lipgloss.Color("#ef4444")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	createdStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	existingStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	failedStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printer writes command results styled for a terminal or as JSON.
type printer struct {
	w    io.Writer
	json bool
}

func newPrinter(w io.Writer, jsonOutput bool) *printer {
	return &printer{w: w, json: jsonOutput || !isTerminal(w)}
}

// emit writes v as indented JSON, or text when styled output is in use.
func (p *printer) emit(v any, text func() string) error {
	if !p.json {
		_, err := io.WriteString(p.w, text())
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(b))
	return err
}

func renderExists(r *existsResult) string {
	if r.Exists {
		return fmt.Sprintf("%s sandbox with tag %s exists\n", existingStyle.Render("●"), r.Tag)
	}
	return fmt.Sprintf("%s no sandbox with tag %s\n", dimStyle.Render("○"), r.Tag)
}

func renderCreate(r *createResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s created sandbox %s\n", createdStyle.Render("✔"), r.ID)
	if len(r.Tags) > 0 {
		b.WriteString(dimStyle.Render("  tags: " + strings.Join(r.Tags, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

func renderEnsure(r *ensureReport) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  askrepo ensure"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 50)))
	b.WriteString("\n")

	for _, item := range r.Results {
		switch {
		case item.Error != "":
			fmt.Fprintf(&b, "  %s %-24s %s\n", failedStyle.Render("✘"), item.Tag, failedStyle.Render(item.Error))
		case item.Created:
			fmt.Fprintf(&b, "  %s %-24s %s\n", createdStyle.Render("✔"), item.Tag, item.SandboxID)
		default:
			fmt.Fprintf(&b, "  %s %-24s %s\n", existingStyle.Render("●"), item.Tag,
				item.SandboxID+dimStyle.Render(" (existing)"))
		}
	}

	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 50)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  created %d, existing %d, failed %d\n\n", r.Created, r.Existing, r.Failed)
	return b.String()
}
