// Package output renders CLI results as terminal tables, JSON, CSV or
// markdown, and prints styled status messages.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeJSON     OutputMode = "json"
	ModeCSV      OutputMode = "csv"
	ModeMarkdown OutputMode = "markdown"
)

// Modes lists the accepted --output values.
var Modes = []string{"auto", "text", "table", "json", "csv", "markdown", "md"}

// Mode parses a mode name. Unknown names mean auto.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "table":
		return ModeText
	case "json":
		return ModeJSON
	case "csv":
		return ModeCSV
	case "markdown", "md":
		return ModeMarkdown
	default:
		return ModeAuto
	}
}

// Renderer writes results and messages to an output and an error stream.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	mode   OutputMode
	Styles *Styles
}

// NewRenderer creates a renderer. Terminal detection uses out when it is a
// file.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal flag.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	styles := PlainStyles()
	if isTTY {
		styles = DefaultStyles()
	}
	return &Renderer{out: out, errOut: errOut, isTTY: isTTY, mode: mode, Styles: styles}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// EffectiveMode resolves auto: text on a terminal, CSV otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeCSV
}

// Out returns the result stream.
func (r *Renderer) Out() io.Writer { return r.out }

// Println writes a line to the result stream.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Header writes a styled heading.
func (r *Renderer) Header(msg string) {
	_, _ = fmt.Fprintln(r.out, r.Styles.Header.Render(msg))
}

// Success writes a status line to the error stream.
func (r *Renderer) Success(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.Styles.Success.Render(msg))
}

// Warning writes a warning to the error stream.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.Styles.Warning.Render("Warning: "+msg))
}

// Error writes an error to the error stream.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.Styles.Error.Render("Error: "+msg))
}

// Muted writes de-emphasized text to the error stream.
func (r *Renderer) Muted(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.Styles.Muted.Render(msg))
}

// Table renders rows under cols in the effective mode.
func (r *Renderer) Table(cols []string, rows [][]string) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return renderJSON(r.out, cols, rows)
	case ModeCSV:
		return renderCSV(r.out, cols, rows)
	case ModeMarkdown:
		return renderMarkdown(r.out, cols, rows)
	default:
		return r.renderText(cols, rows)
	}
}

// List renders names as a single-column table titled header.
func (r *Renderer) List(header string, names []string) error {
	rows := make([][]string, len(names))
	for i, n := range names {
		rows[i] = []string{n}
	}
	return r.Table([]string{header}, rows)
}

func (r *Renderer) renderText(cols []string, rows [][]string) error {
	if len(cols) == 0 {
		return nil
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(r.out, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(toRow(cols))
	for _, row := range rows {
		t.AppendRow(toRow(row))
	}
	t.Render()

	noun := "rows"
	if len(rows) == 1 {
		noun = "row"
	}
	_, _ = fmt.Fprintf(r.out, "(%d %s)\n", len(rows), noun)
	return nil
}

func renderMarkdown(w io.Writer, cols []string, rows [][]string) error {
	if len(cols) == 0 {
		return nil
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(toRow(cols))
	for _, row := range rows {
		t.AppendRow(toRow(row))
	}
	t.RenderMarkdown()
	return nil
}

func renderCSV(w io.Writer, cols []string, rows [][]string) error {
	if len(cols) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

func renderJSON(w io.Writer, cols []string, rows [][]string) error {
	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]string, len(cols))
		for i, col := range cols {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func toRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
