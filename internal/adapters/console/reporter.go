package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ankideku/deku-migrate/internal/logging"
	"github.com/ankideku/deku-migrate/internal/ports"
	"github.com/ankideku/deku-migrate/internal/theme"
)

// Reporter writes styled progress lines to an output stream
type Reporter struct {
	out      io.Writer
	styles   theme.Styles
	warnings int
}

// Verify interface compliance at compile time
var _ ports.Reporter = (*Reporter)(nil)

// NewReporter creates a Reporter writing to out.
// Colors are only emitted when out is a terminal.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:    out,
		styles: theme.NewStyles(lipgloss.NewRenderer(out)),
	}
}

// Banner prints a framed title line
func (r *Reporter) Banner(title string) {
	fmt.Fprintln(r.out, r.styles.Banner.Render(title))
}

// Stage prints the header of pipeline stage index out of total
func (r *Reporter) Stage(index, total int, title string) {
	fmt.Fprintf(r.out, "\n%s\n", r.styles.Stage.Render(fmt.Sprintf("[%d/%d] %s", index, total, title)))
}

// Info prints an indented progress line
func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintf(r.out, "  %s\n", r.styles.Info.Render(fmt.Sprintf(format, args...)))
}

// Warn prints and logs a skipped record or other non-fatal problem
func (r *Reporter) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.warnings++
	logging.Logger.Warn(msg)
	fmt.Fprintf(r.out, "  %s\n", r.styles.Warning.Render("Warning: "+msg))
}

// Done prints the closing line of a stage
func (r *Reporter) Done(format string, args ...any) {
	fmt.Fprintf(r.out, "  %s\n", r.styles.Done.Render("Done: "+fmt.Sprintf(format, args...)))
}

// Error prints a fatal error line
func (r *Reporter) Error(format string, args ...any) {
	fmt.Fprintf(r.out, "\n%s\n", r.styles.Error.Render("Error: "+fmt.Sprintf(format, args...)))
}

// Muted prints a de-emphasized line
func (r *Reporter) Muted(format string, args ...any) {
	fmt.Fprintln(r.out, r.styles.Muted.Render(fmt.Sprintf(format, args...)))
}

// Table prints label/value rows aligned on the label column
func (r *Reporter) Table(rows [][2]string) {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString("  ")
		b.WriteString(r.styles.Label.Render(row[0] + ":"))
		b.WriteString(row[1])
		b.WriteString("\n")
	}
	fmt.Fprint(r.out, b.String())
}

// Warnings returns the number of warnings reported so far
func (r *Reporter) Warnings() int {
	return r.warnings
}

// Out returns the stream the reporter writes to
func (r *Reporter) Out() io.Writer {
	return r.out
}
