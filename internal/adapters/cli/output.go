package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/jsamuelsen/alaqidah-service/internal/content"
	"github.com/jsamuelsen/alaqidah-service/internal/domain"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type printer struct {
	w        io.Writer
	label    *color.Color
	number   *color.Color
	muted    *color.Color
	success  *color.Color
	category *color.Color
}

// newPrinter colors output only when w is a terminal and noColor is unset.
func newPrinter(w io.Writer, noColor bool) *printer {
	p := &printer{
		w:        w,
		label:    color.New(color.Bold),
		number:   color.New(color.FgGreen, color.Bold),
		muted:    color.New(color.Faint),
		success:  color.New(color.FgGreen),
		category: color.New(color.FgCyan),
	}

	if noColor || !isTerminal(w) {
		for _, c := range []*color.Color{p.label, p.number, p.muted, p.success, p.category} {
			c.DisableColor()
		}
	}

	return p
}

func (p *printer) quoteLine(d domain.QuoteDetail, pointWord string) {
	p.number.Fprintf(p.w, "%4d  ", d.No)
	p.label.Fprintln(p.w, d.PointLabel(pointWord))
}

func (p *printer) quote(d domain.QuoteDetail, pointWord string, withExplanation bool) {
	p.quoteLine(d, pointWord)
	if d.Category != "" {
		p.category.Fprintf(p.w, "      [%s]\n", d.Category)
	}
	fmt.Fprintf(p.w, "      %s\n", d.Text)

	if withExplanation && d.Explanation != "" {
		fmt.Fprintln(p.w)
		p.muted.Fprintf(p.w, "      %s\n", d.Explanation)
	}
}

func (p *printer) categories(counts []content.CategoryCount) {
	for _, c := range counts {
		p.category.Fprintf(p.w, "%-24s", c.Category)
		fmt.Fprintf(p.w, " %d\n", c.Count)
	}
}

func (p *printer) summary(format string, args ...any) {
	p.muted.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) done(format string, args ...any) {
	p.success.Fprintf(p.w, format+"\n", args...)
}

// newProgressBar returns a bar drawn on w, or nil when w is not a terminal.
func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	if !isTerminal(w) {
		return nil
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(15),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
