package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// defaultWidth is used when the output is not a terminal.
const defaultWidth = 80

// TerminalWidth returns the column width of the terminal behind f, or
// defaultWidth when f is not a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// Printer writes styled output. It is the render seam carried on the
// application context.
type Printer struct {
	out    io.Writer
	styles Styles
}

// NewPrinter creates a printer writing to w with the default styles.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: w, styles: DefaultStyles()}
}

// Println writes a line of plain output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes formatted plain output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// PrintError writes an error with the error style. Multi-line structured
// errors keep their layout; the first line gets the error color, suggestion
// lines the suggestion color.
func (p *Printer) PrintError(err error) {
	lines := strings.Split(strings.TrimRight(err.Error(), "\n"), "\n")
	for i, line := range lines {
		if i == 0 {
			fmt.Fprintln(p.out, p.styles.Error.Render(line))
			continue
		}
		fmt.Fprintln(p.out, p.styles.Suggestion.Render(line))
	}
}

// Header writes a styled section header.
func (p *Printer) Header(text string) {
	fmt.Fprintln(p.out, p.styles.Header.Render(text))
}
