package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"mia/internal/config"
)

// printer writes command results, coloring them only for terminals unless
// configured otherwise.
type printer struct {
	out  io.Writer
	err  io.Writer
	dir  *color.Color
	note *color.Color
	warn *color.Color
}

func newPrinter(out, errOut io.Writer, mode string) *printer {
	p := &printer{
		out:  out,
		err:  errOut,
		dir:  color.New(color.FgBlue, color.Bold),
		note: color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
	}
	colorize := shouldColorize(out, mode)
	for _, c := range []*color.Color{p.dir, p.note, p.warn} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func shouldColorize(writer io.Writer, mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *printer) line(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *printer) linef(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) dirName(name string) string {
	return p.dir.Sprint(name)
}

func (p *printer) total(label string, n int) {
	fmt.Fprintf(p.out, "%s %d\n", p.note.Sprint(label+":"), n)
}

func (p *printer) warning(format string, args ...any) {
	fmt.Fprintf(p.err, "%s %s\n", p.warn.Sprint("warning:"), fmt.Sprintf(format, args...))
}
