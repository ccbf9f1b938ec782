package session

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

var (
	colorPrompt  = color.New(color.FgYellow)
	colorError   = color.New(color.FgRed)
	colorSuccess = color.New(color.FgHiGreen)
	colorMenu    = color.New(color.FgCyan)
	colorName    = color.New(color.FgMagenta)
	colorText    = color.New(color.FgWhite)
	colorBanner  = color.New(color.FgHiMagenta, color.Bold)
)

// Printer writes user-facing text. Paced text is written one character at a
// time with a delay in between; the delay only affects display.
type Printer struct {
	out   io.Writer
	delay time.Duration
	sleep func(time.Duration)
}

func NewPrinter(out io.Writer, delay time.Duration) *Printer {
	return &Printer{
		out:   out,
		delay: delay,
		sleep: time.Sleep,
	}
}

// Paced prints text character by character, followed by a newline.
func (p *Printer) Paced(c *color.Color, text string) {
	c.SetWriter(p.out)
	for _, r := range text {
		fmt.Fprint(p.out, string(r))
		if p.delay > 0 {
			p.sleep(p.delay)
		}
	}
	c.UnsetWriter(p.out)
	fmt.Fprintln(p.out)
}

// Line prints text at once, followed by a newline.
func (p *Printer) Line(c *color.Color, text string) {
	c.Fprintln(p.out, text)
}

// Prompt prints text at once, without a newline, and waits for nothing.
func (p *Printer) Prompt(text string) {
	colorPrompt.Fprint(p.out, text)
}

func (p *Printer) Banner() {
	for _, line := range banner {
		p.Line(colorBanner, line)
	}
}

var banner = []string{
	"",
	" _   _           _                        _     _        _   _ _____ ____  ",
	"| | | |_ __  ___| |_ ___  _ __  _ __   __ _| |__ | | ___  | | | |_   _|___ \\ ",
	"| | | | '_ \\/ __| __/ _ \\| '_ \\| '_ \\ / _` | '_ \\| |/ _ \\ | | | | | |   __) |",
	"| |_| | | | \\__ \\ || (_) | |_) | |_) | (_| | |_) | |  __/ | |_| | | |  / __/ ",
	" \\___/|_| |_|___/\\__\\___/| .__/| .__/ \\__,_|_.__/|_|\\___|  \\___/  |_| |_____|",
	"                         |_|   |_|                                           ",
	"",
}
