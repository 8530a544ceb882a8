// Package progress renders CLI feedback for msgfs transfers: colored,
// level-gated logging plus a byte-counting progress bar per upload or
// download, in the style of a terminal logger that knows how to get out
// of its own way when stdout isn't a TTY.
package progress

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v5"
	"github.com/vbauerster/mpb/v5/decor"
)

// Logger is a leveled logger. CLI emits Debugf output only when Verbose
// is set; the other levels are always logged.
type Logger interface {
	Debugf(format string, x ...interface{})
	Errorf(format string, x ...interface{})
	Infof(format string, x ...interface{})
	Warnf(format string, x ...interface{})
}

// Transfer tracks the cumulative byte count of one upload or download.
type Transfer interface {
	// SetTotal updates the bar's denominator once the total is known
	// (e.g. once the source file's size has been stat'd).
	SetTotal(total int64)
	// Set reports the cumulative number of bytes processed so far.
	Set(bytes int64)
	Finish(success bool)
}

// Reporter creates a Transfer bar for a labeled operation.
type Reporter interface {
	NewTransfer(label string) Transfer
}

// View is what cmd/msgfs uses for feedback: somewhere to log and somewhere
// to report transfer progress. The core operations never see it; they take
// plain progress callbacks such as a Transfer's Set method.
type View interface {
	Logger
	Reporter
}

// CLI is a View backed by logrus and an mpb progress container. The zero
// value has colors and bars enabled, and bars render to stdout. Log lines
// go to logrus's current output (stderr by default); while bars are
// active they are buffered, and when the last bar finishes they are
// flushed to stdout, which stays logrus's output from then on. Set
// DisableColors or DisableTTY to turn colors or bars off (e.g. when
// stdout is redirected to a file).
type CLI struct {
	DisableColors bool
	DisableTTY    bool
	Verbose       bool

	mu        sync.Mutex
	container *mpb.Progress
	buffer    *bytes.Buffer
	active    int
}

func (c *CLI) Debugf(format string, x ...interface{}) {
	if c.Verbose {
		logrus.Debugf(format, x...)
	}
}

func (c *CLI) Errorf(format string, x ...interface{}) { logrus.Errorf(format, x...) }
func (c *CLI) Infof(format string, x ...interface{})  { logrus.Infof(format, x...) }
func (c *CLI) Warnf(format string, x ...interface{})  { logrus.Warnf(format, x...) }

// NewTransfer returns a Transfer bar labeled label. If DisableTTY is set
// the returned Transfer does nothing: it keeps no state and renders nothing.
func (c *CLI) NewTransfer(label string) Transfer {
	if c.DisableTTY {
		return &nilTransfer{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.container == nil {
		c.buffer = new(bytes.Buffer)
		logrus.SetOutput(c.buffer)
		c.container = mpb.New(mpb.WithWidth(80))
	}
	c.active++

	bar := c.container.AddBar(0,
		mpb.PrependDecorators(
			decor.Name(label, decor.WC{W: len(label) + 1, C: decor.DidentRight}),
		),
		mpb.AppendDecorators(
			decor.Counters(decor.UnitKiB, "% .1f / % .1f"),
		),
	)

	return &transfer{cli: c, bar: bar}
}

type transfer struct {
	cli    *CLI
	bar    *mpb.Bar
	cursor int64
}

func (t *transfer) SetTotal(total int64) { t.bar.SetTotal(total, false) }

func (t *transfer) Set(bytes int64) {
	if bytes < t.cursor {
		return
	}
	t.bar.IncrInt64(bytes - t.cursor)
	t.cursor = bytes
}

func (t *transfer) Finish(success bool) {
	t.bar.SetTotal(t.bar.Current(), success)

	t.cli.mu.Lock()
	defer t.cli.mu.Unlock()
	t.cli.active--
	if t.cli.active == 0 {
		t.cli.container.Wait()
		t.cli.container = nil
		logrus.SetOutput(os.Stdout)
		_, _ = t.cli.buffer.WriteTo(os.Stdout)
		t.cli.buffer = nil
	}
}

type nilTransfer struct{}

func (*nilTransfer) SetTotal(int64)  {}
func (*nilTransfer) Set(int64)       {}
func (*nilTransfer) Finish(bool)     {}

// Format implements logrus.Formatter, coloring by level unless DisableColors is set.
func (c *CLI) Format(entry *logrus.Entry) ([]byte, error) {
	msg := entry.Message
	if !c.DisableColors {
		switch entry.Level {
		case logrus.DebugLevel:
			msg = color.New(color.Faint).Sprint(msg)
		case logrus.WarnLevel:
			msg = color.New(color.FgYellow).Sprint(msg)
		case logrus.ErrorLevel:
			msg = color.New(color.FgRed).Sprint(msg)
		}
	}
	return []byte(fmt.Sprintf("%s\n", msg)), nil
}
