package jsonlike

import (
	"fmt"
	"io"
	"strings"

	"github.com/karagenc/jsonlike/internal/sync"
	"github.com/xiegeo/coloredgoroutine"
)

type (
	Debugger interface {
		Log(main string, v ...any)
		WithContext(context string) Debugger
	}

	noopDebugger struct{}

	printDebugger struct {
		w       io.Writer
		context string
	}
)

func NewNoopDebugger() Debugger {
	return noopDebugger{}
}

func (d noopDebugger) Log(main string, _v ...any) {}

func (d noopDebugger) WithContext(context string) Debugger { return d }

// NewPrintDebugger writes to w, each goroutine in its own color.
func NewPrintDebugger(w io.Writer) Debugger {
	return &printDebugger{w: coloredgoroutine.Colors(w)}
}

// NewWriterDebugger writes plain lines to w.
func NewWriterDebugger(w io.Writer) Debugger {
	return &printDebugger{w: w}
}

var printMu sync.Mutex

// Log each field, adding colon if there's a subsequent field.
// The line is written at once so a colored writer sees it whole.
func (d *printDebugger) Log(main string, _v ...any) {
	var b strings.Builder
	if len(d.context) != 0 {
		b.WriteString(d.context)
		if len(main) != 0 || len(_v) != 0 {
			b.WriteString(": ")
		}
	}
	if len(main) != 0 {
		b.WriteString(main)
		if len(_v) != 0 {
			b.WriteString(": ")
		}
	}

	for i, v := range _v {
		if i != 0 {
			b.WriteString(": ")
		}
		fmt.Fprint(&b, v)
	}
	b.WriteByte('\n')

	printMu.Lock()
	defer printMu.Unlock()
	io.WriteString(d.w, b.String())
}

func (d printDebugger) WithContext(context string) Debugger {
	d.context = context
	return &d
}
