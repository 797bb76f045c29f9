package optimize

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/iancoleman/strcase"
	"github.com/segmentio/ksuid"
)

// Tracer emits a human-readable, colorized log for one graph, for
// debugging a specialization decision after the fact. The driver
// reports each block it enters; Applied is there for callers to log a
// rewrite and is not called by the driver. It is entirely optional: a
// nil *Tracer (or one silenced with Disable) costs nothing beyond the
// method call.
type Tracer struct {
	out       io.Writer
	sessionID ksuid.KSUID
	enabled   bool

	boldBlock  *color.Color
	dimDetail  *color.Color
	greenApply *color.Color
}

// NewTracer creates a Tracer writing to out. Each Tracer is tagged
// with a fresh session id so log lines from concurrently optimized
// graphs (different Sessions, never the same Graph) can be told apart
// when interleaved into one stream.
func NewTracer(out io.Writer) *Tracer {
	return &Tracer{
		out:        out,
		sessionID:  ksuid.New(),
		enabled:    true,
		boldBlock:  color.New(color.Bold, color.FgCyan),
		dimDetail:  color.New(color.Faint),
		greenApply: color.New(color.FgGreen),
	}
}

// Disable silences this tracer; used when a caller constructs one but
// decides at runtime logging isn't wanted for this run.
func (t *Tracer) Disable() {
	if t != nil {
		t.enabled = false
	}
}

// EnteringBlock logs that the driver is beginning to visit a block.
func (t *Tracer) EnteringBlock(label string) {
	if t == nil || !t.enabled {
		return
	}
	t.boldBlock.Fprintf(t.out, "[%s] block %s\n", t.sessionID, label)
}

// Applied logs that a named rewrite fired on an instruction, rendered
// in snake_case rather than the Go-cased rewrite identifier callers
// pass in.
func (t *Tracer) Applied(rewrite string, before, after fmt.Stringer) {
	if t == nil || !t.enabled {
		return
	}
	field := strcase.ToSnake(rewrite)
	t.greenApply.Fprintf(t.out, "  %s: %s -> %s\n", field, before.String(), after.String())
	t.dimDetail.Fprintf(t.out, "    (session %s)\n", t.sessionID)
}
