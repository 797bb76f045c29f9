// Package vmerr defines the optimizer's error taxonomy.
//
// The specializing optimizer recognizes exactly three kinds of failure:
// a programmer/VM invariant violation (Fatal), internal corruption
// (raised via panic, see Corruption), and "don't know yet" — an
// analysis that came back indeterminate, which is not an error at all
// but the normal case for most instructions in most graphs and is
// handled by simply skipping the rewrite.
package vmerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Fatal represents a programmer or VM invariant violation: an unknown
// common-callsite id, an unhandled invoke opcode variant during
// lowering, and similar conditions that should never arise from a
// well-formed spesh graph. Fatal is never recovered from; callers
// are expected to let it propagate or panic with it.
type Fatal struct {
	cause error
}

// NewFatal builds a Fatal error, capturing a stack trace at the point
// of construction via github.com/pkg/errors so that whatever aborts
// the VM on receipt of this error has something to log.
func NewFatal(format string, args ...interface{}) *Fatal {
	return &Fatal{cause: errors.WithStack(fmt.Errorf(format, args...))}
}

func (f *Fatal) Error() string { return f.cause.Error() }
func (f *Fatal) Unwrap() error { return f.cause }

// Corruption represents an internal-consistency failure: a
// non-contiguous spesh-slot insertion, an unrecognized work-item kind,
// or any other condition that indicates the graph itself is broken
// rather than merely under-analyzed. Corruption is raised with
// PanicCorruption, never returned as a value, because there is no
// sensible local recovery.
type Corruption struct {
	cause error
}

func (c *Corruption) Error() string { return c.cause.Error() }
func (c *Corruption) Unwrap() error { return c.cause }

// PanicCorruption panics with a *Corruption wrapping a stack trace,
// aborting optimization of the current graph. In this module it is
// raised by optimize.Session when a graph is used from a goroutine
// other than the one that owns it.
func PanicCorruption(format string, args ...interface{}) {
	panic(&Corruption{cause: errors.WithStack(fmt.Errorf(format, args...))})
}

// ErrDontKnow names the "analysis was indeterminate" outcome (a
// type-check cache miss, missing facts, an unrecognized boolification
// mode). No rule in this module returns it: a rule that does not know
// leaves the instruction unchanged and returns nil, and the driver
// treats any non-nil error from a rule as a reason to stop and return
// it.
var ErrDontKnow = errors.New("vmerr: indeterminate analysis result")
