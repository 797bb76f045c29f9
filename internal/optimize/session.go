package optimize

import (
	"github.com/petermattis/goid"

	"spesh/internal/graph"
	"spesh/internal/vmerr"
)

// Session binds one Optimize run to the goroutine that started it.
// Nothing inside a graph.Graph is synchronized — a graph is owned
// exclusively by whichever thread is running Optimize on it — so the
// only protection this package offers against a graph being touched
// from two goroutines at once is this assertion; it catches the
// mistake loudly instead of letting it corrupt state silently.
type Session struct {
	g       *graph.Graph
	cfg     Config
	tracer  *Tracer
	ownerID int64
}

// NewSession binds a session to g for the calling goroutine.
func NewSession(g *graph.Graph, cfg Config, tracer *Tracer) *Session {
	return &Session{g: g, cfg: cfg, tracer: tracer, ownerID: goid.Get()}
}

// checkOwner panics with a Corruption error if called from a
// goroutine other than the one that created the session — this is
// always a programming error in the caller, never a recoverable
// "don't know yet" outcome.
func (s *Session) checkOwner() {
	if goid.Get() != s.ownerID {
		vmerr.PanicCorruption("optimize: graph accessed from goroutine %d, owned by %d", goid.Get(), s.ownerID)
	}
}
