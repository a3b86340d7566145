package core

// DebugLevel controls how much packet-level tracing the engine emits
// through its injected logger. Higher levels are a strict superset of
// lower ones.
type DebugLevel int

const (
	DebugNone    DebugLevel = 0 // no tracing
	DebugSummary DebugLevel = 1 // delivery and drop outcomes
	DebugTrace   DebugLevel = 2 // packet entry and every switching decision
)

// logf emits a trace line if the engine's configured debug level is at
// least level and a logger was supplied; it is a silent no-op
// otherwise, so call sites never need to guard it themselves.
func (e *Engine) logf(level DebugLevel, format string, args ...any) {
	if e.log == nil || e.cfg.Dbg < level {
		return
	}
	e.log.Printf(format, args...)
}
