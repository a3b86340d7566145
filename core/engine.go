package core

import (
	"log"
	"math"
)

// Engine is the discrete-event simulation core: the time-ordered event
// queue, the per-node port/queue state machines, and the dispatch loop
// that drives them. It depends on nothing beyond the three interfaces
// it consumes: a Config value, a PRNG, and a StatsSink, plus an
// optional logger for debug tracing.
type Engine struct {
	cfg   Config
	prng  PRNG
	stats StatsSink
	log   *log.Logger

	nodes   []*NodeState
	queue   *EventQueue
	simTime int64
}

// NewEngine allocates node state and seeds one packet-generation event
// per node, enumerating every torus address once. logger may be nil, in
// which case cfg.Dbg is ignored and no tracing is emitted.
func NewEngine(cfg Config, prng PRNG, stats StatsSink, logger *log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:   cfg,
		prng:  prng,
		stats: stats,
		log:   logger,
		nodes: make([]*NodeState, cfg.NumNodes()),
		queue: NewEventQueue(),
	}
	for nn := range e.nodes {
		e.nodes[nn] = NewNodeState(cfg.NumPorts())
	}

	i := make(Address, cfg.D)
	for {
		e.queue.Insert(&Event{
			At:   e.exponentialInterval(),
			I:    i.Clone(),
			Port: GenPort,
		})
		if !NextIndex(i, cfg.K) {
			break
		}
	}
	return e, nil
}

// NodeState returns the live per-node state for address i, for callers
// (tests, renderers) that need to inspect queue depth or port
// occupancy without touching engine internals.
func (e *Engine) NodeState(i Address) *NodeState {
	return e.nodes[NodeNumber(i, e.cfg.K)]
}

// SimTime returns the current simulated time.
func (e *Engine) SimTime() int64 {
	return e.simTime
}

// PendingEvents returns the number of events still in the queue.
func (e *Engine) PendingEvents() int {
	return e.queue.Len()
}

// Run drives the main dispatch loop until simulated time exceeds
// cfg.MaxST: pop the earliest event, advance simulated time, dispatch
// it, then flush every other event tied at the same timestamp before
// the outer loop re-checks its termination bound.
func (e *Engine) Run() {
	for e.simTime <= e.cfg.MaxST {
		ev := e.queue.PopMin()
		e.simTime = ev.At
		e.dispatch(ev)
		for !e.queue.IsEmpty() && e.queue.PeekMin().At <= e.simTime {
			e.dispatch(e.queue.PopMin())
		}
	}
}

func (e *Engine) dispatch(ev *Event) {
	if ev.IsGeneration() {
		e.dispatchGeneration(ev)
	} else {
		e.dispatchChannelFree(ev)
	}
}

// dispatchGeneration creates a fresh packet at node i, reschedules the
// node's next generation event as a renewal process, and admits the new
// packet.
func (e *Engine) dispatchGeneration(ev *Event) {
	i := ev.I
	dest := e.randomDestination(i)
	p := &Packet{
		Source:   i.Clone(),
		Dest:     dest,
		SendTime: e.simTime,
		Hops:     0,
	}
	e.stats.OnGenerated()
	e.logf(DebugTrace, "t=%d node=%d generated packet for dest=%v", e.simTime, NodeNumber(i, e.cfg.K), dest)

	e.queue.Insert(&Event{
		At:   e.simTime + e.exponentialInterval(),
		I:    i.Clone(),
		Port: GenPort,
	})

	e.admit(p, i)
}

// dispatchChannelFree completes transmission of the packet occupying
// port np of node i, hands it to the neighbor's packet handler, and
// refills the just-freed port from the node's blocked queue if a
// waiting packet prefers it.
func (e *Engine) dispatchChannelFree(ev *Event) {
	i := ev.I
	np := ev.Port
	nn := NodeNumber(i, e.cfg.K)
	ns := e.nodes[nn]

	p := ns.Release(np)
	ns.RecordBusy(np, int64(e.cfg.CHT))
	e.stats.OnChannelWork(float64(e.cfg.CHT))
	e.logf(DebugTrace, "t=%d node=%d port=%d channel free, forwarding to neighbor", e.simTime, nn, np)

	ii := Neighbor(i, np, e.cfg.K)
	e.admit(p, ii)

	if next := ns.TakeFirstForPort(np); next != nil {
		e.stats.OnDequeued()
		ns.Occupy(np, next)
		e.queue.Insert(&Event{
			At:   e.simTime + int64(e.cfg.CHT),
			I:    i.Clone(),
			Port: np,
		})
	}
}

// randomDestination returns a uniformly chosen address different from
// source, by rejection sampling.
func (e *Engine) randomDestination(source Address) Address {
	dest := make(Address, len(source))
	for {
		for j := range dest {
			dest[j] = e.prng.RandBelow(e.cfg.K)
		}
		if !Equal(dest, source) {
			return dest
		}
	}
}

// exponentialInterval draws the next inter-arrival time from an
// exponential distribution with rate cfg.Lambda, coercing any
// nonpositive draw up to one tick to guarantee strict time progress.
func (e *Engine) exponentialInterval() int64 {
	u := e.prng.Uniform()
	dt := int64(math.Ceil(-math.Log(1-u) / e.cfg.Lambda))
	if dt <= 0 {
		dt = 1
	}
	return dt
}
