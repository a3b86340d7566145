package core

import "testing"

// handlerStats records delivered-packet hop counts in addition to the
// plain conservation counts, so a test can check not just that a
// packet arrived but how it got there.
type handlerStats struct {
	delivered   int64
	deliveredHops []int
	queued, dequeued, dropped int64
}

func (s *handlerStats) OnGenerated() {}
func (s *handlerStats) OnDelivered(hops int, ct float64) {
	s.delivered++
	s.deliveredHops = append(s.deliveredHops, hops)
}
func (s *handlerStats) OnQueued()   { s.queued++ }
func (s *handlerStats) OnDequeued() { s.dequeued++ }
func (s *handlerStats) OnDropped()  { s.dropped++ }
func (s *handlerStats) OnChannelWork(dt float64) {}

// newTestEngine builds an Engine directly (bypassing NewEngine's
// per-node generation-event seeding) so a test can drive exactly the
// packets it constructs, with nothing else in flight.
func newTestEngine(cfg Config, stats StatsSink) *Engine {
	e := &Engine{
		cfg:   cfg,
		prng:  &fixedPRNG{u: 0.5},
		stats: stats,
		nodes: make([]*NodeState, cfg.NumNodes()),
		queue: NewEventQueue(),
	}
	for nn := range e.nodes {
		e.nodes[nn] = NewNodeState(cfg.NumPorts())
	}
	return e
}

// runChannelFree pops the single earliest event from the queue,
// advances simulated time to it, and dispatches it as a channel-free
// completion -- the manual equivalent of one Run() iteration, used to
// step a hand-built scenario one hop at a time.
func (e *Engine) runChannelFree(t *testing.T) {
	t.Helper()
	if e.queue.IsEmpty() {
		t.Fatal("expected a pending channel-free event, queue is empty")
	}
	ev := e.queue.PopMin()
	e.simTime = ev.At
	e.dispatchChannelFree(ev)
}

// On a 2-dimensional, 4-ary torus with rule d, a packet traveling from
// (0,0) to the diagonally opposite corner (3,3) has, in each
// dimension, a direct distance of 3 and a wrapped distance of 1; since
// 3 is not less than 1, AddressDifference takes the wrap sense, so
// both hops travel negative-direction ports, and the packet
// is delivered after exactly two hops.
func TestAdmitDeliversDiagonalPacketInTwoHopsViaWrap(t *testing.T) {
	cfg := Config{D: 2, K: 4, Rule: 'd', CHT: 5, BL: 10, Lambda: 1, MaxST: 1000}
	stats := &handlerStats{}
	e := newTestEngine(cfg, stats)

	p := &Packet{
		Source:   Address{0, 0},
		Dest:     Address{3, 3},
		SendTime: 0,
	}
	e.admit(p, Address{0, 0})

	if e.PendingEvents() != 1 {
		t.Fatalf("pending events after first admit = %d, want 1", e.PendingEvents())
	}
	ns0 := e.NodeState(Address{0, 0})
	firstPort := PortNumber(0, -1)
	if !ns0.PortBusy(firstPort) {
		t.Fatalf("expected node (0,0) port %d (dim 0, negative) occupied", firstPort)
	}

	e.runChannelFree(t)

	if stats.delivered != 0 {
		t.Fatalf("packet delivered after only one hop, want still in flight")
	}
	ns1 := e.NodeState(Address{3, 0})
	secondPort := PortNumber(1, -1)
	if !ns1.PortBusy(secondPort) {
		t.Fatalf("expected node (3,0) port %d (dim 1, negative) occupied", secondPort)
	}

	e.runChannelFree(t)

	if stats.delivered != 1 {
		t.Fatalf("delivered count = %d, want 1", stats.delivered)
	}
	if len(stats.deliveredHops) != 1 || stats.deliveredHops[0] != 2 {
		t.Fatalf("delivered hop counts = %v, want [2]", stats.deliveredHops)
	}
}

// On a 1-dimensional, 4-ary torus with rule a, two packets at the same
// node that both prefer the same outbound port: the first occupies the
// channel, the second is refused and enters the blocked queue. When
// the channel frees, the first packet is forwarded to its destination
// (an immediate neighbor, so it is delivered in one hop) and the
// second is pulled off the blocked queue into the now-free port,
// returning the queue depth to zero without waiting for its own
// channel-hold time to elapse.
func TestAdmitQueuesSecondPacketThenDequeuesOnChannelFree(t *testing.T) {
	cfg := Config{D: 1, K: 4, Rule: 'a', CHT: 5, BL: 10, Lambda: 1, MaxST: 1000}
	stats := &handlerStats{}
	e := newTestEngine(cfg, stats)

	mkPacket := func() *Packet {
		return &Packet{Source: Address{0}, Dest: Address{1}, SendTime: 0}
	}

	e.admit(mkPacket(), Address{0})
	e.admit(mkPacket(), Address{0})

	ns := e.NodeState(Address{0})
	port := PortNumber(0, 1)
	if !ns.PortBusy(port) {
		t.Fatalf("expected port %d occupied by first packet", port)
	}
	if got := ns.QueueLen(); got != 1 {
		t.Fatalf("blocked-queue depth after second admit = %d, want 1", got)
	}
	if stats.queued != 1 {
		t.Fatalf("OnQueued count = %d, want 1", stats.queued)
	}

	e.runChannelFree(t)

	if got := ns.QueueLen(); got != 0 {
		t.Fatalf("blocked-queue depth after channel-free = %d, want 0", got)
	}
	if stats.dequeued != 1 {
		t.Fatalf("OnDequeued count = %d, want 1", stats.dequeued)
	}
	if !ns.PortBusy(port) {
		t.Fatal("expected the dequeued packet to re-occupy the port immediately")
	}
	if stats.delivered != 1 {
		t.Fatalf("delivered count after first channel-free = %d, want 1", stats.delivered)
	}

	e.runChannelFree(t)

	if stats.delivered != 2 {
		t.Fatalf("final delivered count = %d, want 2", stats.delivered)
	}
	if stats.dropped != 0 {
		t.Fatalf("dropped count = %d, want 0", stats.dropped)
	}
}
