package core

// admit is the packet handler entry point: it absorbs, drops, or
// dispatches a packet newly arrived at node i. It is a method on
// Engine because it needs to schedule channel-free events and update
// statistics, both engine-owned.
func (e *Engine) admit(p *Packet, i Address) {
	nn := NodeNumber(i, e.cfg.K)
	e.logf(DebugTrace, "t=%d node=%d packet entry dest=%v hops=%d", e.simTime, nn, p.Dest, p.Hops)

	p.Da = AddressDifference(p.Dest, i, e.cfg.K)
	if p.AtDestination() {
		// dest != source at creation (see randomDestination), so Hops >= 1 here.
		ct := float64(e.simTime-p.SendTime) / float64(p.Hops)
		e.logf(DebugSummary, "t=%d node=%d delivered hops=%d channel-time=%.2f", e.simTime, nn, p.Hops, ct)
		e.stats.OnDelivered(p.Hops, ct)
		return
	}

	ns := e.nodes[nn]
	rule := Rules[e.cfg.Rule]
	np, ok := rule(p, ns, e.prng)
	p.Hops++

	if !ok {
		if ns.QueueLen() < e.cfg.BL {
			e.logf(DebugTrace, "t=%d node=%d all productive ports busy, queued depth=%d", e.simTime, nn, ns.QueueLen()+1)
			ns.Enqueue(p)
			e.stats.OnQueued()
		} else {
			e.logf(DebugSummary, "t=%d node=%d dropped, blocked queue full (bl=%d)", e.simTime, nn, e.cfg.BL)
			e.stats.OnDropped()
		}
		return
	}

	e.logf(DebugTrace, "t=%d node=%d switched to port=%d", e.simTime, nn, np)
	ns.Occupy(np, p)
	e.queue.Insert(&Event{
		At:   e.simTime + int64(e.cfg.CHT),
		I:    i.Clone(),
		Port: np,
	})
}
