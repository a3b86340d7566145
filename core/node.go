package core

// NodeState holds a single node's blocked-packet queue and per-port
// channel occupancy. The blocked queue needs only append-to-tail and
// O(n) first-match removal, which a plain slice gives for free.
type NodeState struct {
	blocked   []*Packet // FIFO of packets refused a port, bounded by bl
	ports     []*Packet // length 2*d; nil slot == free channel
	busyTicks []int64   // length 2*d; cumulative ticks each port has spent occupied
}

// NewNodeState returns a node with an empty blocked queue and numPorts
// (2*d) initially-free ports. The queue itself has no capacity limit;
// the bl bound is enforced by the caller before Enqueue.
func NewNodeState(numPorts int) *NodeState {
	return &NodeState{
		blocked:   make([]*Packet, 0),
		ports:     make([]*Packet, numPorts),
		busyTicks: make([]int64, numPorts),
	}
}

// QueueLen returns the current blocked-queue depth.
func (n *NodeState) QueueLen() int {
	return len(n.blocked)
}

// PortBusy reports whether port np currently carries a packet.
func (n *NodeState) PortBusy(np int) bool {
	return n.ports[np] != nil
}

// RecordBusy adds dt ticks to port np's cumulative occupied time. Callers
// call this once per completed channel hold, on release.
func (n *NodeState) RecordBusy(np int, dt int64) {
	n.busyTicks[np] += dt
}

// BusyTicks returns port np's cumulative occupied time in ticks.
func (n *NodeState) BusyTicks(np int) int64 {
	return n.busyTicks[np]
}

// Enqueue appends a packet to the tail of the blocked queue. Callers
// must have already checked QueueLen() < bl.
func (n *NodeState) Enqueue(p *Packet) {
	n.blocked = append(n.blocked, p)
}

// Occupy places a packet in port slot np. The caller must have
// confirmed the port is free.
func (n *NodeState) Occupy(np int, p *Packet) {
	n.ports[np] = p
}

// Release empties port slot np and returns the packet that had been
// occupying it.
func (n *NodeState) Release(np int) *Packet {
	p := n.ports[np]
	n.ports[np] = nil
	return p
}

// TakeFirstForPort scans the blocked queue head-to-tail and removes the
// first packet whose residual address difference prefers np as its
// next hop: Da[dim(np)] != 0 and sign(Da[dim(np)]) == direction(np).
// This is the sole way a blocked packet leaves the queue.
func (n *NodeState) TakeFirstForPort(np int) *Packet {
	dim := PortDim(np)
	dir := PortDir(np)
	for i, p := range n.blocked {
		if p.Da[dim] != 0 && sign(p.Da[dim]) == dir {
			n.blocked = append(n.blocked[:i], n.blocked[i+1:]...)
			return p
		}
	}
	return nil
}
