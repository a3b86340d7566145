package core

// Packet is a unit of traffic traversing the torus. Source and
// destination are fixed at creation; Da (the residual address
// difference) is recomputed on entry to every node before a routing
// decision is made.
type Packet struct {
	Source   Address
	Dest     Address
	SendTime int64
	Hops     int
	Da       Address
}

// AtDestination reports whether the packet's residual address
// difference is zero in every dimension, i.e. it has reached Dest.
func (p *Packet) AtDestination() bool {
	return IsAll(p.Da, 0)
}
