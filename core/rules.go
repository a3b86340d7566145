package core

// RoutingRule is a local switching decision: given a packet with a
// freshly computed residual address difference and the node's current
// port occupancy, choose an outgoing port or refuse. The second return
// value is false for "none — enqueue or drop".
type RoutingRule func(p *Packet, ns *NodeState, prng PRNG) (port int, ok bool)

// Rules maps the six switching-rule letters to their implementations.
var Rules = map[byte]RoutingRule{
	'a': RuleA,
	'b': RuleB,
	'c': RuleC,
	'd': RuleD,
	'e': RuleE,
	'f': RuleF,
}

// productive returns the dimensions j where p.Da[j] != 0, in index
// order.
func productive(p *Packet) []int {
	d := make([]int, 0, len(p.Da))
	for j, v := range p.Da {
		if v != 0 {
			d = append(d, j)
		}
	}
	return d
}

func preferredPort(p *Packet, dim int) int {
	return PortNumber(dim, sign(p.Da[dim]))
}

// RuleA picks the first productive dimension by index order; refuses
// if its preferred port is busy.
func RuleA(p *Packet, ns *NodeState, prng PRNG) (int, bool) {
	d := productive(p)
	if len(d) == 0 {
		return 0, false
	}
	np := preferredPort(p, d[0])
	if ns.PortBusy(np) {
		return 0, false
	}
	return np, true
}

// RuleB chooses uniformly at random among the productive dimensions;
// refuses if the chosen preferred port is busy. Invoking it with no
// productive dimension is an invariant violation: the packet handler
// must short-circuit delivery before ever reaching a rule.
func RuleB(p *Packet, ns *NodeState, prng PRNG) (int, bool) {
	d := productive(p)
	if len(d) == 0 {
		panic(&InvariantError{What: "rule b invoked with no productive dimension"})
	}
	j := d[prng.RandBelow(len(d))]
	np := preferredPort(p, j)
	if ns.PortBusy(np) {
		return 0, false
	}
	return np, true
}

// RuleC chooses among the productive dimensions with probability
// proportional to |Da[j]|; refuses if the chosen preferred port is
// busy. The boundary predicate is "r <= w[j]", not the textbook
// "r < w[j]" — this slightly biases selection toward lower-indexed
// dimensions, see DESIGN.md.
func RuleC(p *Packet, ns *NodeState, prng PRNG) (int, bool) {
	d := productive(p)
	if len(d) == 0 {
		panic(&InvariantError{What: "rule c invoked with no productive dimension"})
	}
	total := 0
	for _, j := range d {
		total += abs(p.Da[j])
	}
	r := prng.RandBelow(total)
	j := weightedPick(p, d, r)
	np := preferredPort(p, j)
	if ns.PortBusy(np) {
		return 0, false
	}
	return np, true
}

// weightedPick walks the weights |Da[j]| for j in d, choosing j when
// r <= w[j] (see RuleC), else r -= w[j].
func weightedPick(p *Packet, d []int, r int) int {
	for _, j := range d {
		w := abs(p.Da[j])
		if r <= w {
			return j
		}
		r -= w
	}
	// unreachable if r was drawn in [0, sum(w)) as required
	return d[len(d)-1]
}

// RuleD scans productive dimensions in index order, skipping busy
// preferred ports, and refuses only once every productive dimension's
// preferred port is busy; see DESIGN.md for why this differs from a
// naive first-dimension-only reading of rule d.
func RuleD(p *Packet, ns *NodeState, prng PRNG) (int, bool) {
	d := productive(p)
	for _, j := range d {
		np := preferredPort(p, j)
		if !ns.PortBusy(np) {
			return np, true
		}
	}
	return 0, false
}

// RuleE chooses uniformly among productive dimensions whose preferred
// port is currently free; returns "none" if all productive ports are
// busy.
func RuleE(p *Packet, ns *NodeState, prng PRNG) (int, bool) {
	free := freeProductivePorts(p, ns)
	if len(free) == 0 {
		return 0, false
	}
	return free[prng.RandBelow(len(free))], true
}

// RuleF chooses among productive dimensions whose preferred port is
// free, weighted by |Da[j]|, using the same "r <= w[j]" boundary as
// RuleC; returns "none" if all productive ports are busy.
func RuleF(p *Packet, ns *NodeState, prng PRNG) (int, bool) {
	var free []int
	total := 0
	for _, j := range productive(p) {
		np := preferredPort(p, j)
		if !ns.PortBusy(np) {
			free = append(free, j)
			total += abs(p.Da[j])
		}
	}
	if len(free) == 0 {
		return 0, false
	}
	r := prng.RandBelow(total)
	j := weightedPick(p, free, r)
	return preferredPort(p, j), true
}

func freeProductivePorts(p *Packet, ns *NodeState) []int {
	var free []int
	for _, j := range productive(p) {
		np := preferredPort(p, j)
		if !ns.PortBusy(np) {
			free = append(free, np)
		}
	}
	return free
}
