//----------------------------------------------------------------------
// This file is part of torusim.
//----------------------------------------------------------------------

package core

// Address is a node position in a d-dimensional k-ary torus: one
// coordinate per dimension, each in [0,k).
type Address []int

// Clone returns an independent copy of an address.
func (a Address) Clone() Address {
	return Clone(a)
}

// Equal reports whether two addresses name the same node.
func (a Address) Equal(b Address) bool {
	return Equal(a, b)
}

// NodeNumber computes the base-k positional encoding of an address,
// most significant coordinate first.
func NodeNumber(a Address, k int) int {
	nn := a[0]
	for j := 1; j < len(a); j++ {
		nn = nn*k + a[j]
	}
	return nn
}

// NextIndex advances an address to the next one in lexicographic order
// (last coordinate fastest). It returns false once the enumeration has
// wrapped past the last address (all coordinates back to zero).
func NextIndex(a Address, k int) bool {
	for j := len(a) - 1; j >= 0; j-- {
		a[j]++
		if a[j] < k {
			return true
		}
		a[j] = 0
	}
	return false
}

// PortDim returns the dimension addressed by a port number.
func PortDim(np int) int {
	return np / 2
}

// PortDir returns the signed direction (-1 or +1) addressed by a port
// number.
func PortDir(np int) int {
	if np%2 == 0 {
		return -1
	}
	return 1
}

// PortNumber encodes a (dimension, direction) pair into a port number.
func PortNumber(dim, dir int) int {
	np := 2 * dim
	if dir != -1 {
		np++
	}
	return np
}

// Neighbor returns the address reached from i by stepping one hop along
// port np, wrapping around the torus in that dimension.
func Neighbor(i Address, np, k int) Address {
	n := i.Clone()
	dim := PortDim(np)
	n[dim] = torusStep(i[dim], PortDir(np), k)
	return n
}

func torusStep(coord, dir, k int) int {
	c := coord + dir
	if c < 0 {
		return k - 1
	}
	if c >= k {
		return 0
	}
	return c
}

// AddressDifference computes, for each dimension, the signed shortest
// torus offset from curr to dest: magnitude min(|delta|, k-|delta|), sign
// the direction of travel. A tie (only possible for even k, when both
// wrap senses are equidistant) resolves to the wrap-sense direction;
// see DESIGN.md for why this tie-break matters.
func AddressDifference(dest, curr Address, k int) Address {
	d := make(Address, len(dest))
	for j := range dest {
		delta := dest[j] - curr[j] // in (-k, k) since coords are in [0,k)
		direct := abs(delta)
		wrapped := k - direct
		if direct < wrapped {
			d[j] = direct * sign(delta)
		} else {
			d[j] = -wrapped * sign(delta)
		}
	}
	return d
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}
