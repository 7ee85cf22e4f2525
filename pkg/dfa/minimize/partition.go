package minimize

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Unassigned is the class of a state that belongs to no equivalence class
// because it is unreachable.
const Unassigned = -1

// Classes assigns reachable states to equivalence classes 0..Count-1.
type Classes struct {
	// Of maps a state index to its class, or Unassigned.
	Of []int
	// Members lists the states of each class in ascending order. The first
	// member is the lowest-index state and acts as the representative.
	Members [][]int
}

// Count returns the number of classes.
func (c Classes) Count() int { return len(c.Members) }

// Class returns the class of state, or Unassigned.
func (c Classes) Class(state int) int {
	if state < 0 || state >= len(c.Of) {
		return Unassigned
	}
	return c.Of[state]
}

// Partition groups reachable states into the connected components of the
// "not distinguishable" relation. Components are discovered by a forward
// scan of state indices, so class ids follow the lowest member index.
func Partition(rel *Relation, reachable *bitset.BitSet) Classes {
	n := rel.Size()
	c := Classes{Of: make([]int, n)}
	for i := range c.Of {
		c.Of[i] = Unassigned
	}

	var stack []int
	for i := 0; i < n; i++ {
		if !reachable.Test(uint(i)) || c.Of[i] != Unassigned {
			continue
		}
		id := len(c.Members)
		members := []int{i}
		c.Of[i] = id

		stack = append(stack[:0], i)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for u := 0; u < n; u++ {
				if c.Of[u] != Unassigned || !reachable.Test(uint(u)) || rel.Distinguishable(v, u) {
					continue
				}
				c.Of[u] = id
				members = append(members, u)
				stack = append(stack, u)
			}
		}

		slices.Sort(members)
		c.Members = append(c.Members, members)
	}
	return c
}
