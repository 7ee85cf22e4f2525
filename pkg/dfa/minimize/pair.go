package minimize

import "github.com/bits-and-blooms/bitset"

// Pair is an unordered pair of state indices with I <= J.
type Pair struct {
	I, J int
}

// MakePair returns the normalized pair {i, j}.
func MakePair(i, j int) Pair {
	if i > j {
		i, j = j, i
	}
	return Pair{I: i, J: j}
}

// IsSelf reports whether both sides are the same state. Self pairs are never
// distinguishable.
func (p Pair) IsSelf() bool { return p.I == p.J }

// index maps the pair onto the lower triangle, row by row. The position does
// not depend on the number of states, so a relation computed over extra
// states keeps the same positions for the original ones.
func (p Pair) index() uint {
	return uint(p.J*(p.J+1)/2 + p.I)
}

func pairCount(n int) int { return n * (n + 1) / 2 }

// Relation is a symmetric boolean relation over state indices 0..N-1,
// stored as a bitset over the lower triangle.
type Relation struct {
	n    int
	bits *bitset.BitSet
}

func newRelation(n int) *Relation {
	return &Relation{n: n, bits: bitset.New(uint(pairCount(n)))}
}

// Size returns N.
func (r *Relation) Size() int { return r.n }

// Distinguishable reports whether states i and j are related. It is
// symmetric and always false for i == j or out-of-range indices.
func (r *Relation) Distinguishable(i, j int) bool {
	if i == j || i < 0 || j < 0 || i >= r.n || j >= r.n {
		return false
	}
	return r.bits.Test(MakePair(i, j).index())
}

// Count returns the number of related pairs {i, j} with i < j.
func (r *Relation) Count() int {
	limit := uint(pairCount(r.n))
	count := 0
	for i, ok := r.bits.NextSet(0); ok && i < limit; i, ok = r.bits.NextSet(i + 1) {
		count++
	}
	return count
}

// Pairs returns every related pair in index order.
func (r *Relation) Pairs() []Pair {
	var pairs []Pair
	for j := 0; j < r.n; j++ {
		for i := 0; i < j; i++ {
			if r.bits.Test(Pair{I: i, J: j}.index()) {
				pairs = append(pairs, Pair{I: i, J: j})
			}
		}
	}
	return pairs
}

func (r *Relation) mark(p Pair) bool {
	idx := p.index()
	if r.bits.Test(idx) {
		return false
	}
	r.bits.Set(idx)
	return true
}
