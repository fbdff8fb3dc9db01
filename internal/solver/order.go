package solver

import "github.com/rhartert/yagh"

// varOrder picks the next free variable to branch on. Unlike the CDCL
// solver this package is descended from, variable selection here has no
// activity score: the default order is insertion order (lowest variable ID
// first), with a single variable promoted to the front when the problem
// carries an ordering hint (see Solver.promote). A binary heap keyed by
// priority gives O(log n) selection instead of the reference
// implementation's O(1)-but-unordered linked-list front pointer, at the
// cost of the lazy-deletion dance below: a popped variable that is no
// longer free is simply discarded, since it will be re-added with a fresh
// priority if it becomes free again.
type varOrder struct {
	heap *yagh.IntMap[int]
	seq  int
}

func newVarOrder(numVars int) *varOrder {
	vo := &varOrder{heap: yagh.New[int](0)}
	vo.heap.GrowBy(numVars + 1) // variable IDs are 1-based, index 0 unused
	for v := 1; v <= numVars; v++ {
		vo.heap.Put(v, v)
	}
	vo.seq = numVars
	return vo
}

// readd reinserts v with a priority after every variable currently in the
// order, i.e. at the back of the queue.
func (vo *varOrder) readd(v int) {
	vo.seq++
	vo.heap.Put(v, vo.seq)
}

// promote moves v to the front of the queue, ahead of every other
// variable, realizing the ordering-hint promotion.
func (vo *varOrder) promote(v int) {
	vo.heap.Put(v, -1)
}

// next pops variables off the heap, discarding any that freeVars no longer
// contains, until it finds one that is still free or the heap is empty.
func (vo *varOrder) next(isFree func(int) bool) (int, bool) {
	for {
		item, ok := vo.heap.Pop()
		if !ok {
			return 0, false
		}
		if isFree(item.Elem) {
			return item.Elem, true
		}
	}
}
