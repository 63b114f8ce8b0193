package partition

import "sort"

// Grouping maps a list number to the ordered items belonging to it. Order is
// arrival order from the source, followed by anything appended later.
type Grouping map[int][]Item

// Group buckets items by list number, preserving arrival order within each
// bucket.
func Group(items []Item) Grouping {
	g := make(Grouping)
	for _, it := range items {
		it = it.clone()
		it.Origin = nil
		g[it.ListNumber] = append(g[it.ListNumber], it)
	}
	return g
}

// ListNumbersSorted returns every list number in ascending order.
func (g Grouping) ListNumbersSorted() []int {
	numbers := make([]int, 0, len(g))
	for n := range g {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// Has reports whether the list exists, even when it is empty.
func (g Grouping) Has(n int) bool {
	_, ok := g[n]
	return ok
}

// Total counts items across all lists.
func (g Grouping) Total() int {
	total := 0
	for _, items := range g {
		total += len(items)
	}
	return total
}

// Clone returns a deep copy that shares nothing with g.
func (g Grouping) Clone() Grouping {
	dup := make(Grouping, len(g))
	for n, items := range g {
		if items == nil {
			dup[n] = []Item{}
			continue
		}
		dup[n] = cloneItems(items)
	}
	return dup
}

// ensure creates list n empty when it does not exist yet.
func (g Grouping) ensure(n int) {
	if _, ok := g[n]; !ok {
		g[n] = []Item{}
	}
}

func (g Grouping) nextListNumber() (int, bool) {
	if len(g) == 0 {
		return 0, false
	}
	first := true
	highest := 0
	for n := range g {
		if first || n > highest {
			highest = n
			first = false
		}
	}
	return highest + 1, true
}
