package digraph

// Dominators computes, for every node reachable from entry, the set of
// nodes that dominate it (every path from entry to that node passes
// through them), using the standard iterative data-flow algorithm. The
// result for entry itself is always {entry}. Unreachable nodes get a
// nil (empty) dominator set.
func Dominators(g *Graph, entry int) []map[int]bool {
	reachable := reachableFrom(g, entry)

	all := make(map[int]bool, g.n)
	for i := 0; i < g.n; i++ {
		if reachable[i] {
			all[i] = true
		}
	}

	doms := make([]map[int]bool, g.n)
	for i := 0; i < g.n; i++ {
		if !reachable[i] {
			continue
		}
		if i == entry {
			doms[i] = map[int]bool{entry: true}
		} else {
			doms[i] = cloneSet(all)
		}
	}

	changed := true
	for changed {
		changed = false
		for i := 0; i < g.n; i++ {
			if !reachable[i] || i == entry {
				continue
			}
			var merged map[int]bool
			for _, p := range g.Incoming(i) {
				if !reachable[p] {
					continue
				}
				if merged == nil {
					merged = cloneSet(doms[p])
				} else {
					intersect(merged, doms[p])
				}
			}
			if merged == nil {
				merged = map[int]bool{}
			}
			merged[i] = true
			if !setEqual(merged, doms[i]) {
				doms[i] = merged
				changed = true
			}
		}
	}
	return doms
}

// reachableFrom returns the set of nodes reachable from entry, inclusive.
func reachableFrom(g *Graph, entry int) []bool {
	reachable := make([]bool, g.n)
	if entry < 0 || entry >= g.n {
		return reachable
	}
	stack := []int{entry}
	reachable[entry] = true
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range g.Outgoing(n) {
			if !reachable[s] {
				reachable[s] = true
				stack = append(stack, s)
			}
		}
	}
	return reachable
}

func cloneSet(s map[int]bool) map[int]bool {
	c := make(map[int]bool, len(s))
	for k := range s {
		c[k] = true
	}
	return c
}

func intersect(dst, src map[int]bool) {
	for k := range dst {
		if !src[k] {
			delete(dst, k)
		}
	}
}

func setEqual(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
