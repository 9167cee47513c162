package digraph

import "testing"

func buildDiamond() *Graph {
	// 0 -> 1, 0 -> 2, 1 -> 3, 2 -> 3
	b := NewBuilder(4)
	b.AddEdge(0, 1)
	b.AddEdge(0, 2)
	b.AddEdge(1, 3)
	b.AddEdge(2, 3)
	return b.Build()
}

func TestEdgeSymmetry(t *testing.T) {
	g := buildDiamond()
	for i := 0; i < g.N(); i++ {
		for _, j := range g.Outgoing(i) {
			found := false
			for _, k := range g.Incoming(j) {
				if k == i {
					found = true
				}
			}
			if !found {
				t.Errorf("%d in Outgoing(%d) but %d not in Incoming(%d)", j, i, i, j)
			}
		}
	}
}

func TestDeduplicatesEdges(t *testing.T) {
	b := NewBuilder(2)
	b.AddEdge(0, 1)
	b.AddEdge(0, 1)
	g := b.Build()
	if len(g.Outgoing(0)) != 1 {
		t.Fatalf("Outgoing(0) = %v, want single edge", g.Outgoing(0))
	}
}

func TestDominatorsDiamond(t *testing.T) {
	g := buildDiamond()
	doms := Dominators(g, 0)

	if !setEqual(doms[0], map[int]bool{0: true}) {
		t.Fatalf("dom(entry) = %v, want {0}", doms[0])
	}
	if !doms[3][0] {
		t.Fatalf("entry should dominate every reachable node, dom(3) = %v", doms[3])
	}
	if doms[3][1] || doms[3][2] {
		t.Fatalf("neither branch of the diamond should dominate the join node: dom(3) = %v", doms[3])
	}
}
