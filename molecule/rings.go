package molecule

import (
	"errors"

	"github.com/dominikbraun/graph"
)

// MaxCisRingSize is the smallest ring size in which a double bond may be trans
const MaxCisRingSize = 8

func (m *Mol) graph() (graph.Graph[int, int], error) {
	g := graph.New(graph.IntHash)
	for _, id := range m.AtomIDs() {
		if err := g.AddVertex(id); err != nil {
			return nil, err
		}
	}
	for k := range m.bonds {
		if err := g.AddEdge(k.a1, k.a2); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// smallestRing returns the size of the smallest ring containing the bond, 0 if acyclic
func smallestRing(g graph.Graph[int, int], a1, a2 int) (int, error) {
	if err := g.RemoveEdge(a1, a2); err != nil {
		return 0, err
	}
	defer g.AddEdge(a1, a2)

	path, err := graph.ShortestPath(g, a1, a2)
	if errors.Is(err, graph.ErrTargetNotReachable) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return len(path), nil
}

// SetCyclicDoubleBondsCis marks every double bond lying in a ring smaller
// than MaxCisRingSize atoms as Z. Those bonds can only be cis whatever the
// stereo block says.
func (m *Mol) SetCyclicDoubleBondsCis() {
	g, err := m.graph()
	if err != nil {
		return
	}
	for k, b := range m.bonds {
		if b.Type != 2 {
			continue
		}
		size, err := smallestRing(g, k.a1, k.a2)
		if err != nil || size == 0 {
			continue
		}
		if size < MaxCisRingSize {
			b.Stereo = StereoZ
		}
	}
}
