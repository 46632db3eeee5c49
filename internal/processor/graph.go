package processor

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/graph/simple"
)

// cooccurrenceGraph is an undirected word graph. Node IDs are the order in
// which words were first seen.
type cooccurrenceGraph struct {
	g     *simple.UndirectedGraph
	words []string
	ids   map[string]int64
}

func newCooccurrenceGraph() *cooccurrenceGraph {
	return &cooccurrenceGraph{
		g:   simple.NewUndirectedGraph(),
		ids: make(map[string]int64),
	}
}

func (cg *cooccurrenceGraph) addNode(word string) int64 {
	if id, ok := cg.ids[word]; ok {
		return id
	}
	id := int64(len(cg.words))
	cg.ids[word] = id
	cg.words = append(cg.words, word)
	cg.g.AddNode(simple.Node(id))
	return id
}

// addEdge links two words and reports whether the edge is new. Self links
// and edges already present are ignored.
func (cg *cooccurrenceGraph) addEdge(u, v string) bool {
	uid, vid := cg.addNode(u), cg.addNode(v)
	if uid == vid || cg.g.HasEdgeBetween(uid, vid) {
		return false
	}
	cg.g.SetEdge(cg.g.NewEdge(simple.Node(uid), simple.Node(vid)))
	return true
}

func (cg *cooccurrenceGraph) numNodes() int {
	return len(cg.words)
}

func (cg *cooccurrenceGraph) numEdges() int {
	return cg.g.Edges().Len()
}

// adjacency lists neighbour IDs per node in ascending order so that score
// sums are accumulated in a fixed order.
func (cg *cooccurrenceGraph) adjacency() [][]int {
	adj := make([][]int, len(cg.words))
	for id := range cg.words {
		nodes := cg.g.From(int64(id))
		neighbours := make([]int, 0, nodes.Len())
		for nodes.Next() {
			neighbours = append(neighbours, int(nodes.Node().ID()))
		}
		slices.Sort(neighbours)
		adj[id] = neighbours
	}
	return adj
}

// pageRank runs the power iteration over an unweighted undirected graph and
// stops once the summed absolute change drops below tolerance.
func pageRank(adj [][]int, damping float64, maxIterations int, tolerance float64) ([]float64, int) {
	N := len(adj)
	switch N {
	case 0:
		return nil, 0
	case 1:
		return []float64{1.0}, 0
	}

	scores := make([]float64, N)
	for i := range scores {
		scores[i] = 1.0 / float64(N)
	}

	randomComponent := (1.0 - damping) / float64(N)

	iterations := 0
	for range maxIterations {
		iterations++
		newScores := make([]float64, N)
		totalChange := 0.0

		for i := range N {
			linkComponent := 0.0
			for _, j := range adj[i] {
				linkComponent += scores[j] / float64(len(adj[j]))
			}

			newScores[i] = randomComponent + (damping * linkComponent)
			totalChange += math.Abs(newScores[i] - scores[i])
		}

		scores = newScores
		if totalChange < tolerance {
			break
		}
	}

	return scores, iterations
}
