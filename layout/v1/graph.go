package v1

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goombaio/dag"

	treev1 "github.com/darkowlzz/expression-toolkit/tree/v1"
)

// Graph is a directed acyclic graph representation of an expression tree.
// Vertex IDs are the decimal positions of the nodes and vertex values are
// their labels.
type Graph struct {
	*dag.DAG

	root    int
	labels  map[int]string
	inOrder map[int]int
	edges   [][2]int
}

// NewGraph creates a Graph from the tree rooted at root.
func NewGraph(root *treev1.Node) (*Graph, error) {
	if root == nil {
		return nil, fmt.Errorf("layout of an empty tree")
	}

	g := &Graph{
		DAG:     dag.NewDAG(),
		labels:  map[int]string{},
		inOrder: map[int]int{},
	}

	// Number the nodes in post-order, which matches the token order of the
	// postfix expression.
	positions := map[*treev1.Node]int{}
	root.PostOrder(func(n *treev1.Node) {
		pos := len(positions)
		positions[n] = pos
		g.labels[pos] = n.Value
	})
	g.root = positions[root]

	idx := 0
	root.InOrder(func(n *treev1.Node) {
		g.inOrder[positions[n]] = idx
		idx++
	})

	// Create vertices for all the nodes.
	for pos := 0; pos < len(positions); pos++ {
		v := dag.NewVertex(vertexID(pos), g.labels[pos])
		if err := g.AddVertex(v); err != nil {
			return nil, err
		}
	}

	// Connect every operator node to its children.
	var edgeErr error
	root.PreOrder(func(n *treev1.Node) {
		if edgeErr != nil {
			return
		}
		for _, child := range []*treev1.Node{n.Left, n.Right} {
			if child == nil {
				continue
			}
			if err := g.connect(positions[n], positions[child]); err != nil {
				edgeErr = err
				return
			}
		}
	})
	if edgeErr != nil {
		return nil, edgeErr
	}

	return g, nil
}

func (g *Graph) connect(parent, child int) error {
	tail, err := g.GetVertex(vertexID(parent))
	if err != nil {
		return err
	}
	head, err := g.GetVertex(vertexID(child))
	if err != nil {
		return err
	}
	if err := g.AddEdge(tail, head); err != nil {
		return err
	}
	g.edges = append(g.edges, [2]int{parent, child})
	return nil
}

// Root returns the position of the root node.
func (g *Graph) Root() int {
	return g.root
}

// Len returns the number of positions in the graph.
func (g *Graph) Len() int {
	return len(g.labels)
}

// Labels returns the label displayed at every position.
func (g *Graph) Labels() map[int]string {
	labels := make(map[int]string, len(g.labels))
	for pos, l := range g.labels {
		labels[pos] = l
	}
	return labels
}

// Edges returns the parent-child pairs of positions, sorted by parent then
// child.
func (g *Graph) Edges() [][2]int {
	edges := make([][2]int, len(g.edges))
	copy(edges, g.edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}

// Levels returns the positions grouped by their distance from the root. Each
// level is sorted.
func (g *Graph) Levels() ([][]int, error) {
	soln, steps, err := g.solve()
	if err != nil {
		return nil, err
	}

	result := make([][]int, steps)
	for id, step := range soln {
		pos, err := strconv.Atoi(id)
		if err != nil {
			return nil, err
		}
		result[step] = append(result[step], pos)
	}
	for _, level := range result {
		sort.Ints(level)
	}

	return result, nil
}

// solve traverses the graph in steps, starting from the source vertices.
// Returns a map containing vertex ID with step number and total number of
// steps in the solution.
func (g *Graph) solve() (map[string]int, int, error) {
	order := map[string]int{}
	roots := g.SourceVertices()

	step := 0
	newRoots := roots
	var err error
	for len(newRoots) > 0 {
		newRoots, err = g.solveStep(step, newRoots, order)
		if err != nil {
			return nil, step, err
		}
		step++
	}

	return order, step, nil
}

// solveStep takes a step number, current roots and an order, and returns new
// current roots and updates the order. A vertex is placed in a step once all
// its predecessors are placed.
func (g *Graph) solveStep(step int, currentRoots []*dag.Vertex, order map[string]int) ([]*dag.Vertex, error) {
	newRoots := []*dag.Vertex{}

	for _, c := range currentRoots {
		if _, exists := order[c.ID]; !exists {
			pp, err := g.Predecessors(c)
			if err != nil {
				return nil, err
			}

			satisfied := true
			for _, p := range pp {
				if _, exists := order[p.ID]; !exists {
					satisfied = false
				}
			}
			if satisfied {
				order[c.ID] = step
			}
		}

		ss, err := g.Successors(c)
		if err != nil {
			return nil, err
		}
		for _, s := range ss {
			if !vertexExists(newRoots, s) {
				newRoots = append(newRoots, s)
			}
		}
	}

	return newRoots, nil
}

func vertexExists(vs []*dag.Vertex, target *dag.Vertex) bool {
	for _, v := range vs {
		if v.ID == target.ID {
			return true
		}
	}
	return false
}

func vertexID(pos int) string {
	return strconv.Itoa(pos)
}
