package v1

import (
	"fmt"
	"math"
)

// Strategy is a placement strategy for the positions of a Graph.
type Strategy string

const (
	// Layered puts the root on top and every level below its parent level.
	// Horizontal order follows the in-order traversal, so the operands read
	// left to right as in the infix expression.
	Layered Strategy = "layered"
	// Circular spreads the positions evenly on a circle, in position order.
	Circular Strategy = "circular"
)

// ParseStrategy returns the Strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(name); s {
	case Layered, Circular:
		return s, nil
	case "":
		return Layered, nil
	}
	return "", fmt.Errorf("unknown layout strategy %q", name)
}

// Point is a location on the unit square, with Y growing downwards.
type Point struct {
	X float64
	Y float64
}

// Place returns the location of every position of the graph for the given
// strategy.
func (g *Graph) Place(strategy Strategy) (map[int]Point, error) {
	switch strategy {
	case Layered, "":
		return g.placeLayered()
	case Circular:
		return g.placeCircular(), nil
	}
	return nil, fmt.Errorf("unknown layout strategy %q", strategy)
}

func (g *Graph) placeLayered() (map[int]Point, error) {
	levels, err := g.Levels()
	if err != nil {
		return nil, err
	}

	n := float64(g.Len())
	depth := float64(len(levels))
	points := make(map[int]Point, g.Len())
	for l, level := range levels {
		for _, pos := range level {
			points[pos] = Point{
				X: (float64(g.inOrder[pos]) + 0.5) / n,
				Y: (float64(l) + 0.5) / depth,
			}
		}
	}
	return points, nil
}

func (g *Graph) placeCircular() map[int]Point {
	n := g.Len()
	points := make(map[int]Point, n)
	if n == 1 {
		points[0] = Point{X: 0.5, Y: 0.5}
		return points
	}
	for pos := 0; pos < n; pos++ {
		angle := 2 * math.Pi * float64(pos) / float64(n)
		points[pos] = Point{
			X: 0.5 + 0.5*math.Cos(angle),
			Y: 0.5 + 0.5*math.Sin(angle),
		}
	}
	return points
}
