// Package generator produces the recursive family of formula pairs that feed
// the converter. Depth 0 is a pair of single operands, depth 1 a pair of short
// linear expressions, and every deeper pair is a template over the two
// previous depths.
package generator

import "fmt"

// Pair is the pair of formulas generated for a depth.
type Pair struct {
	Depth int
	X1    string
	X2    string
}

// Generator generates formula pairs, memoizing every depth it has computed.
// A Generator isn't safe for concurrent use.
type Generator struct {
	pairs []Pair
}

// New returns a Generator seeded with the base depths.
func New() *Generator {
	return &Generator{
		pairs: []Pair{
			{Depth: 0, X1: "x", X2: "X"},
			{Depth: 1, X1: "(v*t + x)", X2: "(V*t + X)"},
		},
	}
}

// Pair returns the formula pair of depth n. It panics if n is negative.
func (g *Generator) Pair(n int) Pair {
	if n < 0 {
		panic(fmt.Sprintf("generator: negative depth %d", n))
	}
	for len(g.pairs) <= n {
		k := len(g.pairs)
		g.pairs = append(g.pairs, next(k, g.pairs[k-2], g.pairs[k-1]))
	}
	return g.pairs[n]
}

// Range returns the formula pairs of the depths from min to max, inclusive.
func (g *Generator) Range(min, max int) []Pair {
	pairs := []Pair{}
	for n := min; n <= max; n++ {
		pairs = append(pairs, g.Pair(n))
	}
	return pairs
}

// next builds the pair of depth n from the pairs of depth n-2 and n-1.
func next(n int, prev2, prev1 Pair) Pair {
	return Pair{
		Depth: n,
		X1:    fmt.Sprintf("((t^2*q*Q)/(4*p*E*(%s-%s))-%s+2*%s)", prev2.X1, prev2.X2, prev2.X1, prev1.X1),
		X2:    fmt.Sprintf("((-t^2*q*Q)/(4*p*E*(%s-%s))-%s+2*%s)", prev2.X1, prev2.X2, prev2.X2, prev1.X2),
	}
}

// Expr returns the formula pair of depth n.
func Expr(n int) (string, string) {
	p := New().Pair(n)
	return p.X1, p.X2
}
