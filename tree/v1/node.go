package v1

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/darkowlzz/expression-toolkit/token"
)

// Node is a node of an expression tree. A leaf holds an operand and has no
// children. An operator node always has both children.
type Node struct {
	Value string
	Left  *Node
	Right *Node
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// InOrder calls visit for every node of the tree in in-order: left subtree,
// node, right subtree.
func (n *Node) InOrder(visit func(*Node)) {
	if n == nil {
		return
	}
	n.Left.InOrder(visit)
	visit(n)
	n.Right.InOrder(visit)
}

// PreOrder calls visit for every node of the tree in pre-order.
func (n *Node) PreOrder(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	n.Left.PreOrder(visit)
	n.Right.PreOrder(visit)
}

// PostOrder calls visit for every node of the tree in post-order. The
// sequence of visited values is the postfix expression the tree was built
// from.
func (n *Node) PostOrder(visit func(*Node)) {
	if n == nil {
		return
	}
	n.Left.PostOrder(visit)
	n.Right.PostOrder(visit)
	visit(n)
}

// Count returns the number of nodes in the tree.
func (n *Node) Count() int {
	count := 0
	n.PostOrder(func(*Node) { count++ })
	return count
}

// Depth returns the number of levels of the tree. A single leaf has depth 1.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	l, r := n.Left.Depth(), n.Right.Depth()
	if l > r {
		return l + 1
	}
	return r + 1
}

// Values returns the node values in post-order.
func (n *Node) Values() []string {
	values := []string{}
	n.PostOrder(func(v *Node) { values = append(values, v.Value) })
	return values
}

// Postfix returns the postfix form of the tree, with the values joined by
// sep.
func (n *Node) Postfix(sep string) string {
	return strings.Join(n.Values(), sep)
}

// Infix returns a fully parenthesized infix form of the tree.
func (n *Node) Infix() string {
	if n == nil {
		return ""
	}
	if n.IsLeaf() {
		return n.Value
	}
	return "(" + n.Left.Infix() + n.Value + n.Right.Infix() + ")"
}

// String implements the Stringer interface for Node.
func (n *Node) String() string {
	return n.Infix()
}

// Evaluate computes the numeric value of the tree. Operands made of digits
// are numbers, other operands are looked up in env.
func (n *Node) Evaluate(env map[string]float64) (float64, error) {
	if n == nil {
		return 0, emptyExpression{}
	}
	if n.IsLeaf() {
		if v, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return v, nil
		}
		if v, ok := env[n.Value]; ok {
			return v, nil
		}
		return 0, &unboundSymbol{symbol: n.Value}
	}

	l, err := n.Left.Evaluate(env)
	if err != nil {
		return 0, err
	}
	r, err := n.Right.Evaluate(env)
	if err != nil {
		return 0, err
	}

	switch n.Value {
	case token.OpAdd:
		return l + r, nil
	case token.OpSub:
		return l - r, nil
	case token.OpMul:
		return l * r, nil
	case token.OpDiv:
		return l / r, nil
	case token.OpPow:
		return math.Pow(l, r), nil
	}
	return 0, fmt.Errorf("unknown operator %q", n.Value)
}
