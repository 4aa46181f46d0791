// Package v1 derives a drawable layout from an expression tree. Each node
// gets an integer position, equal to its index in the postfix order, and the
// tree is stored as a directed acyclic graph from parents to children, with a
// label per position. The graph is then placed on the unit square, in layers
// or on a circle, for a renderer to draw.
package v1
