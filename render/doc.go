// Package render draws the layout of an expression tree into an image. Edges
// are straight lines, nodes are filled circles and node labels are drawn with
// tinyfont bitmap fonts.
package render
