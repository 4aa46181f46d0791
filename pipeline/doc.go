// Package pipeline runs the expression toolkit end to end. It generates the
// formula pairs for a range of depths, converts the x1 formula of the
// selected depths to postfix, builds and lays out its tree, renders the tree
// image, and finally writes all the formulas into the formula file.
//
// A run fails fast: the first error aborts it and is returned wrapped with
// the depth it happened at.
package pipeline
