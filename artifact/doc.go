// Package artifact writes the outputs of a run, the formula file and the tree
// images, into a kustomize filesystem. The filesystem can be backed by the
// disk or kept in memory.
package artifact
