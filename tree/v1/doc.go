// Package v1 builds binary expression trees from postfix expressions. Leaves
// hold operands and internal nodes hold the binary operators + - * / ^ with
// their left and right sub-expressions. A built tree is a plain value: layout
// and rendering are derived from it by separate packages.
package v1
