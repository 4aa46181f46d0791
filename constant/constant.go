// Package constant contains constants shared across the toolkit packages.
package constant

// LibraryName is the name of the library, used as the prefix of the
// instrumentation names.
const LibraryName = "github.com/darkowlzz/expression-toolkit"
