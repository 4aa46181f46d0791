// Package error provides interfaces for errors to implement and behavior based
// error checking helper functions. This helps in keeping the errors decoupled
// from the package APIs. The concrete error types live in the packages that
// return them.
// Refer https://dave.cheney.net/2016/04/27/dont-just-check-errors-handle-them-gracefully
// for detailed explanation.
package error
