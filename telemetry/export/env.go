package export

import (
	"os"
	"strconv"
)

// Environment variable that turns the span export on or off.
const envDisableTracing = "DISABLE_TRACING"

// tracingDisabled returns true unless DISABLE_TRACING is set to a value that
// parses as false.
func tracingDisabled() bool {
	value, ok := os.LookupEnv(envDisableTracing)
	if !ok {
		return true
	}
	disabled, err := strconv.ParseBool(value)
	if err != nil {
		return true
	}
	return disabled
}
