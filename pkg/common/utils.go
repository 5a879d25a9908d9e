package common

import (
	"os"
)

// GetEnv returns the value of the environment variable or the fallback when
// the variable is unset. A set-but-empty variable counts as set, which lets
// an operator explicitly blank out an endpoint that has a non-empty default.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}
