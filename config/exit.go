package config

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// Exit reports err on stderr as "layers: <err>" and exits. Errors
// wrapping ErrInvalid exit with ExitUsage, everything else with
// ExitFailure.
func Exit(err error) {
	fmt.Fprintf(os.Stderr, "layers: %v\n", err)
	if errors.Is(err, ErrInvalid) {
		os.Exit(ExitUsage)
	}
	os.Exit(ExitFailure)
}
