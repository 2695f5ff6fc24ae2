package cli

import (
	"github.com/spf13/cobra"

	dErrors "mymyunsw/pkg/domain-errors"
)

// Unbounded as a maximum accepts any number of trailing arguments.
const Unbounded = -1

// ValidateArgumentCount checks the positional arguments (program name
// excluded) against [min, max]. On failure the error's message is exactly
// usage, so the caller can print it verbatim.
func ValidateArgumentCount(args []string, min, max int, usage string) error {
	n := len(args)
	if n < min || (max != Unbounded && n > max) {
		return dErrors.New(dErrors.CodeUsage, usage)
	}
	return nil
}

// argsBetween adapts ValidateArgumentCount to cobra's positional validator.
func argsBetween(min, max int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		return ValidateArgumentCount(args, min, max, usage)
	}
}
