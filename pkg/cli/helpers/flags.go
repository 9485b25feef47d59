package helpers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cvoctl-io/cvoctl/pkg/utils/timer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// TimingFlagName is the name of the flag that enables per-stage timing
// output. The root command registers it as a persistent flag so every
// subcommand inherits it.
const TimingFlagName = "timing"

// ErrNilCommand indicates a flag lookup was attempted without a command.
var ErrNilCommand = errors.New("command is nil")

// ErrTimingFlagNotFound indicates the timing flag is not registered on the
// command, its persistent flags, or any parent command.
var ErrTimingFlagNotFound = errors.New("timing flag not found")

// IsTimingEnabled reports whether timing output is enabled for the command.
// The flag is looked up on the command's own flag set first, then its
// persistent flags, then the persistent flags inherited from parent commands.
func IsTimingEnabled(cmd *cobra.Command) (bool, error) {
	if cmd == nil {
		return false, fmt.Errorf("read %s flag: %w", TimingFlagName, ErrNilCommand)
	}

	flag := lookupTimingFlag(cmd)
	if flag == nil {
		return false, fmt.Errorf("read %s flag: %w", TimingFlagName, ErrTimingFlagNotFound)
	}

	enabled, err := strconv.ParseBool(flag.Value.String())
	if err != nil {
		return false, fmt.Errorf("parse %s flag value %q: %w", TimingFlagName, flag.Value.String(), err)
	}

	return enabled, nil
}

// lookupTimingFlag finds the timing flag without requiring the command to
// have parsed its flags, so it also works for commands built in tests.
func lookupTimingFlag(cmd *cobra.Command) *pflag.Flag {
	if flag := cmd.Flags().Lookup(TimingFlagName); flag != nil {
		return flag
	}

	if flag := cmd.PersistentFlags().Lookup(TimingFlagName); flag != nil {
		return flag
	}

	return cmd.InheritedFlags().Lookup(TimingFlagName)
}

// MaybeTimer returns the timer when timing output is enabled for the command
// and nil otherwise. Passing the result straight to a notify message is safe
// because notify skips the timing block for nil timers.
func MaybeTimer(cmd *cobra.Command, tmr timer.Timer) timer.Timer {
	if cmd == nil || tmr == nil {
		return nil
	}

	enabled, err := IsTimingEnabled(cmd)
	if err != nil || !enabled {
		return nil
	}

	return tmr
}
