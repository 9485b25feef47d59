package di

import (
	"fmt"

	"github.com/cvoctl-io/cvoctl/pkg/svc/override"
	"github.com/cvoctl-io/cvoctl/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Dependency resolvers.

// ResolveTimer retrieves the timer dependency from the injector with
// consistent error handling.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveClientFactory retrieves the cluster version client factory
// dependency from the injector with consistent error handling.
func ResolveClientFactory(injector Injector) (override.Factory, error) {
	factory, err := do.Invoke[override.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve client factory dependency: %w", err)
	}

	return factory, nil
}

// Handler decorators.

// WithTimer decorates a handler to automatically resolve the timer
// dependency. This higher-order function simplifies command handlers that
// need timer access.
func WithTimer(
	handler func(cmd *cobra.Command, injector Injector, tmr timer.Timer) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		tmr, err := ResolveTimer(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, tmr)
	}
}
