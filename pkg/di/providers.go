package di

import (
	"github.com/cvoctl-io/cvoctl/pkg/svc/override"
	"github.com/cvoctl-io/cvoctl/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by the root command
// and tests. It registers default implementations for the timer and the
// cluster version client factory.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideClientFactory,
	)
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// provideClientFactory registers the cluster version client factory
// dependency.
func provideClientFactory(i Injector) error {
	do.Provide(i, func(Injector) (override.Factory, error) {
		return override.DefaultFactory{}, nil
	})

	return nil
}
