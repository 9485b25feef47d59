// Package di wires command handlers to their dependencies through a
// samber/do injector. Each invocation builds a fresh injector, runs the
// registered modules, and shuts the injector down when the handler returns.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to modules and handlers.
type Injector = do.Injector

// Module registers dependencies on an injector.
type Module func(Injector) error

// Runtime owns the module list shared by every command invocation.
type Runtime struct {
	modules []Module
}

// New creates a Runtime with the given base modules. Nil modules are skipped
// at invocation time.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke runs the handler against a fresh injector populated by the base
// modules followed by any extra modules, in order. A module error aborts the
// invocation before the handler runs.
func (r *Runtime) Invoke(handler func(Injector) error, extraModules ...Module) error {
	injector := do.New()
	defer func() {
		_ = injector.Shutdown()
	}()

	err := runModules(injector, r.modules)
	if err != nil {
		return err
	}

	err = runModules(injector, extraModules)
	if err != nil {
		return err
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler needing an injector into a cobra RunE.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}

func runModules(injector Injector, modules []Module) error {
	for _, module := range modules {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return nil
}
