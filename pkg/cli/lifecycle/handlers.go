package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cvoctl-io/cvoctl/pkg/apis/config/v1alpha1"
	"github.com/cvoctl-io/cvoctl/pkg/cli/helpers"
	runtime "github.com/cvoctl-io/cvoctl/pkg/di"
	"github.com/cvoctl-io/cvoctl/pkg/io/configmanager"
	"github.com/cvoctl-io/cvoctl/pkg/svc/override"
	"github.com/cvoctl-io/cvoctl/pkg/utils/notify"
	"github.com/cvoctl-io/cvoctl/pkg/utils/timer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
)

// ErrMissingClientDependency indicates that a command resolved a nil cluster version client.
var ErrMissingClientDependency = errors.New("missing cluster version client dependency")

// ErrConfigRequired indicates that a nil configuration was provided.
var ErrConfigRequired = errors.New("configuration is required")

// Action represents an override operation executed through the service.
// The action receives a context for cancellation and the configured service,
// and reports what it changed so the command can phrase its success message.
type Action func(ctx context.Context, svc *override.Service) (override.Outcome, error)

// Config describes the messaging and action behavior for an override command.
// SuccessContent is printed when the action modified the cluster version;
// UnchangedContent when the run turned out to be a no-op.
type Config struct {
	TitleEmoji         string
	TitleContent       string
	ActivityContent    string
	SuccessContent     string
	UnchangedContent   string
	ErrorMessagePrefix string
	Action             Action
}

// Deps groups the injectable collaborators required by override commands.
type Deps struct {
	Timer   timer.Timer
	Factory override.Factory
}

// NewStandardRunE creates a standard RunE handler for override commands.
// It handles dependency injection from the runtime container and delegates
// to HandleRunE with the provided command configuration.
//
// The returned function can be assigned directly to a cobra.Command's RunE field.
func NewStandardRunE(
	runtimeContainer *runtime.Runtime,
	cfgManager *configmanager.ConfigManager,
	config Config,
) func(*cobra.Command, []string) error {
	return WrapHandler(
		runtimeContainer,
		cfgManager,
		func(cmd *cobra.Command, manager *configmanager.ConfigManager, deps Deps) error {
			return HandleRunE(cmd, manager, deps, config)
		},
	)
}

// WrapHandler resolves command dependencies from the runtime container and
// invokes the provided handler function with those dependencies.
//
// The configuration is loaded first so later steps see the merged result of
// file, environment, and flag sources. Use it directly for custom handlers
// that need dependency injection but more logic than the standard flow.
func WrapHandler(
	runtimeContainer *runtime.Runtime,
	cfgManager *configmanager.ConfigManager,
	handler func(*cobra.Command, *configmanager.ConfigManager, Deps) error,
) func(*cobra.Command, []string) error {
	return runtime.RunEWithRuntime(
		runtimeContainer,
		runtime.WithTimer(
			func(cmd *cobra.Command, injector runtime.Injector, tmr timer.Timer) error {
				if tmr != nil {
					tmr.Start()
				}

				outputTimer := helpers.MaybeTimer(cmd, tmr)

				_, err := cfgManager.LoadConfig(outputTimer)
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}

				ConfigureLogging(cfgManager.Config)

				factory, err := runtime.ResolveClientFactory(injector)
				if err != nil {
					return err
				}

				deps := Deps{Timer: tmr, Factory: factory}

				return handler(cmd, cfgManager, deps)
			},
		),
	)
}

// HandleRunE orchestrates the standard override workflow. The configuration
// is already loaded by WrapHandler, so this uses the cached config from
// cfgManager.Config and opens a new timer stage for the operation itself.
func HandleRunE(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	deps Deps,
	config Config,
) error {
	if deps.Timer != nil {
		deps.Timer.NewStage()
	}

	return RunWithConfig(cmd, deps, config, cfgManager.Config)
}

// RunWithConfig executes an override command using a pre-loaded configuration.
//
// It performs the following steps:
//  1. Create the cluster version client using the factory
//  2. Build the override service from the configured settings
//  3. Execute the action under the configured timeout
//  4. Display the outcome message with timing information
func RunWithConfig(
	cmd *cobra.Command,
	deps Deps,
	config Config,
	cfg *v1alpha1.Config,
) error {
	if cfg == nil {
		return ErrConfigRequired
	}

	client, err := deps.Factory.Create(cfg, CommandStreams(cmd))
	if err != nil {
		return fmt.Errorf("failed to create cluster version client: %w", err)
	}

	if client == nil {
		return ErrMissingClientDependency
	}

	svc := NewServiceFromConfig(client, cfg, cmd.OutOrStdout())

	return runWithService(cmd, deps, config, svc, cfg)
}

// runWithService executes the action with the user-facing messaging around it.
func runWithService(
	cmd *cobra.Command,
	deps Deps,
	config Config,
	svc *override.Service,
	cfg *v1alpha1.Config,
) error {
	showTitle(cmd, config.TitleEmoji, config.TitleContent)
	notify.WriteMessage(notify.Message{
		Type:    notify.ActivityType,
		Content: config.ActivityContent,
		Writer:  cmd.OutOrStdout(),
	})

	ctx, cancel := OperationContext(cmd, cfg)
	defer cancel()

	outcome, err := config.Action(ctx, svc)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrorMessagePrefix, err)
	}

	content := config.SuccessContent
	if !outcome.Changed {
		content = config.UnchangedContent
	}

	outputTimer := helpers.MaybeTimer(cmd, deps.Timer)

	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: content,
		Timer:   outputTimer,
		Writer:  cmd.OutOrStdout(),
	})

	return nil
}

// showTitle displays the title message for an override operation.
func showTitle(cmd *cobra.Command, emoji, content string) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout()) // Add newline before title for visual separation
	notify.WriteMessage(
		notify.Message{
			Type:    notify.TitleType,
			Content: content,
			Emoji:   emoji,
			Writer:  cmd.OutOrStdout(),
		},
	)
}

// NewServiceFromConfig builds the override service for a resolved client,
// applying the configured bootstrap budget and entry stamps.
func NewServiceFromConfig(
	client override.Client,
	cfg *v1alpha1.Config,
	out io.Writer,
) *override.Service {
	return override.NewService(client, override.Options{
		Attempts:   int(cfg.Spec.Override.Attempts),
		RetryDelay: cfg.Spec.Override.RetryDelay.Duration,
		Group:      cfg.Spec.Override.Group,
		Kind:       cfg.Spec.Override.Kind,
		Out:        out,
	})
}

// OperationContext derives the context for cluster calls from the command,
// honoring the configured timeout when one is set. The returned cancel
// function must always be called.
func OperationContext(
	cmd *cobra.Command,
	cfg *v1alpha1.Config,
) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg != nil && cfg.Spec.Connection.Timeout.Duration > 0 {
		return context.WithTimeout(ctx, cfg.Spec.Connection.Timeout.Duration)
	}

	return context.WithCancel(ctx)
}

// CommandStreams adapts the command's IO to the streams the clients expect.
func CommandStreams(cmd *cobra.Command) genericiooptions.IOStreams {
	return genericiooptions.IOStreams{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}
}

// ConfigureLogging raises the log level when verbose output is requested so
// the clients log the commands and requests they issue.
func ConfigureLogging(cfg *v1alpha1.Config) {
	if cfg != nil && cfg.Spec.Verbose {
		logrus.SetLevel(logrus.DebugLevel)

		return
	}

	logrus.SetLevel(logrus.InfoLevel)
}
