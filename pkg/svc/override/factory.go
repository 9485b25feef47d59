package override

import (
	"fmt"

	"github.com/cvoctl-io/cvoctl/pkg/apis/config/v1alpha1"
	dynamicclient "github.com/cvoctl-io/cvoctl/pkg/client/dynamic"
	"github.com/cvoctl-io/cvoctl/pkg/client/oc"
	"github.com/cvoctl-io/cvoctl/pkg/fsutil"
	"github.com/cvoctl-io/cvoctl/pkg/k8s"
	"github.com/cvoctl-io/cvoctl/pkg/utils/envvar"
	"k8s.io/cli-runtime/pkg/genericiooptions"
)

// Both client implementations must satisfy the capability surface.
var (
	_ Client = (*oc.Client)(nil)
	_ Client = (*dynamicclient.Client)(nil)
)

// Factory creates the cluster version client selected by the configuration.
type Factory interface {
	Create(cfg *v1alpha1.Config, streams genericiooptions.IOStreams) (Client, error)
}

// DefaultFactory builds clients for the supported modes.
type DefaultFactory struct{}

// Create selects the client implementation for the configured mode. The
// kubeconfig path is expanded here because values from config files or
// environment variables arrive with ${VAR} placeholders and ~ prefixes
// untouched.
func (DefaultFactory) Create(
	cfg *v1alpha1.Config,
	streams genericiooptions.IOStreams,
) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required: %w", ErrUnsupportedMode)
	}

	kubeconfig := cfg.Spec.Connection.Kubeconfig
	if kubeconfig != "" {
		expanded, err := fsutil.ExpandHomePath(envvar.Expand(kubeconfig))
		if err != nil {
			return nil, fmt.Errorf("resolve kubeconfig path: %w", err)
		}

		kubeconfig = expanded
	}

	switch cfg.Spec.Client.Mode {
	case v1alpha1.ModeExec:
		return oc.NewClient(streams, oc.Options{
			Binary:     cfg.Spec.Client.Binary,
			Kubeconfig: kubeconfig,
			Context:    cfg.Spec.Connection.Context,
		}), nil
	case v1alpha1.ModeAPI:
		dyn, err := k8s.NewDynamicClient(kubeconfig, cfg.Spec.Connection.Context)
		if err != nil {
			return nil, fmt.Errorf("create API client: %w", err)
		}

		return dynamicclient.NewClient(dyn), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMode, cfg.Spec.Client.Mode)
	}
}
