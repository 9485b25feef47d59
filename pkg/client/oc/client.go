// Package oc reads and applies the cluster version through the OpenShift CLI.
package oc

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cvoctl-io/cvoctl/pkg/clusterversion"
	"github.com/cvoctl-io/cvoctl/pkg/utils/runner"
	"github.com/sirupsen/logrus"
	"k8s.io/cli-runtime/pkg/genericiooptions"
)

// DefaultBinary is the CLI invoked when Options does not name one.
const DefaultBinary = "oc"

// resourceArg is the resource/name argument oc operates on.
const resourceArg = "clusterversion/" + clusterversion.ResourceName

// Options configure how the client invokes the OpenShift CLI.
type Options struct {
	// Binary is the executable to invoke. Defaults to DefaultBinary.
	Binary string
	// Kubeconfig is passed as --kubeconfig when set.
	Kubeconfig string
	// Context is passed as --context when set.
	Context string
	// Runner executes the CLI. Defaults to an exec-backed runner that
	// mirrors stderr to the client's error stream so oc warnings stay
	// visible.
	Runner runner.CommandRunner
}

// Client accesses the cluster version document by shelling out to oc,
// matching what an operator would do by hand.
type Client struct {
	binary string
	args   []string
	runner runner.CommandRunner
}

// NewClient creates an oc-backed cluster version client.
func NewClient(streams genericiooptions.IOStreams, opts Options) *Client {
	binary := opts.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	commandRunner := opts.Runner
	if commandRunner == nil {
		commandRunner = runner.NewExecCommandRunner(nil, streams.ErrOut)
	}

	var globalArgs []string

	if opts.Kubeconfig != "" {
		globalArgs = append(globalArgs, "--kubeconfig", opts.Kubeconfig)
	}

	if opts.Context != "" {
		globalArgs = append(globalArgs, "--context", opts.Context)
	}

	return &Client{binary: binary, args: globalArgs, runner: commandRunner}
}

// Fetch retrieves the cluster version document as oc reports it. The raw
// payload is retained on the document so it can be replayed verbatim.
func (c *Client) Fetch(ctx context.Context) (*clusterversion.Document, error) {
	args := c.buildArgs("get", resourceArg, "-o", "json")

	logrus.WithField("args", args).Debug("fetching cluster version via oc")

	res, err := c.runner.Run(ctx, nil, c.binary, args...)
	if err != nil {
		return nil, commandError("fetch cluster version", err, res.Stderr)
	}

	doc, err := clusterversion.FromJSON([]byte(res.Stdout))
	if err != nil {
		return nil, fmt.Errorf("decode cluster version: %w", err)
	}

	return doc, nil
}

// Apply submits the document through oc apply, which records the
// last-applied-configuration annotation as a side effect.
func (c *Client) Apply(ctx context.Context, doc *clusterversion.Document) error {
	data, err := doc.ToJSON()
	if err != nil {
		return fmt.Errorf("encode cluster version: %w", err)
	}

	return c.applyBytes(ctx, data)
}

// ApplyRaw submits a payload byte for byte, without re-encoding. The
// bootstrap no-op apply uses this so the server sees exactly what it served.
func (c *Client) ApplyRaw(ctx context.Context, data []byte) error {
	return c.applyBytes(ctx, data)
}

func (c *Client) applyBytes(ctx context.Context, data []byte) error {
	args := c.buildArgs("apply", "-f", "-")

	logrus.WithField("args", args).Debug("applying cluster version via oc")

	res, err := c.runner.Run(ctx, bytes.NewReader(data), c.binary, args...)
	if err != nil {
		return commandError("apply cluster version", err, res.Stderr)
	}

	return nil
}

// buildArgs prefixes the verb arguments with the configured connection flags.
func (c *Client) buildArgs(verb ...string) []string {
	args := make([]string, 0, len(c.args)+len(verb))
	args = append(args, c.args...)
	args = append(args, verb...)

	return args
}

// commandError wraps a runner failure, appending whatever oc wrote to
// stderr since that is where the actionable message usually lands.
func commandError(action string, err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return fmt.Errorf("%s: %w", action, err)
	}

	return fmt.Errorf("%s: %w\n%s", action, err, stderr)
}
