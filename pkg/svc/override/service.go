// Package override coordinates the cluster version override workflow: fetch
// the document, bootstrap the last-applied annotation when it is missing,
// merge or remove the requested override entry, and apply the result.
package override

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cvoctl-io/cvoctl/pkg/apis/config/v1alpha1"
	"github.com/cvoctl-io/cvoctl/pkg/clusterversion"
	"github.com/cvoctl-io/cvoctl/pkg/utils/notify"
)

// Client is the capability surface the service needs from a cluster: fetch
// the cluster version document and apply it back. Implementations live in
// pkg/client/oc (subprocess) and pkg/client/dynamic (API).
type Client interface {
	// Fetch retrieves the current cluster version document.
	Fetch(ctx context.Context) (*clusterversion.Document, error)
	// Apply submits a modified document, recording it as the last applied
	// configuration.
	Apply(ctx context.Context, doc *clusterversion.Document) error
	// ApplyRaw submits a payload verbatim. The bootstrap no-op apply uses
	// this so the server sees exactly what it served.
	ApplyRaw(ctx context.Context, data []byte) error
}

// Options configure a Service.
type Options struct {
	// Attempts bounds the annotation bootstrap loop. Values below one fall
	// back to v1alpha1.DefaultAttempts.
	Attempts int
	// RetryDelay is the pause between bootstrap attempts. Values at or
	// below zero fall back to v1alpha1.DefaultRetryDelay.
	RetryDelay time.Duration
	// Group and Kind stamp entries appended to the override list. Empty
	// values fall back to the v1alpha1 defaults.
	Group string
	Kind  string
	// Out receives progress notifications. Nil writes to standard output.
	Out io.Writer
}

// Service coordinates fetch, bootstrap, merge, and apply for the cluster
// version override list.
type Service struct {
	client     Client
	attempts   int
	retryDelay time.Duration
	group      string
	kind       string
	out        io.Writer
}

// Outcome reports what a mutating operation did.
type Outcome struct {
	// Changed is true when the document was modified and applied.
	Changed bool
	// Bootstrapped counts the no-op applies performed before the
	// last-applied annotation appeared.
	Bootstrapped int
}

// NewService creates a Service around the given client.
func NewService(client Client, opts Options) *Service {
	attempts := opts.Attempts
	if attempts < 1 {
		attempts = int(v1alpha1.DefaultAttempts)
	}

	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = v1alpha1.DefaultRetryDelay
	}

	group := opts.Group
	if group == "" {
		group = v1alpha1.DefaultOverrideGroup
	}

	kind := opts.Kind
	if kind == "" {
		kind = v1alpha1.DefaultOverrideKind
	}

	return &Service{
		client:     client,
		attempts:   attempts,
		retryDelay: retryDelay,
		group:      group,
		kind:       kind,
		out:        opts.Out,
	}
}

// Unmanage marks the workload identified by namespace and name as unmanaged
// in the override list. Running it against an already-unmanaged workload is
// a no-op and performs no apply.
func (s *Service) Unmanage(ctx context.Context, namespace, name string) (Outcome, error) {
	doc, bootstrapped, err := s.ensureAnnotated(ctx)
	if err != nil {
		return Outcome{Bootstrapped: bootstrapped}, err
	}

	entry := clusterversion.ComponentOverride{
		Group:     s.group,
		Kind:      s.kind,
		Name:      name,
		Namespace: namespace,
		Unmanaged: true,
	}

	modified, err := clusterversion.Merge(doc, entry)
	if err != nil {
		return Outcome{Bootstrapped: bootstrapped}, fmt.Errorf("merge override: %w", err)
	}

	if !modified {
		return Outcome{Bootstrapped: bootstrapped}, nil
	}

	err = s.client.Apply(ctx, doc)
	if err != nil {
		return Outcome{Bootstrapped: bootstrapped}, err
	}

	return Outcome{Changed: true, Bootstrapped: bootstrapped}, nil
}

// Manage removes the workload's override entries so reconciliation resumes.
// A workload without an override entry is a no-op and performs no apply.
func (s *Service) Manage(ctx context.Context, namespace, name string) (Outcome, error) {
	doc, bootstrapped, err := s.ensureAnnotated(ctx)
	if err != nil {
		return Outcome{Bootstrapped: bootstrapped}, err
	}

	modified, err := clusterversion.Remove(doc, namespace, name)
	if err != nil {
		return Outcome{Bootstrapped: bootstrapped}, fmt.Errorf("remove override: %w", err)
	}

	if !modified {
		return Outcome{Bootstrapped: bootstrapped}, nil
	}

	err = s.client.Apply(ctx, doc)
	if err != nil {
		return Outcome{Bootstrapped: bootstrapped}, err
	}

	return Outcome{Changed: true, Bootstrapped: bootstrapped}, nil
}

// List returns the current override entries. Reads need no annotation, so
// no bootstrap runs.
func (s *Service) List(ctx context.Context) ([]clusterversion.ComponentOverride, error) {
	doc, err := s.client.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := clusterversion.List(doc)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}

	return entries, nil
}

// ensureAnnotated fetches the document and guarantees it carries the
// last-applied-configuration annotation. While the annotation is missing it
// resubmits the fetched payload unmodified and refetches, up to the
// configured attempt budget.
func (s *Service) ensureAnnotated(ctx context.Context) (*clusterversion.Document, int, error) {
	doc, err := s.client.Fetch(ctx)
	if err != nil {
		return nil, 0, err
	}

	bootstrapped := 0

	for attempt := 1; attempt <= s.attempts; attempt++ {
		if doc.HasLastAppliedAnnotation() {
			return doc, bootstrapped, nil
		}

		if attempt > 1 {
			err = s.waitRetryDelay(ctx)
			if err != nil {
				return nil, bootstrapped, err
			}
		}

		notify.Activityf(s.out,
			"last-applied annotation missing; submitting no-op apply (attempt %d/%d)",
			attempt, s.attempts)

		raw := doc.Raw()
		if raw == nil {
			raw, err = doc.ToJSON()
			if err != nil {
				return nil, bootstrapped, fmt.Errorf("encode cluster version: %w", err)
			}
		}

		err = s.client.ApplyRaw(ctx, raw)
		if err != nil {
			return nil, bootstrapped, err
		}

		bootstrapped++

		doc, err = s.client.Fetch(ctx)
		if err != nil {
			return nil, bootstrapped, err
		}
	}

	if doc.HasLastAppliedAnnotation() {
		return doc, bootstrapped, nil
	}

	return nil, bootstrapped, fmt.Errorf(
		"last-applied annotation still missing after %d no-op applies: %w",
		s.attempts, ErrPreconditionTimeout,
	)
}

func (s *Service) waitRetryDelay(ctx context.Context) error {
	delay := time.NewTimer(s.retryDelay)

	select {
	case <-ctx.Done():
		if !delay.Stop() {
			<-delay.C
		}

		return fmt.Errorf("bootstrap retry cancelled: %w", ctx.Err())
	case <-delay.C:
	}

	return nil
}
