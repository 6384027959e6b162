package tsbx

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/askrepo/askrepo/internal/util/keylock"
)

// SandboxAPI is the part of the provisioning service a Provisioner needs.
// *Client implements it.
type SandboxAPI interface {
	FindByTag(ctx context.Context, tag string) (*SandboxRecord, error)
	Create(ctx context.Context, payload SandboxPayload) (*SandboxRecord, error)
}

// EnsureResult is the outcome of Provisioner.Ensure.
type EnsureResult struct {
	Tag     string
	Record  *SandboxRecord
	Created bool
}

// ProvisionerOption configures a Provisioner.
type ProvisionerOption func(*Provisioner)

// WithProvisionerLogger sets the provisioner's logger.
func WithProvisionerLogger(l logr.Logger) ProvisionerOption {
	return func(p *Provisioner) {
		p.log = l
	}
}

// WithProvisionerMetrics enables ensure outcome metrics.
func WithProvisionerMetrics(m *Metrics) ProvisionerOption {
	return func(p *Provisioner) {
		p.metrics = m
	}
}

// Provisioner creates a sandbox for an identity tag unless one already exists.
//
// Calls for the same tag are serialized within the process, so concurrent
// callers in one process never both create. Separate processes can still
// race between the check and the create; only the service itself can rule
// that out, e.g. by rejecting duplicate tags with 409, which Ensure treats
// as "already exists".
type Provisioner struct {
	api     SandboxAPI
	locks   keylock.Map
	log     logr.Logger
	metrics *Metrics
}

// NewProvisioner creates a provisioner backed by api.
func NewProvisioner(api SandboxAPI, opts ...ProvisionerOption) *Provisioner {
	p := &Provisioner{
		api: api,
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ensure returns the sandbox tagged with tag, creating it from payload when
// none exists. The tag is added to the payload's tags if missing. Errors
// from the service are returned unchanged so callers can classify them.
func (p *Provisioner) Ensure(ctx context.Context, tag string, payload SandboxPayload) (*EnsureResult, error) {
	if tag == "" {
		return nil, ErrEmptyTag
	}
	log := p.log.WithValues("tag", tag)

	unlock, err := p.locks.Lock(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("waiting for lock on tag %q: %w", tag, err)
	}
	defer unlock()

	existing, err := p.api.FindByTag(ctx, tag)
	if err != nil {
		p.metrics.recordEnsure(OutcomeFailed)
		return nil, err
	}
	if existing != nil {
		log.V(1).Info("sandbox already exists", "sandbox", existing.ID)
		p.metrics.recordEnsure(OutcomeExisting)
		return &EnsureResult{Tag: tag, Record: existing}, nil
	}

	if !payload.HasTag(tag) {
		payload = payload.WithTag(tag)
	}

	created, err := p.api.Create(ctx, payload)
	if err != nil {
		if IsConflict(err) {
			return p.resolveConflict(ctx, log, tag, err)
		}
		p.metrics.recordEnsure(OutcomeFailed)
		return nil, err
	}

	log.Info("provisioned sandbox", "sandbox", created.ID)
	p.metrics.recordEnsure(OutcomeCreated)
	return &EnsureResult{Tag: tag, Record: created, Created: true}, nil
}

// resolveConflict handles a 409 from create: another writer won the race,
// so the sandbox should now be visible by tag.
func (p *Provisioner) resolveConflict(ctx context.Context, log logr.Logger, tag string, conflict error) (*EnsureResult, error) {
	log.V(1).Info("create rejected as duplicate, looking up winner")

	existing, err := p.api.FindByTag(ctx, tag)
	if err != nil {
		p.metrics.recordEnsure(OutcomeFailed)
		return nil, err
	}
	if existing == nil {
		p.metrics.recordEnsure(OutcomeFailed)
		return nil, conflict
	}

	p.metrics.recordEnsure(OutcomeExisting)
	return &EnsureResult{Tag: tag, Record: existing}, nil
}
