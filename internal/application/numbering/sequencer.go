package numbering

import (
	"context"
	"errors"

	"github.com/erp/backoffice/internal/domain/numbering"
	"github.com/erp/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// maxAllocateAttempts bounds the retry loop when concurrent allocations in
// the same scope race for the same number.
const maxAllocateAttempts = 3

// Allocation is the outcome of a successful number allocation.
type Allocation struct {
	Number int64
	Prefix string
}

// Sequencer allocates document numbers. It never reserves numbers up front:
// the caller's insert closure runs inside the caller's transaction, and a
// unique index on (scope, number) is the arbiter between concurrent
// allocations. On a duplicate the whole attempt is retried with a fresh
// maximum, a bounded number of times.
type Sequencer struct {
	resolver numbering.SettingsResolver
	logger   *zap.Logger
}

// NewSequencer creates a Sequencer
func NewSequencer(resolver numbering.SettingsResolver, logger *zap.Logger) *Sequencer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sequencer{resolver: resolver, logger: logger}
}

// Allocate resolves the effective settings for the scope, computes the next
// number from currentMax, and runs insert with it. When insert reports a
// uniqueness conflict (shared.ErrConcurrencyConflict) the sequence
// currentMax -> insert is retried; any other error aborts immediately.
// currentMax must count soft-deleted documents, and both closures must run
// against the same transaction the final document is committed in.
func (s *Sequencer) Allocate(
	ctx context.Context,
	scope numbering.Scope,
	currentMax func(ctx context.Context) (int64, error),
	insert func(allocation Allocation) error,
) (Allocation, error) {
	settings, err := s.resolver.Resolve(ctx, scope)
	if err != nil {
		s.logger.Error("numbering settings resolution failed",
			zap.String("document_type", scope.DocumentType.String()),
			zap.String("organization_id", scope.OrganizationID.String()),
			zap.Error(err))
		return Allocation{}, shared.ErrSettingsResolution
	}

	starting := settings.EffectiveStartingNumber()
	prefix := settings.EffectivePrefix()

	for attempt := 1; attempt <= maxAllocateAttempts; attempt++ {
		max, err := currentMax(ctx)
		if err != nil {
			return Allocation{}, err
		}

		allocation := Allocation{
			Number: numbering.NextAfter(starting, max),
			Prefix: prefix,
		}

		err = insert(allocation)
		if err == nil {
			return allocation, nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return Allocation{}, err
		}

		s.logger.Warn("document number collision, retrying",
			zap.String("document_type", scope.DocumentType.String()),
			zap.Int64("number", allocation.Number),
			zap.Int("attempt", attempt))
	}

	return Allocation{}, shared.ErrNumberingConflict
}
