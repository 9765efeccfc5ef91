// Package engine implements the central algorithm of the system: the
// account and transfer validators, the balancing/overflow rules, the
// two-phase post/void completion engine, and the query surface. It is
// the direct analog of the teacher's internal/service.TransferService,
// generalized from a single Postgres-transaction-backed transfer into
// the full batched, two-phase, multi-account-flag state machine
// spec.md §4 describes — and, unlike the teacher, it owns no database
// handle: every mutation lands in the in-memory internal/store tables.
package engine

import (
	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/store"
)

// Clock is the host-provided time source the engine treats as an
// atomic, non-blocking collaborator (spec.md §6).
type Clock interface {
	Now() uint64
}

// Logger receives rare diagnostic notices, e.g. a host clock that
// failed to advance between batches. It is satisfied directly by
// *log.Logger, matching the teacher's stdlib-only logging (see
// DESIGN.md).
type Logger interface {
	Printf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// Engine is the process-wide, single-threaded state machine. The host
// boundary (internal/hostapi) is responsible for serializing all calls
// into it; Engine itself holds no lock (spec.md §9's re-architecture
// note: "make the engine an owned value" and push synchronization to
// the shim).
type Engine struct {
	store *store.Store
	clock Clock
	log   Logger

	// lastTimestamp is the most recently assigned timestamp, advanced
	// for every record a batch processes whether or not that record
	// ends up committed; it is also the "commit_timestamp" of spec.md.
	lastTimestamp uint64
}

// New constructs an Engine over an existing store.
func New(s *store.Store, clock Clock) *Engine {
	return &Engine{store: s, clock: clock, log: nopLogger{}}
}

// SetLogger overrides the diagnostic logger; nil restores the no-op.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.log = nopLogger{}
		return
	}
	e.log = l
}

// Store exposes the backing tables for the query surface and the
// snapshot codec.
func (e *Engine) Store() *store.Store { return e.store }

// CommitTimestamp is the engine's monotonic clock position: the
// timestamp assigned to the most recently processed record in a batch,
// whether or not that record was ultimately committed (a later record
// in the same batch failing validation never walks it backwards)
// (spec.md §3, §5).
func (e *Engine) CommitTimestamp() uint64 { return e.lastTimestamp }

// RestoreCommitTimestamp is used only by hostapi.LoadState when
// restoring a decoded snapshot; it must never be called mid-batch.
func (e *Engine) RestoreCommitTimestamp(ts uint64) { e.lastTimestamp = ts }

// nextTimestamp advances the monotonic clock by one tick. base is
// sampled once per batch by the caller; index is this record's
// position within that batch. If the host clock failed to advance
// past the last committed timestamp (OQ-3), the engine clamps forward
// by one and logs once, rather than allowing a collision or a
// decrease.
func (e *Engine) nextTimestamp(base uint64, index int) uint64 {
	candidate := base + uint64(index)
	if candidate <= e.lastTimestamp {
		candidate = e.lastTimestamp + 1
		e.log.Printf("engine: host clock did not advance past commit_timestamp=%d, clamped to %d", e.lastTimestamp, candidate)
	}
	e.lastTimestamp = candidate
	return candidate
}

// BatchResult is one non-OK outcome within a batch, reported back to
// the host boundary for sparse encoding (spec.md §6).
type BatchResult struct {
	Index  uint32
	Result domain.ResultCode
}

// assertBalanceInvariants re-checks the exceeds_credits/exceeds_debits
// constraints on debit and credit after a commit that already passed
// the pipeline's own balance check (spec.md §3, §8). A violation here
// means the validator let something through it shouldn't have; it is
// not a client-facing error, just a diagnostic trip wire.
func (e *Engine) assertBalanceInvariants(debit, credit *domain.Account) {
	if debit.Flags.Has(domain.AccountFlagDebitsMustNotExceedCredits) && debit.ExceedsCredits() {
		e.log.Printf("engine: invariant violated: account %+v exceeds_credits after commit", debit.ID)
	}
	if credit.Flags.Has(domain.AccountFlagCreditsMustNotExceedDebits) && credit.ExceedsDebits() {
		e.log.Printf("engine: invariant violated: account %+v exceeds_debits after commit", credit.ID)
	}
}
