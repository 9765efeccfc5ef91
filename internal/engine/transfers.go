package engine

import (
	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

// CreateTransfers validates and commits each proposed transfer in
// order. Unlike CreateAccounts, a transfer that resolves to `exists`
// is suppressed from the failure list — treated as idempotent success
// — per spec.md §6's batch convention (DESIGN.md OQ-4 keeps this
// asymmetry as specified).
func (e *Engine) CreateTransfers(transfers []domain.Transfer) []BatchResult {
	base := e.clock.Now()
	var failures []BatchResult

	for i, proposed := range transfers {
		ts := e.nextTimestamp(base, i)
		result := e.createTransfer(proposed, ts)
		if result != domain.ResultOK && result != domain.ResultTransferExists {
			failures = append(failures, BatchResult{Index: uint32(i), Result: result})
		}
	}
	return failures
}

// createTransfer runs the full validator+applier pipeline of spec.md
// §4.3 (branching into §4.4 for post/void) against one proposed
// transfer. The first failing step returns; no account or transfer is
// mutated unless every step up to and including the final append
// succeeds. The one table change on a failing record is a post or void
// against an expired pending transfer, which marks that side-table
// entry Expired before reporting pending_transfer_expired.
func (e *Engine) createTransfer(proposed domain.Transfer, ts uint64) domain.ResultCode {
	// 1. Structural validation: padding, id, duplicate cascade.
	if proposed.Flags.HasPadding() {
		return domain.ResultReservedFlag
	}
	if proposed.ID.IsZero() {
		return domain.ResultTransferIDMustNotBeZero
	}
	if proposed.ID.IsMax() {
		return domain.ResultTransferIDMustNotBeIntMax
	}
	if existing := e.store.FindTransfer(proposed.ID); existing != nil {
		return transferExistsDisambiguation(existing, &proposed)
	}

	// 2. Flag cardinality: at most one of pending/post/void.
	phaseFlags := 0
	if proposed.Flags.Has(domain.TransferFlagPending) {
		phaseFlags++
	}
	if proposed.Flags.Has(domain.TransferFlagPostPendingTransfer) {
		phaseFlags++
	}
	if proposed.Flags.Has(domain.TransferFlagVoidPendingTransfer) {
		phaseFlags++
	}
	if phaseFlags > 1 {
		return domain.ResultTransferFlagsAreMutuallyExclusive
	}
	isPost := proposed.Flags.Has(domain.TransferFlagPostPendingTransfer)
	isVoid := proposed.Flags.Has(domain.TransferFlagVoidPendingTransfer)
	isPending := proposed.Flags.Has(domain.TransferFlagPending)

	// 3. Account id validity.
	if proposed.DebitAccountID.IsZero() {
		return domain.ResultDebitAccountIDMustNotBeZero
	}
	if proposed.DebitAccountID.IsMax() {
		return domain.ResultDebitAccountIDMustNotBeIntMax
	}
	if proposed.CreditAccountID.IsZero() {
		return domain.ResultCreditAccountIDMustNotBeZero
	}
	if proposed.CreditAccountID.IsMax() {
		return domain.ResultCreditAccountIDMustNotBeIntMax
	}
	if proposed.DebitAccountID.Equal(proposed.CreditAccountID) {
		return domain.ResultAccountsMustBeDifferent
	}

	// 4. pending_id constraints.
	if isPost || isVoid {
		if proposed.PendingID.IsZero() {
			return domain.ResultPendingIDMustNotBeZero
		}
		if proposed.PendingID.IsMax() {
			return domain.ResultPendingIDMustNotBeIntMax
		}
		if proposed.PendingID.Equal(proposed.ID) {
			return domain.ResultPendingIDMustNotEqualTransferID
		}
	} else if !proposed.PendingID.IsZero() {
		return domain.ResultPendingIDMustBeZero
	}

	// 5. timeout.
	if proposed.Timeout != 0 && !isPending {
		return domain.ResultTimeoutReservedForPendingTransfer
	}

	// 6. ledger/code.
	if proposed.Ledger == 0 {
		return domain.ResultTransferLedgerMustNotBeZero
	}
	if proposed.Code == 0 {
		return domain.ResultTransferCodeMustNotBeZero
	}

	// 7. Account resolution.
	debit := e.store.FindAccount(proposed.DebitAccountID)
	if debit == nil {
		return domain.ResultDebitAccountNotFound
	}
	credit := e.store.FindAccount(proposed.CreditAccountID)
	if credit == nil {
		return domain.ResultCreditAccountNotFound
	}

	// 8. Ledger agreement.
	if debit.Ledger != credit.Ledger || debit.Ledger != proposed.Ledger {
		return domain.ResultAccountsMustHaveTheSameLedger
	}

	// 9. Closure check.
	if debit.Flags.Has(domain.AccountFlagClosed) {
		return domain.ResultDebitAccountClosed
	}
	if credit.Flags.Has(domain.AccountFlagClosed) {
		return domain.ResultCreditAccountClosed
	}

	// 10. Branch to two-phase handler.
	if isPost {
		return e.postPendingTransfer(proposed, debit, credit, ts)
	}
	if isVoid {
		return e.voidPendingTransfer(proposed, debit, credit, ts)
	}

	// 11. Balance-constraint check with balancing adjustment.
	amount := proposed.Amount
	if debit.Flags.Has(domain.AccountFlagDebitsMustNotExceedCredits) {
		available := debit.AvailableDebits()
		if amount.Greater(available) {
			if !proposed.Flags.Has(domain.TransferFlagBalancingDebit) {
				return domain.ResultExceedsCredits
			}
			amount = available
			if amount.IsZero() {
				return domain.ResultExceedsCredits
			}
		}
	}
	if credit.Flags.Has(domain.AccountFlagCreditsMustNotExceedDebits) {
		available := credit.AvailableCredits()
		if amount.Greater(available) {
			if !proposed.Flags.Has(domain.TransferFlagBalancingCredit) {
				return domain.ResultExceedsDebits
			}
			amount = u128.Min(amount, available)
			if amount.IsZero() {
				return domain.ResultExceedsDebits
			}
		}
	}

	// 12. Overflow check.
	if isPending {
		if _, ok := u128.CheckedAdd(debit.DebitsPending, amount); !ok {
			return domain.ResultOverflowsDebitsPending
		}
		if _, ok := u128.CheckedAdd(credit.CreditsPending, amount); !ok {
			return domain.ResultOverflowsCreditsPending
		}
	} else {
		if _, ok := u128.CheckedAdd(debit.DebitsPosted, amount); !ok {
			return domain.ResultOverflowsDebitsPosted
		}
		if _, ok := u128.CheckedAdd(credit.CreditsPosted, amount); !ok {
			return domain.ResultOverflowsCreditsPosted
		}
	}

	// 13. Capacity.
	if e.store.TransferCount() >= e.store.MaxTransfers() {
		return domain.ResultExceedsTransferCapacity
	}
	if isPending && e.store.PendingCount() >= e.store.MaxPending() {
		return domain.ResultExceedsPendingCapacity
	}

	// 14. Apply.
	if isPending {
		debit.DebitsPending, _ = u128.CheckedAdd(debit.DebitsPending, amount)
		credit.CreditsPending, _ = u128.CheckedAdd(credit.CreditsPending, amount)
		expiresAt := uint64(0)
		if proposed.Timeout != 0 {
			expiresAt = ts + uint64(proposed.Timeout)*1_000_000_000
		}
		e.store.InsertPending(domain.PendingTransferInfo{
			ID:             proposed.ID,
			OriginalAmount: amount,
			AmountPosted:   u128.Zero,
			ExpiresAt:      expiresAt,
			State:          domain.PendingActive,
		})
	} else {
		debit.DebitsPosted, _ = u128.CheckedAdd(debit.DebitsPosted, amount)
		credit.CreditsPosted, _ = u128.CheckedAdd(credit.CreditsPosted, amount)
	}
	e.assertBalanceInvariants(debit, credit)

	// 15. Append the committed transfer.
	proposed.Amount = amount
	proposed.Timestamp = ts
	e.store.InsertTransfer(proposed)
	return domain.ResultOK
}

// transferExistsDisambiguation runs the ordered field-comparison
// cascade of spec.md §4.3 step 1 for an id collision.
func transferExistsDisambiguation(existing, proposed *domain.Transfer) domain.ResultCode {
	switch {
	case existing.Flags != proposed.Flags:
		return domain.ResultTransferExistsWithDifferentFlags
	case !existing.DebitAccountID.Equal(proposed.DebitAccountID):
		return domain.ResultTransferExistsWithDifferentDebitAccountID
	case !existing.CreditAccountID.Equal(proposed.CreditAccountID):
		return domain.ResultTransferExistsWithDifferentCreditAccountID
	case !existing.Amount.Equal(proposed.Amount):
		return domain.ResultTransferExistsWithDifferentAmount
	case !existing.PendingID.Equal(proposed.PendingID):
		return domain.ResultTransferExistsWithDifferentPendingID
	case !existing.UserData128.Equal(proposed.UserData128):
		return domain.ResultTransferExistsWithDifferentUserData128
	case existing.UserData64 != proposed.UserData64:
		return domain.ResultTransferExistsWithDifferentUserData64
	case existing.UserData32 != proposed.UserData32:
		return domain.ResultTransferExistsWithDifferentUserData32
	case existing.Timeout != proposed.Timeout:
		return domain.ResultTransferExistsWithDifferentTimeout
	case existing.Code != proposed.Code:
		return domain.ResultTransferExistsWithDifferentCode
	default:
		return domain.ResultTransferExists
	}
}
