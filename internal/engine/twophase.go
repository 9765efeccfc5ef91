package engine

import (
	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

// pendingStateResult maps a pending entry's current (non-Active) state
// to the result code a post/void against it should report (spec.md
// §4.4).
func pendingStateResult(state domain.PendingState) domain.ResultCode {
	switch state {
	case domain.PendingPosted:
		return domain.ResultPendingTransferAlreadyPosted
	case domain.PendingVoided:
		return domain.ResultPendingTransferAlreadyVoided
	case domain.PendingExpired:
		return domain.ResultPendingTransferExpired
	default:
		return domain.ResultPendingTransferNotPending
	}
}

// resolvePending locates the pending side-table entry and original
// transfer a post/void references, running the shared checks of
// spec.md §4.4 steps 1-4. now is this record's assigned timestamp,
// used for the lazy expiration check.
func (e *Engine) resolvePending(proposed *domain.Transfer, debit, credit *domain.Account, now uint64) (*domain.PendingTransferInfo, *domain.Transfer, domain.ResultCode) {
	pending := e.store.FindPending(proposed.PendingID)
	if pending == nil {
		return nil, nil, domain.ResultPendingTransferNotFound
	}
	if pending.State != domain.PendingActive {
		return nil, nil, pendingStateResult(pending.State)
	}
	if pending.ExpiredAt(now) {
		pending.State = domain.PendingExpired
		return nil, nil, domain.ResultPendingTransferExpired
	}

	original := e.store.FindTransfer(proposed.PendingID)
	if original == nil {
		// The pending side-table entry cannot outlive its transfer
		// record in a correctly maintained store; defensive only.
		return nil, nil, domain.ResultPendingTransferNotFound
	}
	if !original.DebitAccountID.Equal(proposed.DebitAccountID) {
		return nil, nil, domain.ResultPendingTransferHasDifferentDebitAccountID
	}
	if !original.CreditAccountID.Equal(proposed.CreditAccountID) {
		return nil, nil, domain.ResultPendingTransferHasDifferentCreditAccountID
	}
	if original.Ledger != proposed.Ledger {
		return nil, nil, domain.ResultPendingTransferHasDifferentLedger
	}
	if original.Code != proposed.Code {
		return nil, nil, domain.ResultPendingTransferHasDifferentCode
	}
	return pending, original, domain.ResultOK
}

// postPendingTransfer implements spec.md §4.4's post branch: a full
// or partial completion of a pending transfer, moving the posted
// amount from the `_pending` counters to the `_posted` counters on
// both accounts.
func (e *Engine) postPendingTransfer(proposed domain.Transfer, debit, credit *domain.Account, ts uint64) domain.ResultCode {
	pending, _, code := e.resolvePending(&proposed, debit, credit, ts)
	if code != domain.ResultOK {
		return code
	}

	remaining := pending.Remaining()
	amount := proposed.Amount
	if amount.IsZero() {
		amount = remaining
	} else if amount.Greater(remaining) {
		return domain.ResultExceedsPendingTransferAmount
	}

	if e.store.TransferCount() >= e.store.MaxTransfers() {
		return domain.ResultExceedsTransferCapacity
	}

	debit.DebitsPending = u128.SaturatingSub(debit.DebitsPending, amount)
	credit.CreditsPending = u128.SaturatingSub(credit.CreditsPending, amount)
	debit.DebitsPosted, _ = u128.CheckedAdd(debit.DebitsPosted, amount)
	credit.CreditsPosted, _ = u128.CheckedAdd(credit.CreditsPosted, amount)

	pending.AmountPosted, _ = u128.CheckedAdd(pending.AmountPosted, amount)
	if pending.AmountPosted.Equal(pending.OriginalAmount) {
		pending.State = domain.PendingPosted
	}
	e.assertBalanceInvariants(debit, credit)

	proposed.Amount = amount
	proposed.Timestamp = ts
	e.store.InsertTransfer(proposed)
	return domain.ResultOK
}

// voidPendingTransfer implements spec.md §4.4's void branch: removes
// the full remainder of a pending transfer from both accounts'
// `_pending` counters without moving anything to `_posted`.
func (e *Engine) voidPendingTransfer(proposed domain.Transfer, debit, credit *domain.Account, ts uint64) domain.ResultCode {
	pending, _, code := e.resolvePending(&proposed, debit, credit, ts)
	if code != domain.ResultOK {
		return code
	}

	remaining := pending.Remaining()

	if e.store.TransferCount() >= e.store.MaxTransfers() {
		return domain.ResultExceedsTransferCapacity
	}

	debit.DebitsPending = u128.SaturatingSub(debit.DebitsPending, remaining)
	credit.CreditsPending = u128.SaturatingSub(credit.CreditsPending, remaining)
	pending.State = domain.PendingVoided
	e.assertBalanceInvariants(debit, credit)

	proposed.Amount = remaining
	proposed.Timestamp = ts
	e.store.InsertTransfer(proposed)
	return domain.ResultOK
}
