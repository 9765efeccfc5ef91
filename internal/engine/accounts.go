package engine

import (
	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

// CreateAccounts validates and commits each proposed account in
// order, returning one BatchResult per record whose outcome is not
// ResultOK (spec.md §6's sparse batch convention — accounts report
// `exists` too, unlike transfers; see DESIGN.md OQ-4).
func (e *Engine) CreateAccounts(accounts []domain.Account) []BatchResult {
	base := e.clock.Now()
	var failures []BatchResult

	for i, proposed := range accounts {
		ts := e.nextTimestamp(base, i)
		result := e.createAccount(proposed, ts)
		if result != domain.ResultOK {
			failures = append(failures, BatchResult{Index: uint32(i), Result: result})
		}
	}
	return failures
}

// createAccount runs the validator/creator cascade of spec.md §4.2
// against a single proposed account and, on success, appends it.
func (e *Engine) createAccount(proposed domain.Account, ts uint64) domain.ResultCode {
	if !proposed.Reserved.IsZero() {
		return domain.ResultReservedField
	}
	if proposed.Flags.HasPadding() {
		return domain.ResultReservedFlag
	}
	if proposed.ID.IsZero() {
		return domain.ResultAccountIDMustNotBeZero
	}
	if proposed.ID.IsMax() {
		return domain.ResultAccountIDMustNotBeIntMax
	}
	if proposed.Flags.Has(domain.AccountFlagDebitsMustNotExceedCredits) &&
		proposed.Flags.Has(domain.AccountFlagCreditsMustNotExceedDebits) {
		return domain.ResultAccountFlagsAreMutuallyExclusive
	}
	if !proposed.DebitsPending.IsZero() {
		return domain.ResultAccountDebitsPendingMustBeZero
	}
	if !proposed.DebitsPosted.IsZero() {
		return domain.ResultAccountDebitsPostedMustBeZero
	}
	if !proposed.CreditsPending.IsZero() {
		return domain.ResultAccountCreditsPendingMustBeZero
	}
	if !proposed.CreditsPosted.IsZero() {
		return domain.ResultAccountCreditsPostedMustBeZero
	}
	if proposed.Ledger == 0 {
		return domain.ResultAccountLedgerMustNotBeZero
	}
	if proposed.Code == 0 {
		return domain.ResultAccountCodeMustNotBeZero
	}

	if existing := e.store.FindAccount(proposed.ID); existing != nil {
		return accountExistsDisambiguation(existing, &proposed)
	}

	proposed.DebitsPending = u128.Zero
	proposed.DebitsPosted = u128.Zero
	proposed.CreditsPending = u128.Zero
	proposed.CreditsPosted = u128.Zero
	proposed.Timestamp = ts

	if !e.store.InsertAccount(proposed) {
		return domain.ResultExceedsAccountCapacity
	}
	return domain.ResultOK
}

// accountExistsDisambiguation runs the ordered field-comparison
// cascade of spec.md §4.2 for an id collision: flags, user_data_128,
// user_data_64, user_data_32, ledger, code, in that order, returning
// the first mismatch or ResultAccountExists if every field agrees.
func accountExistsDisambiguation(existing, proposed *domain.Account) domain.ResultCode {
	switch {
	case existing.Flags != proposed.Flags:
		return domain.ResultAccountExistsWithDifferentFlags
	case !existing.UserData128.Equal(proposed.UserData128):
		return domain.ResultAccountExistsWithDifferentUserData128
	case existing.UserData64 != proposed.UserData64:
		return domain.ResultAccountExistsWithDifferentUserData64
	case existing.UserData32 != proposed.UserData32:
		return domain.ResultAccountExistsWithDifferentUserData32
	case existing.Ledger != proposed.Ledger:
		return domain.ResultAccountExistsWithDifferentLedger
	case existing.Code != proposed.Code:
		return domain.ResultAccountExistsWithDifferentCode
	default:
		return domain.ResultAccountExists
	}
}
