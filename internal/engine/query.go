package engine

import (
	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

// LookupAccounts resolves each id in order, silently omitting any id
// that doesn't exist (spec.md §4.6).
func (e *Engine) LookupAccounts(ids []u128.U128) []domain.Account {
	results := make([]domain.Account, 0, len(ids))
	for _, id := range ids {
		if acc := e.store.FindAccount(id); acc != nil {
			results = append(results, *acc)
		}
	}
	return results
}

// LookupTransfers is the symmetric point-lookup over transfers.
func (e *Engine) LookupTransfers(ids []u128.U128) []domain.Transfer {
	results := make([]domain.Transfer, 0, len(ids))
	for _, id := range ids {
		if t := e.store.FindTransfer(id); t != nil {
			results = append(results, *t)
		}
	}
	return results
}

// AccountTransfers scans transfers in commit order, returning every
// transfer whose debit or credit account equals id, stopping once max
// results have been collected (spec.md §4.6). A max of 0 means
// unbounded.
func (e *Engine) AccountTransfers(id u128.U128, max int) []domain.Transfer {
	var results []domain.Transfer
	for _, t := range e.store.Transfers() {
		if t.DebitAccountID.Equal(id) || t.CreditAccountID.Equal(id) {
			results = append(results, t)
			if max > 0 && len(results) >= max {
				break
			}
		}
	}
	return results
}
