package engine

import (
	"testing"

	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/store"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(store.New(16, 64, 16), newFakeClock())
}

func mustOK(t *testing.T, failures []BatchResult) {
	t.Helper()
	if len(failures) != 0 {
		t.Fatalf("expected no failures, got %+v", failures)
	}
}

func account(id uint64, ledger uint32, flags domain.AccountFlags) domain.Account {
	return domain.Account{ID: u128.FromU64(id), Ledger: ledger, Code: 1, Flags: flags}
}

func transfer(id, debit, credit, amount uint64, ledger uint32, flags domain.TransferFlags) domain.Transfer {
	return domain.Transfer{
		ID:              u128.FromU64(id),
		DebitAccountID:  u128.FromU64(debit),
		CreditAccountID: u128.FromU64(credit),
		Amount:          u128.FromU64(amount),
		Ledger:          ledger,
		Code:            1,
		Flags:           flags,
	}
}

// Scenario 1: basic transfer.
func TestScenarioBasicTransfer(t *testing.T) {
	e := newTestEngine(t)
	mustOK(t, e.CreateAccounts([]domain.Account{
		account(1, 1, 0),
		account(2, 1, 0),
	}))
	mustOK(t, e.CreateTransfers([]domain.Transfer{
		transfer(100, 1, 2, 50, 1, 0),
	}))

	a := e.Store().FindAccount(u128.FromU64(1))
	b := e.Store().FindAccount(u128.FromU64(2))
	if a.DebitsPosted.Lo != 50 {
		t.Fatalf("expected A.debits_posted=50, got %+v", a.DebitsPosted)
	}
	if b.CreditsPosted.Lo != 50 {
		t.Fatalf("expected B.credits_posted=50, got %+v", b.CreditsPosted)
	}
}

// Scenario 2: two-phase post, including a zero-amount post completing
// the remainder.
func TestScenarioTwoPhasePost(t *testing.T) {
	e := newTestEngine(t)
	mustOK(t, e.CreateAccounts([]domain.Account{account(1, 1, 0), account(2, 1, 0)}))

	pendingXfer := transfer(101, 1, 2, 100, 1, domain.TransferFlagPending)
	pendingXfer.Timeout = 60
	mustOK(t, e.CreateTransfers([]domain.Transfer{pendingXfer}))

	a := e.Store().FindAccount(u128.FromU64(1))
	if a.DebitsPending.Lo != 100 {
		t.Fatalf("expected A.debits_pending=100, got %+v", a.DebitsPending)
	}

	partial := transfer(102, 1, 2, 40, 1, domain.TransferFlagPostPendingTransfer)
	partial.PendingID = u128.FromU64(101)
	mustOK(t, e.CreateTransfers([]domain.Transfer{partial}))

	rest := transfer(103, 1, 2, 0, 1, domain.TransferFlagPostPendingTransfer)
	rest.PendingID = u128.FromU64(101)
	mustOK(t, e.CreateTransfers([]domain.Transfer{rest}))

	a = e.Store().FindAccount(u128.FromU64(1))
	if !a.DebitsPending.IsZero() {
		t.Fatalf("expected A.debits_pending=0, got %+v", a.DebitsPending)
	}
	if a.DebitsPosted.Lo != 100 {
		t.Fatalf("expected A.debits_posted=100, got %+v", a.DebitsPosted)
	}

	pending := e.Store().FindPending(u128.FromU64(101))
	if pending.State != domain.PendingPosted {
		t.Fatalf("expected pending state Posted, got %s", pending.State)
	}
}

// Scenario 3: void.
func TestScenarioVoid(t *testing.T) {
	e := newTestEngine(t)
	mustOK(t, e.CreateAccounts([]domain.Account{account(1, 1, 0), account(2, 1, 0)}))

	pendingXfer := transfer(200, 1, 2, 75, 1, domain.TransferFlagPending)
	mustOK(t, e.CreateTransfers([]domain.Transfer{pendingXfer}))

	voidXfer := transfer(201, 1, 2, 0, 1, domain.TransferFlagVoidPendingTransfer)
	voidXfer.PendingID = u128.FromU64(200)
	mustOK(t, e.CreateTransfers([]domain.Transfer{voidXfer}))

	a := e.Store().FindAccount(u128.FromU64(1))
	b := e.Store().FindAccount(u128.FromU64(2))
	if !a.DebitsPending.IsZero() || !b.CreditsPending.IsZero() {
		t.Fatalf("expected pending counters zeroed, got A=%+v B=%+v", a.DebitsPending, b.CreditsPending)
	}

	completion := e.Store().FindTransfer(u128.FromU64(201))
	if completion.Amount.Lo != 75 {
		t.Fatalf("expected completion transfer amount=75, got %+v", completion.Amount)
	}
	pending := e.Store().FindPending(u128.FromU64(200))
	if pending.State != domain.PendingVoided {
		t.Fatalf("expected pending state Voided, got %s", pending.State)
	}
}

// Scenario 4: balance limit with balancing adjustment.
func TestScenarioBalanceLimit(t *testing.T) {
	e := newTestEngine(t)
	mustOK(t, e.CreateAccounts([]domain.Account{
		account(1, 1, domain.AccountFlagDebitsMustNotExceedCredits),
		account(2, 1, 0),
	}))

	// Credit A with 30 (debit B, credit A).
	mustOK(t, e.CreateTransfers([]domain.Transfer{transfer(300, 2, 1, 30, 1, 0)}))

	failures := e.CreateTransfers([]domain.Transfer{transfer(301, 1, 2, 50, 1, 0)})
	if len(failures) != 1 || failures[0].Result != domain.ResultExceedsCredits {
		t.Fatalf("expected exceeds_credits, got %+v", failures)
	}

	mustOK(t, e.CreateTransfers([]domain.Transfer{
		transfer(302, 1, 2, 50, 1, domain.TransferFlagBalancingDebit),
	}))

	committed := e.Store().FindTransfer(u128.FromU64(302))
	if committed.Amount.Lo != 30 {
		t.Fatalf("expected stored amount=30, got %+v", committed.Amount)
	}
	a := e.Store().FindAccount(u128.FromU64(1))
	if a.DebitsPosted.Lo != 30 {
		t.Fatalf("expected A.debits_posted=30, got %+v", a.DebitsPosted)
	}
}

// Scenario 5: idempotency.
func TestScenarioIdempotency(t *testing.T) {
	e := newTestEngine(t)
	batch := []domain.Account{account(1, 1, 0)}

	mustOK(t, e.CreateAccounts(batch))
	failures := e.CreateAccounts(batch)
	if len(failures) != 1 || failures[0].Result != domain.ResultAccountExists {
		t.Fatalf("expected exists on second submission, got %+v", failures)
	}
	if e.Store().AccountCount() != 1 {
		t.Fatalf("expected exactly one account, got %d", e.Store().AccountCount())
	}
}

func TestTransferIdempotencyIsSuppressed(t *testing.T) {
	e := newTestEngine(t)
	mustOK(t, e.CreateAccounts([]domain.Account{account(1, 1, 0), account(2, 1, 0)}))
	batch := []domain.Transfer{transfer(400, 1, 2, 10, 1, 0)}

	mustOK(t, e.CreateTransfers(batch))
	// Exists is suppressed for transfers, per spec.md §6.
	mustOK(t, e.CreateTransfers(batch))
	if e.Store().TransferCount() != 1 {
		t.Fatalf("expected exactly one transfer, got %d", e.Store().TransferCount())
	}
}

func TestAccountIDBoundaries(t *testing.T) {
	e := newTestEngine(t)

	failures := e.CreateAccounts([]domain.Account{{ID: u128.Zero, Ledger: 1, Code: 1}})
	if len(failures) != 1 || failures[0].Result != domain.ResultAccountIDMustNotBeZero {
		t.Fatalf("expected id_must_not_be_zero, got %+v", failures)
	}

	failures = e.CreateAccounts([]domain.Account{{ID: u128.Max, Ledger: 1, Code: 1}})
	if len(failures) != 1 || failures[0].Result != domain.ResultAccountIDMustNotBeIntMax {
		t.Fatalf("expected id_must_not_be_int_max, got %+v", failures)
	}
}

func TestBalancingDebitZeroAvailable(t *testing.T) {
	e := newTestEngine(t)
	mustOK(t, e.CreateAccounts([]domain.Account{
		account(1, 1, domain.AccountFlagDebitsMustNotExceedCredits),
		account(2, 1, 0),
	}))

	failures := e.CreateTransfers([]domain.Transfer{
		transfer(500, 1, 2, 10, 1, domain.TransferFlagBalancingDebit),
	})
	if len(failures) != 1 || failures[0].Result != domain.ResultExceedsCredits {
		t.Fatalf("expected exceeds_credits on zero available, got %+v", failures)
	}
}

func TestConservationInvariant(t *testing.T) {
	e := newTestEngine(t)
	mustOK(t, e.CreateAccounts([]domain.Account{account(1, 1, 0), account(2, 1, 0), account(3, 1, 0)}))
	mustOK(t, e.CreateTransfers([]domain.Transfer{
		transfer(600, 1, 2, 20, 1, 0),
		transfer(601, 2, 3, 5, 1, 0),
	}))

	var totalDebitsPosted, totalCreditsPosted u128.U128
	for _, a := range e.Store().Accounts() {
		totalDebitsPosted, _ = u128.CheckedAdd(totalDebitsPosted, a.DebitsPosted)
		totalCreditsPosted, _ = u128.CheckedAdd(totalCreditsPosted, a.CreditsPosted)
	}
	if !totalDebitsPosted.Equal(totalCreditsPosted) {
		t.Fatalf("double-entry conservation broken: debits=%+v credits=%+v", totalDebitsPosted, totalCreditsPosted)
	}
}

func TestTimestampsStrictlyIncreasing(t *testing.T) {
	e := newTestEngine(t)
	mustOK(t, e.CreateAccounts([]domain.Account{account(1, 1, 0), account(2, 1, 0)}))
	mustOK(t, e.CreateTransfers([]domain.Transfer{
		transfer(700, 1, 2, 1, 1, 0),
		transfer(701, 1, 2, 1, 1, 0),
		transfer(702, 1, 2, 1, 1, 0),
	}))

	var last uint64
	for _, tr := range e.Store().Transfers() {
		if tr.Timestamp <= last {
			t.Fatalf("timestamps not strictly increasing: %d after %d", tr.Timestamp, last)
		}
		last = tr.Timestamp
	}
}

func TestAccountTransfersEnumeration(t *testing.T) {
	e := newTestEngine(t)
	mustOK(t, e.CreateAccounts([]domain.Account{account(1, 1, 0), account(2, 1, 0), account(3, 1, 0)}))
	mustOK(t, e.CreateTransfers([]domain.Transfer{
		transfer(800, 1, 2, 1, 1, 0),
		transfer(801, 3, 1, 1, 1, 0),
		transfer(802, 2, 3, 1, 1, 0),
	}))

	results := e.AccountTransfers(u128.FromU64(1), 0)
	if len(results) != 2 {
		t.Fatalf("expected 2 transfers touching account 1, got %d", len(results))
	}
	if results[0].ID.Lo != 800 || results[1].ID.Lo != 801 {
		t.Fatalf("expected commit order 800,801, got %+v", results)
	}
}

func TestLookupAccountsOmitsMissing(t *testing.T) {
	e := newTestEngine(t)
	mustOK(t, e.CreateAccounts([]domain.Account{account(1, 1, 0)}))

	results := e.LookupAccounts([]u128.U128{u128.FromU64(1), u128.FromU64(99)})
	if len(results) != 1 || results[0].ID.Lo != 1 {
		t.Fatalf("expected only account 1, got %+v", results)
	}
}

func TestPendingTransferExpired(t *testing.T) {
	e := newTestEngine(t)
	mustOK(t, e.CreateAccounts([]domain.Account{account(1, 1, 0), account(2, 1, 0)}))

	pendingXfer := transfer(900, 1, 2, 10, 1, domain.TransferFlagPending)
	pendingXfer.Timeout = 1 // 1 second
	mustOK(t, e.CreateTransfers([]domain.Transfer{pendingXfer}))

	// Force the clock far enough forward that the deadline has passed.
	e.clock.(*fakeClock).now += 2_000_000_000

	postXfer := transfer(901, 1, 2, 0, 1, domain.TransferFlagPostPendingTransfer)
	postXfer.PendingID = u128.FromU64(900)
	failures := e.CreateTransfers([]domain.Transfer{postXfer})
	if len(failures) != 1 || failures[0].Result != domain.ResultPendingTransferExpired {
		t.Fatalf("expected pending_transfer_expired, got %+v", failures)
	}
}

func TestAccountCapacityExhaustion(t *testing.T) {
	e := New(store.New(1, 4, 4), newFakeClock())
	mustOK(t, e.CreateAccounts([]domain.Account{account(1, 1, 0)}))

	failures := e.CreateAccounts([]domain.Account{account(2, 1, 0)})
	if len(failures) != 1 || failures[0].Result != domain.ResultExceedsAccountCapacity {
		t.Fatalf("expected exceeds_account_capacity, got %+v", failures)
	}
}
