package hostapi

import (
	"testing"

	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/snapshot"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

type stepClock struct {
	now  uint64
	step uint64
}

func (c *stepClock) Now() uint64 {
	ts := c.now
	c.now += c.step
	return ts
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer()
	if rc := s.Init(&stepClock{now: 1000, step: 1000}, 16, 64, 16); rc != 0 {
		t.Fatalf("init failed: %d", rc)
	}
	return s
}

func encodeAccount(a domain.Account) []byte {
	buf := make([]byte, snapshot.AccountSize)
	snapshot.EncodeAccount(buf, a)
	return buf
}

func TestCreateAccountsBeforeInitFails(t *testing.T) {
	s := NewServer()
	if _, err := s.CreateAccounts(nil); err != ErrNotInitialized {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestCreateAccountsBadBufferSize(t *testing.T) {
	s := newTestServer(t)
	if _, err := s.CreateAccounts(make([]byte, 7)); err != ErrBadBufferSize {
		t.Fatalf("expected ErrBadBufferSize, got %v", err)
	}
}

func TestCreateAccountsSuccessIsEmptyResultBuffer(t *testing.T) {
	s := newTestServer(t)
	buf := encodeAccount(domain.Account{ID: u128.FromU64(1), Ledger: 1, Code: 1})
	failures, err := s.CreateAccounts(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("expected zero-length result buffer on full success, got %d bytes", len(failures))
	}
}

func TestCreateAccountsReportsFailureEntry(t *testing.T) {
	s := newTestServer(t)
	bad := encodeAccount(domain.Account{ID: u128.Zero, Ledger: 1, Code: 1})
	good := encodeAccount(domain.Account{ID: u128.FromU64(1), Ledger: 1, Code: 1})
	buf := append(append([]byte{}, bad...), good...)

	failures, err := s.CreateAccounts(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failures) != resultEntrySize {
		t.Fatalf("expected one failure entry, got %d bytes", len(failures))
	}
	index := failures[0]
	if index != 0 {
		t.Fatalf("expected failing index 0, got %d", index)
	}
	code := uint16(failures[4]) | uint16(failures[5])<<8
	if domain.ResultCode(code) != domain.ResultAccountIDMustNotBeZero {
		t.Fatalf("expected id_must_not_be_zero, got code %d", code)
	}
}

func TestSaveAndLoadStateRoundTrip(t *testing.T) {
	s := newTestServer(t)
	if _, err := s.CreateAccounts(encodeAccount(domain.Account{ID: u128.FromU64(1), Ledger: 1, Code: 1})); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	size, err := s.StateSize()
	if err != nil {
		t.Fatalf("state size failed: %v", err)
	}
	buf := make([]byte, size)
	n, err := s.SaveState(buf)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if n != size {
		t.Fatalf("expected %d bytes written, got %d", size, n)
	}

	restored := NewServer()
	restored.Init(&stepClock{now: 1, step: 1}, 16, 64, 16)
	if err := restored.LoadState(buf[:n]); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	lookup, err := restored.LookupAccounts(u128FromU64Bytes(1))
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(lookup) != snapshot.AccountSize {
		t.Fatalf("expected one account back, got %d bytes", len(lookup))
	}
}

func TestSaveStateBufferTooSmall(t *testing.T) {
	s := newTestServer(t)
	if _, err := s.SaveState(make([]byte, 1)); err != ErrBufferTooSmall {
		t.Fatalf("expected ErrBufferTooSmall, got %v", err)
	}
}

func TestLoadStateReportsPerTableCapacityError(t *testing.T) {
	s := newTestServer(t)
	if _, err := s.CreateAccounts(encodeAccount(domain.Account{ID: u128.FromU64(1), Ledger: 1, Code: 1})); err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	debit := encodeAccount(domain.Account{ID: u128.FromU64(2), Ledger: 1, Code: 1})
	if _, err := s.CreateAccounts(debit); err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	transferBuf := make([]byte, snapshot.TransferSize)
	snapshot.EncodeTransfer(transferBuf, domain.Transfer{
		ID: u128.FromU64(100), DebitAccountID: u128.FromU64(1), CreditAccountID: u128.FromU64(2),
		Amount: u128.FromU64(1), Ledger: 1, Code: 1,
	})
	if _, err := s.CreateTransfers(transferBuf); err != nil {
		t.Fatalf("create transfer failed: %v", err)
	}

	size, err := s.StateSize()
	if err != nil {
		t.Fatalf("state size failed: %v", err)
	}
	buf := make([]byte, size)
	n, err := s.SaveState(buf)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	restored := NewServer()
	restored.Init(&stepClock{now: 1, step: 1}, 16, 0, 16)
	if err := restored.LoadState(buf[:n]); err != ErrTooManyTransfers {
		t.Fatalf("expected ErrTooManyTransfers, got %v", err)
	}
}

func u128FromU64Bytes(v uint64) []byte {
	id := u128.FromU64(v)
	buf := make([]byte, 16)
	u128.PutLittleEndian(buf, id)
	return buf
}
