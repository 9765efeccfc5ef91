// Package store holds the three fixed-capacity, append-only tables
// the engine mutates: accounts, transfers, and pending-transfer side
// entries. Records live in flat slices in append order — the teacher's
// internal/store/postgres.go resolves records with indexed SQL
// queries; here the bounded capacities let a rebuilt-on-load id index
// sit alongside the slice instead of a database, giving O(1) find
// without persisting anything beyond the records themselves (spec.md
// §4.1, §9).
package store

import (
	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

// Default capacities per spec.md §4.1.
const (
	DefaultMaxAccounts         = 10_000
	DefaultMaxTransfers        = 50_000
	DefaultMaxPendingTransfers = 10_000
)

// Store is the process-wide table set. It owns every Account,
// Transfer, and PendingTransferInfo exclusively; records are never
// moved or deleted once appended.
type Store struct {
	accounts  []domain.Account
	transfers []domain.Transfer
	pending   []domain.PendingTransferInfo

	maxAccounts  int
	maxTransfers int
	maxPending   int

	// accountIndex/transferIndex/pendingIndex are secondary indexes
	// rebuilt deterministically on load and never persisted — spec.md
	// §9 explicitly allows this as long as it doesn't affect snapshot
	// bytes. They turn the hot-path find operations from O(n) scans
	// into O(1) lookups without changing any observable behavior.
	accountIndex  map[u128.U128]int
	transferIndex map[u128.U128]int
	pendingIndex  map[u128.U128]int
}

// New constructs a Store with the given table capacities.
func New(maxAccounts, maxTransfers, maxPending int) *Store {
	return &Store{
		accounts:      make([]domain.Account, 0, maxAccounts),
		transfers:     make([]domain.Transfer, 0, maxTransfers),
		pending:       make([]domain.PendingTransferInfo, 0, maxPending),
		maxAccounts:   maxAccounts,
		maxTransfers:  maxTransfers,
		maxPending:    maxPending,
		accountIndex:  make(map[u128.U128]int, maxAccounts),
		transferIndex: make(map[u128.U128]int, maxTransfers),
		pendingIndex:  make(map[u128.U128]int, maxPending),
	}
}

// NewDefault constructs a Store with spec.md's default capacities.
func NewDefault() *Store {
	return New(DefaultMaxAccounts, DefaultMaxTransfers, DefaultMaxPendingTransfers)
}

func (s *Store) AccountCount() int  { return len(s.accounts) }
func (s *Store) TransferCount() int { return len(s.transfers) }
func (s *Store) PendingCount() int  { return len(s.pending) }

func (s *Store) MaxAccounts() int  { return s.maxAccounts }
func (s *Store) MaxTransfers() int { return s.maxTransfers }
func (s *Store) MaxPending() int   { return s.maxPending }

// InsertAccount appends acc, returning false if the table is full.
func (s *Store) InsertAccount(acc domain.Account) bool {
	if len(s.accounts) >= s.maxAccounts {
		return false
	}
	s.accountIndex[acc.ID] = len(s.accounts)
	s.accounts = append(s.accounts, acc)
	return true
}

// InsertTransfer appends t, returning false if the table is full.
func (s *Store) InsertTransfer(t domain.Transfer) bool {
	if len(s.transfers) >= s.maxTransfers {
		return false
	}
	s.transferIndex[t.ID] = len(s.transfers)
	s.transfers = append(s.transfers, t)
	return true
}

// InsertPending appends p, returning false if the table is full.
func (s *Store) InsertPending(p domain.PendingTransferInfo) bool {
	if len(s.pending) >= s.maxPending {
		return false
	}
	s.pendingIndex[p.ID] = len(s.pending)
	s.pending = append(s.pending, p)
	return true
}

// FindAccount returns a pointer to the stored account with id, or nil.
func (s *Store) FindAccount(id u128.U128) *domain.Account {
	if idx, ok := s.accountIndex[id]; ok {
		return &s.accounts[idx]
	}
	return nil
}

// FindTransfer returns a pointer to the stored transfer with id, or nil.
func (s *Store) FindTransfer(id u128.U128) *domain.Transfer {
	if idx, ok := s.transferIndex[id]; ok {
		return &s.transfers[idx]
	}
	return nil
}

// FindPending returns a pointer to the pending info with id, or nil.
func (s *Store) FindPending(id u128.U128) *domain.PendingTransferInfo {
	if idx, ok := s.pendingIndex[id]; ok {
		return &s.pending[idx]
	}
	return nil
}

// Accounts returns the live backing slice of every stored account, in
// commit order. Callers must not retain it across a mutating call.
func (s *Store) Accounts() []domain.Account { return s.accounts }

// Transfers returns the live backing slice of every stored transfer,
// in commit order.
func (s *Store) Transfers() []domain.Transfer { return s.transfers }

// Pending returns the live backing slice of every pending-transfer
// side entry, in commit order.
func (s *Store) Pending() []domain.PendingTransferInfo { return s.pending }

// Reset empties all three tables and indexes, keeping capacities.
func (s *Store) Reset() {
	s.accounts = s.accounts[:0]
	s.transfers = s.transfers[:0]
	s.pending = s.pending[:0]
	s.accountIndex = make(map[u128.U128]int, s.maxAccounts)
	s.transferIndex = make(map[u128.U128]int, s.maxTransfers)
	s.pendingIndex = make(map[u128.U128]int, s.maxPending)
}

// LoadAccounts replaces the account table wholesale and rebuilds the
// secondary index. Used by hostapi.LoadState when restoring a decoded
// snapshot.
func (s *Store) LoadAccounts(accounts []domain.Account) {
	s.accounts = accounts
	s.accountIndex = make(map[u128.U128]int, len(accounts))
	for i, a := range accounts {
		s.accountIndex[a.ID] = i
	}
}

// LoadTransfers replaces the transfer table wholesale and rebuilds the
// secondary index.
func (s *Store) LoadTransfers(transfers []domain.Transfer) {
	s.transfers = transfers
	s.transferIndex = make(map[u128.U128]int, len(transfers))
	for i, t := range transfers {
		s.transferIndex[t.ID] = i
	}
}

// LoadPending replaces the pending table wholesale and rebuilds the
// secondary index.
func (s *Store) LoadPending(pending []domain.PendingTransferInfo) {
	s.pending = pending
	s.pendingIndex = make(map[u128.U128]int, len(pending))
	for i, p := range pending {
		s.pendingIndex[p.ID] = i
	}
}
