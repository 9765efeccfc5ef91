package store

import (
	"testing"

	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

func TestInsertAndFindAccount(t *testing.T) {
	s := New(2, 2, 2)
	a := domain.Account{ID: u128.FromU64(1)}
	if !s.InsertAccount(a) {
		t.Fatalf("expected insert to succeed")
	}
	got := s.FindAccount(u128.FromU64(1))
	if got == nil || !got.ID.Equal(a.ID) {
		t.Fatalf("expected to find account 1, got %+v", got)
	}
	if s.FindAccount(u128.FromU64(2)) != nil {
		t.Fatalf("did not expect to find account 2")
	}
}

func TestInsertAccountCapacity(t *testing.T) {
	s := New(1, 1, 1)
	if !s.InsertAccount(domain.Account{ID: u128.FromU64(1)}) {
		t.Fatalf("expected first insert to succeed")
	}
	if s.InsertAccount(domain.Account{ID: u128.FromU64(2)}) {
		t.Fatalf("expected second insert to fail: table is full")
	}
	if s.AccountCount() != 1 {
		t.Fatalf("expected count 1, got %d", s.AccountCount())
	}
}

func TestLoadRebuildsIndex(t *testing.T) {
	s := New(4, 4, 4)
	s.LoadAccounts([]domain.Account{
		{ID: u128.FromU64(10)},
		{ID: u128.FromU64(20)},
	})
	if s.FindAccount(u128.FromU64(20)) == nil {
		t.Fatalf("expected to find account 20 after load")
	}
	if s.AccountCount() != 2 {
		t.Fatalf("expected count 2, got %d", s.AccountCount())
	}
}

func TestResetClearsTables(t *testing.T) {
	s := New(4, 4, 4)
	s.InsertAccount(domain.Account{ID: u128.FromU64(1)})
	s.Reset()
	if s.AccountCount() != 0 {
		t.Fatalf("expected count 0 after reset, got %d", s.AccountCount())
	}
	if s.FindAccount(u128.FromU64(1)) != nil {
		t.Fatalf("expected account 1 to be gone after reset")
	}
}
