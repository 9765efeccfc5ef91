package main

import (
	"context"
	"flag"
	"log"

	"github.com/punchamoorthee/ledgerops/internal/config"
	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/hostapi"
	"github.com/punchamoorthee/ledgerops/internal/snapshot"
	"github.com/punchamoorthee/ledgerops/internal/snapshotstore"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

// Where the teacher's cmd/seeder bulk-inserts rows straight into
// Postgres with CopyFrom, this seeder has no table to insert into:
// accounts only exist inside the engine, so it builds a
// create_accounts batch and a round of opening-balance transfers
// through the same hostapi entrypoints a real host would use, then
// writes the resulting state out to whichever snapshot backend is
// configured.
const (
	equityAccountID = 1
	totalAccounts   = 1000
	openingBalance  = 10_000
)

func main() {
	truncate := flag.Bool("truncate", false, "unused, kept for parity with the legacy seeder flag")
	flag.Parse()
	_ = truncate

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	srv := hostapi.NewServer()
	if rc := srv.Init(hostapi.SystemClock{}, cfg.MaxAccounts, cfg.MaxTransfers, cfg.MaxPending); rc != 0 {
		log.Fatalf("engine init failed: %d", rc)
	}

	log.Println("--- Seeding ledger ---")
	seedAccounts(srv)
	seedOpeningBalances(srv)

	if err := writeSnapshot(context.Background(), cfg, srv); err != nil {
		log.Fatalf("writing snapshot failed: %v", err)
	}
	log.Println("seed complete")
}

func seedAccounts(srv *hostapi.Server) {
	accounts := make([]domain.Account, 0, totalAccounts+1)
	accounts = append(accounts, domain.Account{ID: u128.FromU64(equityAccountID), Ledger: 1, Code: 1})
	for i := 1; i <= totalAccounts; i++ {
		accounts = append(accounts, domain.Account{ID: u128.FromU64(uint64(equityAccountID + i)), Ledger: 1, Code: 2})
	}

	buf := make([]byte, len(accounts)*snapshot.AccountSize)
	for i, a := range accounts {
		snapshot.EncodeAccount(buf[i*snapshot.AccountSize:(i+1)*snapshot.AccountSize], a)
	}
	failures, err := srv.CreateAccounts(buf)
	if err != nil {
		log.Fatalf("create_accounts failed: %v", err)
	}
	if len(failures) > 0 {
		log.Fatalf("create_accounts reported %d failures", len(failures)/6)
	}
	log.Printf("seeded %d accounts", len(accounts))
}

func seedOpeningBalances(srv *hostapi.Server) {
	transfers := make([]domain.Transfer, totalAccounts)
	for i := 0; i < totalAccounts; i++ {
		transfers[i] = domain.Transfer{
			ID:              u128.FromU64(uint64(i) + 1),
			DebitAccountID:  u128.FromU64(equityAccountID),
			CreditAccountID: u128.FromU64(uint64(equityAccountID + i + 1)),
			Amount:          u128.FromU64(openingBalance),
			Ledger:          1,
			Code:            1,
		}
	}
	buf := make([]byte, len(transfers)*snapshot.TransferSize)
	for i, t := range transfers {
		snapshot.EncodeTransfer(buf[i*snapshot.TransferSize:(i+1)*snapshot.TransferSize], t)
	}
	failures, err := srv.CreateTransfers(buf)
	if err != nil {
		log.Fatalf("create_transfers failed: %v", err)
	}
	if len(failures) > 0 {
		log.Fatalf("create_transfers reported %d failures", len(failures)/6)
	}
	log.Printf("posted %d opening-balance transfers", len(transfers))
}

func writeSnapshot(ctx context.Context, cfg *config.Config, srv *hostapi.Server) error {
	size, err := srv.StateSize()
	if err != nil {
		return err
	}
	buf := make([]byte, size)
	if _, err := srv.SaveState(buf); err != nil {
		return err
	}

	switch {
	case cfg.DBSource != "":
		ps, err := snapshotstore.NewPostgresStore(ctx, cfg.DBSource, "default")
		if err != nil {
			return err
		}
		defer ps.Close()
		return ps.Save(ctx, buf)
	case cfg.SnapshotPath != "":
		return snapshotstore.FileStore{Path: cfg.SnapshotPath}.Save(buf)
	default:
		log.Println("no snapshot backend configured; state was built but not persisted")
		return nil
	}
}
