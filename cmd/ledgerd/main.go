package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/punchamoorthee/ledgerops/internal/config"
	"github.com/punchamoorthee/ledgerops/internal/hostapi"
	"github.com/punchamoorthee/ledgerops/internal/snapshotstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	srv := hostapi.NewServer()
	if rc := srv.Init(hostapi.SystemClock{}, cfg.MaxAccounts, cfg.MaxTransfers, cfg.MaxPending); rc != 0 {
		log.Fatalf("engine init failed: %d", rc)
	}
	srv.SetLogger(log.Default())

	backend, err := newSnapshotBackend(context.Background(), cfg)
	if err != nil {
		log.Fatalf("unable to set up snapshot backend: %v", err)
	}

	h := &handler{srv: srv, snapshots: backend}

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")

	r.HandleFunc("/batches/accounts", h.CreateAccounts).Methods("POST")
	r.HandleFunc("/batches/transfers", h.CreateTransfers).Methods("POST")
	r.HandleFunc("/accounts/{id}", h.GetAccount).Methods("GET")
	r.HandleFunc("/transfers/{id}", h.GetTransfer).Methods("GET")
	r.HandleFunc("/accounts/{id}/transfers", h.GetAccountTransfers).Methods("GET")
	r.HandleFunc("/snapshot/save", h.SaveSnapshot).Methods("POST")
	r.HandleFunc("/snapshot/load", h.LoadSnapshot).Methods("POST")

	log.Printf("ledgerd starting on :%s (env=%s)", cfg.Port, cfg.Env)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

// snapshotBackend is the minimal interface h.SaveSnapshot/LoadSnapshot
// need from either a FileStore or a PostgresStore.
type snapshotBackend interface {
	save(ctx context.Context, data []byte) error
	load(ctx context.Context) ([]byte, error)
}

type fileBackend struct{ fs snapshotstore.FileStore }

func (b fileBackend) save(_ context.Context, data []byte) error { return b.fs.Save(data) }
func (b fileBackend) load(_ context.Context) ([]byte, error)    { return b.fs.Load() }

type postgresBackend struct{ ps *snapshotstore.PostgresStore }

func (b postgresBackend) save(ctx context.Context, data []byte) error { return b.ps.Save(ctx, data) }
func (b postgresBackend) load(ctx context.Context) ([]byte, error)    { return b.ps.Load(ctx) }

// newSnapshotBackend picks a backend based on which of DBSource or
// SnapshotPath is set; config.Load already rejected having both.
func newSnapshotBackend(ctx context.Context, cfg *config.Config) (snapshotBackend, error) {
	switch {
	case cfg.DBSource != "":
		ps, err := snapshotstore.NewPostgresStore(ctx, cfg.DBSource, "default")
		if err != nil {
			return nil, err
		}
		return postgresBackend{ps: ps}, nil
	case cfg.SnapshotPath != "":
		return fileBackend{fs: snapshotstore.FileStore{Path: cfg.SnapshotPath}}, nil
	default:
		return nil, nil
	}
}
