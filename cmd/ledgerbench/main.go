package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/hostapi"
	"github.com/punchamoorthee/ledgerops/internal/snapshot"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

// Unlike the teacher's cmd/benchmark, which drives a running HTTP
// server with an *http.Client pool, this benchmark embeds the engine
// directly: the core is in-process and single-threaded behind
// hostapi.Server's lock, so there is no network hop to measure.
// Concurrent workers exercise that lock the way concurrent HTTP
// handlers would.
var (
	concurrency   int
	duration      time.Duration
	workload      string
	totalAccounts int
)

var (
	totalRequests uint64
	successPosted uint64
	existsReplay  uint64
	failOther     uint64
)

func init() {
	flag.IntVar(&concurrency, "workers", 10, "Number of concurrent workers")
	flag.DurationVar(&duration, "duration", 10*time.Second, "Benchmark duration")
	flag.StringVar(&workload, "workload", "uniform", "Workload type: uniform | hotspot")
	flag.IntVar(&totalAccounts, "accounts", 1000, "Number of accounts to seed before the run")
}

func main() {
	flag.Parse()
	log.Printf("Starting benchmark: %s | workers: %d | duration: %s", workload, concurrency, duration)

	srv := hostapi.NewServer()
	if rc := srv.Init(hostapi.SystemClock{}, totalAccounts+1, 10_000_000, 100_000); rc != 0 {
		log.Fatalf("engine init failed: %d", rc)
	}
	seedAccounts(srv, totalAccounts)

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go worker(srv, &wg, start, int64(i))
	}
	wg.Wait()

	printResults(time.Since(start))
}

func seedAccounts(srv *hostapi.Server, n int) {
	accounts := make([]domain.Account, n)
	for i := range accounts {
		accounts[i] = domain.Account{
			ID:     u128.FromU64(uint64(i) + 1),
			Ledger: 1,
			Code:   1,
		}
	}
	buf := make([]byte, len(accounts)*snapshot.AccountSize)
	for i, a := range accounts {
		snapshot.EncodeAccount(buf[i*snapshot.AccountSize:(i+1)*snapshot.AccountSize], a)
	}
	if _, err := srv.CreateAccounts(buf); err != nil {
		log.Fatalf("seeding accounts failed: %v", err)
	}
	log.Printf("seeded %d accounts", n)
}

func worker(srv *hostapi.Server, wg *sync.WaitGroup, start time.Time, seed int64) {
	defer wg.Done()
	rng := rand.New(rand.NewSource(seed + time.Now().UnixNano()))
	next := uint64(1)

	for time.Since(start) < duration {
		from, to := pickAccounts(rng)
		transferID := u128.FromU64(uint64(seed)<<48 | next)
		next++

		buf := make([]byte, snapshot.TransferSize)
		snapshot.EncodeTransfer(buf, domain.Transfer{
			ID:              transferID,
			DebitAccountID:  u128.FromU64(uint64(from)),
			CreditAccountID: u128.FromU64(uint64(to)),
			Amount:          u128.FromU64(100),
			Ledger:          1,
			Code:            1,
		})

		result, err := srv.CreateTransfers(buf)
		atomic.AddUint64(&totalRequests, 1)
		if err != nil {
			atomic.AddUint64(&failOther, 1)
			continue
		}
		switch {
		case len(result) == 0:
			atomic.AddUint64(&successPosted, 1)
		default:
			atomic.AddUint64(&existsReplay, 1)
		}
	}
}

func pickAccounts(rng *rand.Rand) (int, int) {
	if workload == "hotspot" && rng.Float32() < 0.90 {
		if rng.Float32() < 0.5 {
			return 1, 2
		}
		return 2, 1
	}
	a := rng.Intn(totalAccounts) + 1
	b := rng.Intn(totalAccounts) + 1
	for a == b {
		b = rng.Intn(totalAccounts) + 1
	}
	return a, b
}

func printResults(d time.Duration) {
	total := atomic.LoadUint64(&totalRequests)
	posted := atomic.LoadUint64(&successPosted)
	replays := atomic.LoadUint64(&existsReplay)
	errs := atomic.LoadUint64(&failOther)

	results := map[string]interface{}{
		"workload":        workload,
		"duration_sec":    d.Seconds(),
		"total_requests":  total,
		"throughput_tps":  float64(total) / d.Seconds(),
		"success_posted":  posted,
		"failure_replays": replays,
		"errors":          errs,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(results)

	filename := fmt.Sprintf("results_%s.json", workload)
	file, err := os.Create(filename)
	if err != nil {
		log.Printf("could not write %s: %v", filename, err)
		return
	}
	defer file.Close()
	_ = json.NewEncoder(file).Encode(results)
}
