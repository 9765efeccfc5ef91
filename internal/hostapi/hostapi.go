// Package hostapi is the FFI-style boundary the host process drives:
// batched byte-buffer entrypoints that cast raw bytes to typed
// records, call into internal/engine, and serialize only failures
// back into a sparse result buffer (spec.md §6). It also owns the
// single-writer lock spec.md §9 says belongs in "the host-boundary
// shim", not in the engine itself, and the 64 KiB scratch buffer that
// stands in for the original's bump allocator.
package hostapi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/engine"
	"github.com/punchamoorthee/ledgerops/internal/snapshot"
	"github.com/punchamoorthee/ledgerops/internal/store"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

// HostError is a negative per-call status code (spec.md §7's "second
// error plane"), distinct from the per-record domain.ResultCode values
// written into batch result buffers.
type HostError int32

const (
	ErrNotInitialized   HostError = -1
	ErrBadBufferSize    HostError = -2
	ErrSnapshotIO       HostError = -3
	ErrTooManyAccounts  HostError = -4
	ErrBufferTooSmall   HostError = -5
	ErrTooManyTransfers HostError = -6
	ErrTooManyPending   HostError = -7
	ErrNotImplemented   HostError = -100
)

func (e HostError) Error() string {
	switch e {
	case ErrNotInitialized:
		return "engine not initialized"
	case ErrBadBufferSize:
		return "buffer length is not a multiple of the record size"
	case ErrSnapshotIO:
		return "snapshot I/O failure"
	case ErrTooManyAccounts:
		return "snapshot has too many accounts"
	case ErrTooManyTransfers:
		return "snapshot has too many transfers"
	case ErrBufferTooSmall:
		return "destination buffer too small"
	case ErrTooManyPending:
		return "snapshot has too many pending transfers"
	case ErrNotImplemented:
		return "not implemented"
	default:
		return fmt.Sprintf("host error %d", int32(e))
	}
}

// scratchSize is the fixed scratch buffer the original exposes to the
// host as a bump allocator (spec.md §9); this Go port owns the buffer
// directly instead of exporting an allocator API. No method hands out
// slices of it: every entrypoint allocates its own result buffer.
const scratchSize = 64 * 1024

// resultEntrySize is the wire size of one {index uint32, result
// uint16} sparse batch entry.
const resultEntrySize = 4 + 2

// Server is the process-wide host shim around one Engine. All
// exported methods serialize through mu, matching spec.md §5's
// single-writer requirement without pushing synchronization into the
// core engine type.
type Server struct {
	mu          sync.Mutex
	eng         *engine.Engine
	initialized bool
	scratch     [scratchSize]byte
}

// NewServer constructs an uninitialized host shim. Init must be called
// before any other method succeeds, mirroring the exported `init`
// entrypoint of spec.md §6.
func NewServer() *Server {
	return &Server{}
}

// Init brings up a fresh engine with the given clock and table
// capacities, returning 0 on success.
func (s *Server) Init(clock engine.Clock, maxAccounts, maxTransfers, maxPending int) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := store.New(maxAccounts, maxTransfers, maxPending)
	s.eng = engine.New(st, clock)
	s.initialized = true
	return 0
}

// SetLogger forwards to the underlying engine's diagnostic logger.
func (s *Server) SetLogger(l engine.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.eng != nil {
		s.eng.SetLogger(l)
	}
}

func (s *Server) requireInit() error {
	if !s.initialized {
		return ErrNotInitialized
	}
	return nil
}

// encodeResults packs failures as {index uint32, result uint16} little
// endian entries; a fully successful batch returns a zero-length slice
// (spec.md §6).
func encodeResults(failures []engine.BatchResult) []byte {
	if len(failures) == 0 {
		return nil
	}
	out := make([]byte, len(failures)*resultEntrySize)
	for i, f := range failures {
		off := i * resultEntrySize
		binary.LittleEndian.PutUint32(out[off:off+4], f.Index)
		binary.LittleEndian.PutUint16(out[off+4:off+6], uint16(f.Result))
	}
	return out
}

// CreateAccounts accepts a buffer packed with snapshot.AccountSize-byte
// Account records, applies them in order, and returns the sparse
// failure buffer.
func (s *Server) CreateAccounts(buf []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return nil, err
	}
	if len(buf)%snapshot.AccountSize != 0 {
		return nil, ErrBadBufferSize
	}
	accounts := make([]domain.Account, len(buf)/snapshot.AccountSize)
	for i := range accounts {
		accounts[i] = snapshot.DecodeAccount(buf[i*snapshot.AccountSize : (i+1)*snapshot.AccountSize])
	}
	return encodeResults(s.eng.CreateAccounts(accounts)), nil
}

// CreateTransfers is CreateAccounts's analog for Transfer records.
func (s *Server) CreateTransfers(buf []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return nil, err
	}
	if len(buf)%snapshot.TransferSize != 0 {
		return nil, ErrBadBufferSize
	}
	transfers := make([]domain.Transfer, len(buf)/snapshot.TransferSize)
	for i := range transfers {
		transfers[i] = snapshot.DecodeTransfer(buf[i*snapshot.TransferSize : (i+1)*snapshot.TransferSize])
	}
	return encodeResults(s.eng.CreateTransfers(transfers)), nil
}

// decodeIDs casts a buffer of 16-byte little-endian u128 values.
func decodeIDs(buf []byte) ([]u128.U128, error) {
	if len(buf)%16 != 0 {
		return nil, ErrBadBufferSize
	}
	ids := make([]u128.U128, len(buf)/16)
	for i := range ids {
		ids[i] = u128.FromLittleEndian(buf[i*16 : (i+1)*16])
	}
	return ids, nil
}

// LookupAccounts resolves a buffer of u128 ids into packed Account
// records for every id that exists, preserving input order.
func (s *Server) LookupAccounts(buf []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return nil, err
	}
	ids, err := decodeIDs(buf)
	if err != nil {
		return nil, err
	}
	accounts := s.eng.LookupAccounts(ids)
	out := make([]byte, len(accounts)*snapshot.AccountSize)
	for i, a := range accounts {
		snapshot.EncodeAccount(out[i*snapshot.AccountSize:(i+1)*snapshot.AccountSize], a)
	}
	return out, nil
}

// LookupTransfers is LookupAccounts's analog for Transfer records.
func (s *Server) LookupTransfers(buf []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return nil, err
	}
	ids, err := decodeIDs(buf)
	if err != nil {
		return nil, err
	}
	transfers := s.eng.LookupTransfers(ids)
	out := make([]byte, len(transfers)*snapshot.TransferSize)
	for i, t := range transfers {
		snapshot.EncodeTransfer(out[i*snapshot.TransferSize:(i+1)*snapshot.TransferSize], t)
	}
	return out, nil
}

// AccountTransfers enumerates transfers touching id, in commit order,
// stopping once the output would exceed maxBytes. A maxBytes of 0
// means unbounded.
func (s *Server) AccountTransfers(id u128.U128, maxBytes int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return nil, err
	}
	maxRecords := 0
	if maxBytes > 0 {
		maxRecords = maxBytes / snapshot.TransferSize
		if maxRecords == 0 {
			return []byte{}, nil
		}
	}
	transfers := s.eng.AccountTransfers(id, maxRecords)
	out := make([]byte, len(transfers)*snapshot.TransferSize)
	for i, t := range transfers {
		snapshot.EncodeTransfer(out[i*snapshot.TransferSize:(i+1)*snapshot.TransferSize], t)
	}
	return out, nil
}

// TableCounts returns the current record count in each table, for
// host-side occupancy reporting.
func (s *Server) TableCounts() (accounts, transfers, pending int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return 0, 0, 0, err
	}
	st := s.eng.Store()
	return st.AccountCount(), st.TransferCount(), st.PendingCount(), nil
}

// Tick is a no-op, matching the original's exported surface (spec.md §6).
func (s *Server) Tick() {}

// Timestamp returns the engine's current commit timestamp.
func (s *Server) Timestamp() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return 0, err
	}
	return s.eng.CommitTimestamp(), nil
}

// Version packs the engine's semantic version as major<<16|minor<<8|patch.
func Version() uint32 {
	const major, minor, patch = 0, 2, 0
	return major<<16 | minor<<8 | patch
}

// StateSize returns the number of bytes SaveState needs.
func (s *Server) StateSize() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return 0, err
	}
	return snapshot.Size(s.snapshotState()), nil
}

func (s *Server) snapshotState() snapshot.State {
	st := s.eng.Store()
	return snapshot.State{
		Accounts:        st.Accounts(),
		Transfers:       st.Transfers(),
		Pending:         st.Pending(),
		CommitTimestamp: s.eng.CommitTimestamp(),
	}
}

// SaveState serializes the engine's full state into dst, returning the
// number of bytes written.
func (s *Server) SaveState(dst []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return 0, err
	}
	n, err := snapshot.Save(dst, s.snapshotState())
	if errors.Is(err, snapshot.ErrTooSmall) {
		return 0, ErrBufferTooSmall
	}
	return n, err
}

// LoadState restores the engine's full state from src, replacing
// whatever state previously existed. Every error is returned before
// the store is touched, so a failed load leaves the previous state in
// place; tables are swapped in only once every record has decoded
// cleanly.
func (s *Server) LoadState(src []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return err
	}
	st := s.eng.Store()
	loaded, err := snapshot.Load(src, snapshot.Capacities{
		MaxAccounts:  st.MaxAccounts(),
		MaxTransfers: st.MaxTransfers(),
		MaxPending:   st.MaxPending(),
	})
	if err != nil {
		switch {
		case errors.Is(err, snapshot.ErrAccountCapacityExceeded):
			return ErrTooManyAccounts
		case errors.Is(err, snapshot.ErrTransferCapacityExceeded):
			return ErrTooManyTransfers
		case errors.Is(err, snapshot.ErrPendingCapacityExceeded):
			return ErrTooManyPending
		case errors.Is(err, snapshot.ErrBadMagic), errors.Is(err, snapshot.ErrBadVersion), errors.Is(err, snapshot.ErrTruncated):
			return ErrSnapshotIO
		default:
			return err
		}
	}

	st.LoadAccounts(loaded.Accounts)
	st.LoadTransfers(loaded.Transfers)
	st.LoadPending(loaded.Pending)
	s.eng.RestoreCommitTimestamp(loaded.CommitTimestamp)
	return nil
}
