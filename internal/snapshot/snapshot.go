// Package snapshot implements the versioned binary serialization of
// the engine's complete state: the packed header and the three
// tightly packed record arrays, bit-exact across hosts (spec.md
// §4.7). The codec's own representation is independent of
// internal/store's in-process layout; only the wire bytes are
// contractual.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

// Magic identifies a ledgerops snapshot: the ASCII bytes "TBST".
const Magic uint32 = 0x54425354

const (
	Version1 uint32 = 1
	Version2 uint32 = 2
)

// Wire record sizes, exported so internal/hostapi can cast raw host
// buffers into typed slices using the same layout the codec persists.
const (
	AccountSize  = 128
	TransferSize = 128
	PendingSize  = 64

	accountSize  = AccountSize
	transferSize = TransferSize
	pendingSize  = PendingSize

	headerV2Size = 4 + 4 + 4 + 4 + 4 + 8 // magic,version,accountCount,transferCount,pendingCount,commitTs
	headerV1Size = 4 + 4 + 4 + 8 + 8     // magic,version,accountCount,commitTs,reserved
)

var (
	// ErrBadMagic is returned when the buffer does not start with Magic.
	ErrBadMagic = errors.New("snapshot: bad magic")
	// ErrBadVersion is returned for any version other than 1 or 2.
	ErrBadVersion = errors.New("snapshot: unsupported version")
	// ErrTooSmall is returned when the destination buffer cannot hold
	// the serialized state.
	ErrTooSmall = errors.New("snapshot: destination buffer too small")
	// ErrTruncated is returned when the source buffer is shorter than
	// its own header claims.
	ErrTruncated = errors.New("snapshot: truncated buffer")
	// ErrAccountCapacityExceeded is returned when the loaded account
	// count exceeds the destination store's configured capacity.
	ErrAccountCapacityExceeded = errors.New("snapshot: account count exceeds capacity")
	// ErrTransferCapacityExceeded is the transfer-table analog.
	ErrTransferCapacityExceeded = errors.New("snapshot: transfer count exceeds capacity")
	// ErrPendingCapacityExceeded is the pending-table analog.
	ErrPendingCapacityExceeded = errors.New("snapshot: pending count exceeds capacity")
)

// State is the minimal view of engine state the codec needs; it lets
// this package stay independent of internal/store and internal/engine
// so either can change its in-process representation freely.
type State struct {
	Accounts        []domain.Account
	Transfers       []domain.Transfer
	Pending         []domain.PendingTransferInfo
	CommitTimestamp uint64
}

// Size returns the number of bytes Save will need to write state as a
// version-2 snapshot.
func Size(s State) int {
	return headerV2Size +
		len(s.Accounts)*accountSize +
		len(s.Transfers)*transferSize +
		len(s.Pending)*pendingSize
}

// Save writes a version-2 snapshot of s into dst, returning the number
// of bytes written. It fails if dst is too small (spec.md §4.7: "save
// refuses if output buffer too small").
func Save(dst []byte, s State) (int, error) {
	need := Size(s)
	if len(dst) < need {
		return 0, ErrTooSmall
	}

	binary.LittleEndian.PutUint32(dst[0:4], Magic)
	binary.LittleEndian.PutUint32(dst[4:8], Version2)
	binary.LittleEndian.PutUint32(dst[8:12], uint32(len(s.Accounts)))
	binary.LittleEndian.PutUint32(dst[12:16], uint32(len(s.Transfers)))
	binary.LittleEndian.PutUint32(dst[16:20], uint32(len(s.Pending)))
	binary.LittleEndian.PutUint64(dst[20:28], s.CommitTimestamp)

	off := headerV2Size
	for _, a := range s.Accounts {
		EncodeAccount(dst[off:off+accountSize], a)
		off += accountSize
	}
	for _, t := range s.Transfers {
		EncodeTransfer(dst[off:off+transferSize], t)
		off += transferSize
	}
	for _, p := range s.Pending {
		EncodePending(dst[off:off+pendingSize], p)
		off += pendingSize
	}
	return need, nil
}

// Capacities bounds the tables Load will accept, so a corrupt or
// hostile buffer cannot make the engine allocate unboundedly.
type Capacities struct {
	MaxAccounts  int
	MaxTransfers int
	MaxPending   int
}

// Load parses src, validating magic, version, and per-table capacity,
// and returns the decoded State. A version-1 buffer loads into
// version-2 shape with zero transfers and zero pending entries
// (spec.md §4.7).
func Load(src []byte, capacities Capacities) (State, error) {
	if len(src) < 8 {
		return State{}, ErrTruncated
	}
	if binary.LittleEndian.Uint32(src[0:4]) != Magic {
		return State{}, ErrBadMagic
	}
	version := binary.LittleEndian.Uint32(src[4:8])

	switch version {
	case Version2:
		return loadV2(src, capacities)
	case Version1:
		return loadV1(src, capacities)
	default:
		return State{}, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}
}

func loadV2(src []byte, capc Capacities) (State, error) {
	if len(src) < headerV2Size {
		return State{}, ErrTruncated
	}
	accountCount := int(binary.LittleEndian.Uint32(src[8:12]))
	transferCount := int(binary.LittleEndian.Uint32(src[12:16]))
	pendingCount := int(binary.LittleEndian.Uint32(src[16:20]))
	commitTS := binary.LittleEndian.Uint64(src[20:28])

	if accountCount > capc.MaxAccounts {
		return State{}, ErrAccountCapacityExceeded
	}
	if transferCount > capc.MaxTransfers {
		return State{}, ErrTransferCapacityExceeded
	}
	if pendingCount > capc.MaxPending {
		return State{}, ErrPendingCapacityExceeded
	}

	need := headerV2Size + accountCount*accountSize + transferCount*transferSize + pendingCount*pendingSize
	if len(src) < need {
		return State{}, ErrTruncated
	}

	off := headerV2Size
	accounts := make([]domain.Account, accountCount)
	for i := range accounts {
		accounts[i] = DecodeAccount(src[off : off+accountSize])
		off += accountSize
	}
	transfers := make([]domain.Transfer, transferCount)
	for i := range transfers {
		transfers[i] = DecodeTransfer(src[off : off+transferSize])
		off += transferSize
	}
	pending := make([]domain.PendingTransferInfo, pendingCount)
	for i := range pending {
		pending[i] = DecodePending(src[off : off+pendingSize])
		off += pendingSize
	}

	return State{Accounts: accounts, Transfers: transfers, Pending: pending, CommitTimestamp: commitTS}, nil
}

func loadV1(src []byte, capc Capacities) (State, error) {
	if len(src) < headerV1Size {
		return State{}, ErrTruncated
	}
	accountCount := int(binary.LittleEndian.Uint32(src[8:12]))
	commitTS := binary.LittleEndian.Uint64(src[12:20])
	// src[20:28] is the legacy reserved field; intentionally ignored.

	if accountCount > capc.MaxAccounts {
		return State{}, ErrAccountCapacityExceeded
	}

	need := headerV1Size + accountCount*accountSize
	if len(src) < need {
		return State{}, ErrTruncated
	}

	off := headerV1Size
	accounts := make([]domain.Account, accountCount)
	for i := range accounts {
		accounts[i] = DecodeAccount(src[off : off+accountSize])
		off += accountSize
	}

	return State{Accounts: accounts, CommitTimestamp: commitTS}, nil
}

// EncodeAccount writes a into dst[:AccountSize] using the wire layout.
func EncodeAccount(dst []byte, a domain.Account) {
	u128.PutLittleEndian(dst[0:16], a.ID)
	u128.PutLittleEndian(dst[16:32], a.DebitsPending)
	u128.PutLittleEndian(dst[32:48], a.DebitsPosted)
	u128.PutLittleEndian(dst[48:64], a.CreditsPending)
	u128.PutLittleEndian(dst[64:80], a.CreditsPosted)
	u128.PutLittleEndian(dst[80:96], a.UserData128)
	binary.LittleEndian.PutUint64(dst[96:104], a.UserData64)
	binary.LittleEndian.PutUint32(dst[104:108], a.UserData32)
	binary.LittleEndian.PutUint32(dst[108:112], a.Ledger)
	binary.LittleEndian.PutUint16(dst[112:114], a.Code)
	binary.LittleEndian.PutUint16(dst[114:116], uint16(a.Flags))
	binary.LittleEndian.PutUint64(dst[116:124], a.Timestamp)
	// dst[124:128] is reserved padding, left zeroed.
}

// DecodeAccount reads an Account from src[:AccountSize].
func DecodeAccount(src []byte) domain.Account {
	return domain.Account{
		ID:             u128.FromLittleEndian(src[0:16]),
		DebitsPending:  u128.FromLittleEndian(src[16:32]),
		DebitsPosted:   u128.FromLittleEndian(src[32:48]),
		CreditsPending: u128.FromLittleEndian(src[48:64]),
		CreditsPosted:  u128.FromLittleEndian(src[64:80]),
		UserData128:    u128.FromLittleEndian(src[80:96]),
		UserData64:     binary.LittleEndian.Uint64(src[96:104]),
		UserData32:     binary.LittleEndian.Uint32(src[104:108]),
		Ledger:         binary.LittleEndian.Uint32(src[108:112]),
		Code:           binary.LittleEndian.Uint16(src[112:114]),
		Flags:          domain.AccountFlags(binary.LittleEndian.Uint16(src[114:116])),
		Timestamp:      binary.LittleEndian.Uint64(src[116:124]),
	}
}

// EncodeTransfer writes t into dst[:TransferSize] using the wire layout.
func EncodeTransfer(dst []byte, t domain.Transfer) {
	u128.PutLittleEndian(dst[0:16], t.ID)
	u128.PutLittleEndian(dst[16:32], t.DebitAccountID)
	u128.PutLittleEndian(dst[32:48], t.CreditAccountID)
	u128.PutLittleEndian(dst[48:64], t.Amount)
	u128.PutLittleEndian(dst[64:80], t.PendingID)
	u128.PutLittleEndian(dst[80:96], t.UserData128)
	binary.LittleEndian.PutUint64(dst[96:104], t.UserData64)
	binary.LittleEndian.PutUint32(dst[104:108], t.UserData32)
	binary.LittleEndian.PutUint32(dst[108:112], t.Timeout)
	binary.LittleEndian.PutUint32(dst[112:116], t.Ledger)
	binary.LittleEndian.PutUint16(dst[116:118], t.Code)
	binary.LittleEndian.PutUint16(dst[118:120], uint16(t.Flags))
	binary.LittleEndian.PutUint64(dst[120:128], t.Timestamp)
}

// DecodeTransfer reads a Transfer from src[:TransferSize].
func DecodeTransfer(src []byte) domain.Transfer {
	return domain.Transfer{
		ID:              u128.FromLittleEndian(src[0:16]),
		DebitAccountID:  u128.FromLittleEndian(src[16:32]),
		CreditAccountID: u128.FromLittleEndian(src[32:48]),
		Amount:          u128.FromLittleEndian(src[48:64]),
		PendingID:       u128.FromLittleEndian(src[64:80]),
		UserData128:     u128.FromLittleEndian(src[80:96]),
		UserData64:      binary.LittleEndian.Uint64(src[96:104]),
		UserData32:      binary.LittleEndian.Uint32(src[104:108]),
		Timeout:         binary.LittleEndian.Uint32(src[108:112]),
		Ledger:          binary.LittleEndian.Uint32(src[112:116]),
		Code:            binary.LittleEndian.Uint16(src[116:118]),
		Flags:           domain.TransferFlags(binary.LittleEndian.Uint16(src[118:120])),
		Timestamp:       binary.LittleEndian.Uint64(src[120:128]),
	}
}

// EncodePending writes p into dst[:PendingSize] using the wire layout.
func EncodePending(dst []byte, p domain.PendingTransferInfo) {
	u128.PutLittleEndian(dst[0:16], p.ID)
	u128.PutLittleEndian(dst[16:32], p.OriginalAmount)
	u128.PutLittleEndian(dst[32:48], p.AmountPosted)
	binary.LittleEndian.PutUint64(dst[48:56], p.ExpiresAt)
	dst[56] = byte(p.State)
	// dst[57:64] is reserved padding, left zeroed.
}

// DecodePending reads a PendingTransferInfo from src[:PendingSize].
func DecodePending(src []byte) domain.PendingTransferInfo {
	return domain.PendingTransferInfo{
		ID:             u128.FromLittleEndian(src[0:16]),
		OriginalAmount: u128.FromLittleEndian(src[16:32]),
		AmountPosted:   u128.FromLittleEndian(src[32:48]),
		ExpiresAt:      binary.LittleEndian.Uint64(src[48:56]),
		State:          domain.PendingState(src[56]),
	}
}
