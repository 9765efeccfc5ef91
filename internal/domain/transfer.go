package domain

import "github.com/punchamoorthee/ledgerops/internal/u128"

// TransferFlags is the packed bit field carried on a Transfer record.
type TransferFlags uint16

const (
	TransferFlagLinked TransferFlags = 1 << iota
	TransferFlagPending
	TransferFlagPostPendingTransfer
	TransferFlagVoidPendingTransfer
	TransferFlagBalancingDebit
	TransferFlagBalancingCredit
	// TransferFlagClosingDebit and TransferFlagClosingCredit are
	// accepted as valid flags but unimplemented: no account-closing
	// behavior runs for a transfer that sets them.
	TransferFlagClosingDebit
	TransferFlagClosingCredit
	TransferFlagImported

	transferFlagsDefined = TransferFlagLinked |
		TransferFlagPending |
		TransferFlagPostPendingTransfer |
		TransferFlagVoidPendingTransfer |
		TransferFlagBalancingDebit |
		TransferFlagBalancingCredit |
		TransferFlagClosingDebit |
		TransferFlagClosingCredit |
		TransferFlagImported
)

func (f TransferFlags) HasPadding() bool {
	return f&^transferFlagsDefined != 0
}

func (f TransferFlags) Has(bit TransferFlags) bool { return f&bit != 0 }

// Transfer is the fixed-width transfer record.
type Transfer struct {
	ID              u128.U128
	DebitAccountID  u128.U128
	CreditAccountID u128.U128
	Amount          u128.U128
	PendingID       u128.U128
	UserData128     u128.U128
	UserData64      uint64
	UserData32      uint32
	Timeout         uint32
	Ledger          uint32
	Code            uint16
	Flags           TransferFlags
	Timestamp       uint64
}

// PendingState is the tagged state of a pending transfer's side-table
// entry, represented as a variant rather than a raw numeric code per
// spec.md §9.
type PendingState uint8

const (
	PendingActive PendingState = iota
	PendingPosted
	PendingVoided
	PendingExpired
)

func (s PendingState) String() string {
	switch s {
	case PendingActive:
		return "active"
	case PendingPosted:
		return "posted"
	case PendingVoided:
		return "voided"
	case PendingExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// PendingTransferInfo is the side-table entry tracking a `pending`
// transfer's lifecycle through (possibly partial) posts or a void.
type PendingTransferInfo struct {
	ID             u128.U128
	OriginalAmount u128.U128
	AmountPosted   u128.U128
	ExpiresAt      uint64 // absolute nanoseconds; 0 = never
	State          PendingState
}

// Remaining is original_amount - amount_posted.
func (p *PendingTransferInfo) Remaining() u128.U128 {
	return u128.SaturatingSub(p.OriginalAmount, p.AmountPosted)
}

// ExpiredAt reports whether p has a deadline and now is at or past it.
func (p *PendingTransferInfo) ExpiredAt(now uint64) bool {
	return p.ExpiresAt != 0 && now >= p.ExpiresAt
}
