package main

import (
	"github.com/punchamoorthee/ledgerops/internal/domain"
	"github.com/punchamoorthee/ledgerops/internal/snapshot"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

// accountDTO is the JSON-over-HTTP shape of an Account. u128 fields
// round-trip as decimal strings (u128.U128's MarshalJSON) since a raw
// 128-bit integer doesn't fit a JSON number safely.
type accountDTO struct {
	ID             u128.U128 `json:"id"`
	DebitsPending  u128.U128 `json:"debits_pending"`
	DebitsPosted   u128.U128 `json:"debits_posted"`
	CreditsPending u128.U128 `json:"credits_pending"`
	CreditsPosted  u128.U128 `json:"credits_posted"`
	UserData128    u128.U128 `json:"user_data_128"`
	UserData64     uint64    `json:"user_data_64"`
	UserData32     uint32    `json:"user_data_32"`
	Ledger         uint32    `json:"ledger"`
	Code           uint16    `json:"code"`
	Flags          uint16    `json:"flags"`
	Timestamp      uint64    `json:"timestamp"`
}

func (d accountDTO) toDomain() domain.Account {
	return domain.Account{
		ID:             d.ID,
		DebitsPending:  d.DebitsPending,
		DebitsPosted:   d.DebitsPosted,
		CreditsPending: d.CreditsPending,
		CreditsPosted:  d.CreditsPosted,
		UserData128:    d.UserData128,
		UserData64:     d.UserData64,
		UserData32:     d.UserData32,
		Ledger:         d.Ledger,
		Code:           d.Code,
		Flags:          domain.AccountFlags(d.Flags),
	}
}

func accountFromDomain(a domain.Account) accountDTO {
	return accountDTO{
		ID:             a.ID,
		DebitsPending:  a.DebitsPending,
		DebitsPosted:   a.DebitsPosted,
		CreditsPending: a.CreditsPending,
		CreditsPosted:  a.CreditsPosted,
		UserData128:    a.UserData128,
		UserData64:     a.UserData64,
		UserData32:     a.UserData32,
		Ledger:         a.Ledger,
		Code:           a.Code,
		Flags:          uint16(a.Flags),
		Timestamp:      a.Timestamp,
	}
}

// transferDTO is the JSON-over-HTTP shape of a Transfer.
type transferDTO struct {
	ID              u128.U128 `json:"id"`
	DebitAccountID  u128.U128 `json:"debit_account_id"`
	CreditAccountID u128.U128 `json:"credit_account_id"`
	Amount          u128.U128 `json:"amount"`
	PendingID       u128.U128 `json:"pending_id"`
	UserData128     u128.U128 `json:"user_data_128"`
	UserData64      uint64    `json:"user_data_64"`
	UserData32      uint32    `json:"user_data_32"`
	Timeout         uint32    `json:"timeout"`
	Ledger          uint32    `json:"ledger"`
	Code            uint16    `json:"code"`
	Flags           uint16    `json:"flags"`
	Timestamp       uint64    `json:"timestamp"`
}

func (d transferDTO) toDomain() domain.Transfer {
	return domain.Transfer{
		ID:              d.ID,
		DebitAccountID:  d.DebitAccountID,
		CreditAccountID: d.CreditAccountID,
		Amount:          d.Amount,
		PendingID:       d.PendingID,
		UserData128:     d.UserData128,
		UserData64:      d.UserData64,
		UserData32:      d.UserData32,
		Timeout:         d.Timeout,
		Ledger:          d.Ledger,
		Code:            d.Code,
		Flags:           domain.TransferFlags(d.Flags),
	}
}

func transferFromDomain(t domain.Transfer) transferDTO {
	return transferDTO{
		ID:              t.ID,
		DebitAccountID:  t.DebitAccountID,
		CreditAccountID: t.CreditAccountID,
		Amount:          t.Amount,
		PendingID:       t.PendingID,
		UserData128:     t.UserData128,
		UserData64:      t.UserData64,
		UserData32:      t.UserData32,
		Timeout:         t.Timeout,
		Ledger:          t.Ledger,
		Code:            t.Code,
		Flags:           uint16(t.Flags),
		Timestamp:       t.Timestamp,
	}
}

// resultEntryDTO is one sparse batch failure, decoded from the
// hostapi wire format back into a human-readable result name.
type resultEntryDTO struct {
	Index  uint32 `json:"index"`
	Result string `json:"result"`
}

func decodeResultEntries(buf []byte) []resultEntryDTO {
	const entrySize = 6
	entries := make([]resultEntryDTO, 0, len(buf)/entrySize)
	for off := 0; off+entrySize <= len(buf); off += entrySize {
		index := uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
		code := uint16(buf[off+4]) | uint16(buf[off+5])<<8
		entries = append(entries, resultEntryDTO{Index: index, Result: domain.ResultCode(code).String()})
	}
	return entries
}

func encodeAccountBatch(accounts []accountDTO) []byte {
	buf := make([]byte, len(accounts)*snapshot.AccountSize)
	for i, a := range accounts {
		snapshot.EncodeAccount(buf[i*snapshot.AccountSize:(i+1)*snapshot.AccountSize], a.toDomain())
	}
	return buf
}

func encodeTransferBatch(transfers []transferDTO) []byte {
	buf := make([]byte, len(transfers)*snapshot.TransferSize)
	for i, t := range transfers {
		snapshot.EncodeTransfer(buf[i*snapshot.TransferSize:(i+1)*snapshot.TransferSize], t.toDomain())
	}
	return buf
}

func decodeAccountBatch(buf []byte) []accountDTO {
	out := make([]accountDTO, 0, len(buf)/snapshot.AccountSize)
	for off := 0; off+snapshot.AccountSize <= len(buf); off += snapshot.AccountSize {
		out = append(out, accountFromDomain(snapshot.DecodeAccount(buf[off:off+snapshot.AccountSize])))
	}
	return out
}

func decodeTransferBatch(buf []byte) []transferDTO {
	out := make([]transferDTO, 0, len(buf)/snapshot.TransferSize)
	for off := 0; off+snapshot.TransferSize <= len(buf); off += snapshot.TransferSize {
		out = append(out, transferFromDomain(snapshot.DecodeTransfer(buf[off:off+snapshot.TransferSize])))
	}
	return out
}
