package domain

// ResultCode is the per-record domain outcome the engine reports for
// every account or transfer in a batch. These are plain values, not
// errors — clients key recovery logic off the exact code, so names are
// part of the observable contract (spec.md §7) and must never change.
type ResultCode uint16

const (
	ResultOK ResultCode = iota

	// Shared structural codes.
	ResultReservedField
	ResultReservedFlag

	// Account creation.
	ResultAccountIDMustNotBeZero
	ResultAccountIDMustNotBeIntMax
	ResultAccountFlagsAreMutuallyExclusive
	ResultAccountDebitsPendingMustBeZero
	ResultAccountDebitsPostedMustBeZero
	ResultAccountCreditsPendingMustBeZero
	ResultAccountCreditsPostedMustBeZero
	ResultAccountLedgerMustNotBeZero
	ResultAccountCodeMustNotBeZero
	ResultAccountExistsWithDifferentFlags
	ResultAccountExistsWithDifferentUserData128
	ResultAccountExistsWithDifferentUserData64
	ResultAccountExistsWithDifferentUserData32
	ResultAccountExistsWithDifferentLedger
	ResultAccountExistsWithDifferentCode
	ResultAccountExists
	ResultExceedsAccountCapacity

	// Transfer creation: structural.
	ResultTransferIDMustNotBeZero
	ResultTransferIDMustNotBeIntMax
	ResultTransferFlagsAreMutuallyExclusive
	ResultTransferExistsWithDifferentFlags
	ResultTransferExistsWithDifferentDebitAccountID
	ResultTransferExistsWithDifferentCreditAccountID
	ResultTransferExistsWithDifferentAmount
	ResultTransferExistsWithDifferentPendingID
	ResultTransferExistsWithDifferentUserData128
	ResultTransferExistsWithDifferentUserData64
	ResultTransferExistsWithDifferentUserData32
	ResultTransferExistsWithDifferentTimeout
	ResultTransferExistsWithDifferentCode
	ResultTransferExists

	ResultPendingIDMustBeZero
	ResultPendingIDMustNotBeZero
	ResultPendingIDMustNotBeIntMax
	ResultPendingIDMustNotEqualTransferID
	ResultTimeoutReservedForPendingTransfer

	ResultAccountsMustBeDifferent
	ResultDebitAccountIDMustNotBeZero
	ResultDebitAccountIDMustNotBeIntMax
	ResultCreditAccountIDMustNotBeZero
	ResultCreditAccountIDMustNotBeIntMax

	ResultTransferLedgerMustNotBeZero
	ResultTransferCodeMustNotBeZero

	ResultDebitAccountNotFound
	ResultCreditAccountNotFound
	ResultAccountsMustHaveTheSameLedger
	ResultDebitAccountClosed
	ResultCreditAccountClosed

	ResultExceedsCredits
	ResultExceedsDebits

	ResultOverflowsDebitsPending
	ResultOverflowsCreditsPending
	ResultOverflowsDebitsPosted
	ResultOverflowsCreditsPosted

	ResultExceedsTransferCapacity
	ResultExceedsPendingCapacity

	// Two-phase completion.
	ResultPendingTransferNotFound
	ResultPendingTransferNotPending
	ResultPendingTransferAlreadyPosted
	ResultPendingTransferAlreadyVoided
	ResultPendingTransferExpired
	ResultPendingTransferHasDifferentDebitAccountID
	ResultPendingTransferHasDifferentCreditAccountID
	ResultPendingTransferHasDifferentLedger
	ResultPendingTransferHasDifferentCode
	ResultExceedsPendingTransferAmount
)

var resultNames = map[ResultCode]string{
	ResultOK:                                    "ok",
	ResultReservedField:                         "reserved_field",
	ResultReservedFlag:                          "reserved_flag",
	ResultAccountIDMustNotBeZero:                "id_must_not_be_zero",
	ResultAccountIDMustNotBeIntMax:              "id_must_not_be_int_max",
	ResultAccountFlagsAreMutuallyExclusive:      "flags_are_mutually_exclusive",
	ResultAccountDebitsPendingMustBeZero:        "debits_pending_must_be_zero",
	ResultAccountDebitsPostedMustBeZero:         "debits_posted_must_be_zero",
	ResultAccountCreditsPendingMustBeZero:       "credits_pending_must_be_zero",
	ResultAccountCreditsPostedMustBeZero:        "credits_posted_must_be_zero",
	ResultAccountLedgerMustNotBeZero:            "ledger_must_not_be_zero",
	ResultAccountCodeMustNotBeZero:              "code_must_not_be_zero",
	ResultAccountExistsWithDifferentFlags:       "exists_with_different_flags",
	ResultAccountExistsWithDifferentUserData128: "exists_with_different_user_data_128",
	ResultAccountExistsWithDifferentUserData64:  "exists_with_different_user_data_64",
	ResultAccountExistsWithDifferentUserData32:  "exists_with_different_user_data_32",
	ResultAccountExistsWithDifferentLedger:      "exists_with_different_ledger",
	ResultAccountExistsWithDifferentCode:        "exists_with_different_code",
	ResultAccountExists:                         "exists",
	ResultExceedsAccountCapacity:                "exceeds_account_capacity",

	ResultTransferIDMustNotBeZero:                    "id_must_not_be_zero",
	ResultTransferIDMustNotBeIntMax:                  "id_must_not_be_int_max",
	ResultTransferFlagsAreMutuallyExclusive:          "flags_are_mutually_exclusive",
	ResultTransferExistsWithDifferentFlags:           "exists_with_different_flags",
	ResultTransferExistsWithDifferentDebitAccountID:  "exists_with_different_debit_account_id",
	ResultTransferExistsWithDifferentCreditAccountID: "exists_with_different_credit_account_id",
	ResultTransferExistsWithDifferentAmount:          "exists_with_different_amount",
	ResultTransferExistsWithDifferentPendingID:       "exists_with_different_pending_id",
	ResultTransferExistsWithDifferentUserData128:     "exists_with_different_user_data_128",
	ResultTransferExistsWithDifferentUserData64:      "exists_with_different_user_data_64",
	ResultTransferExistsWithDifferentUserData32:      "exists_with_different_user_data_32",
	ResultTransferExistsWithDifferentTimeout:         "exists_with_different_timeout",
	ResultTransferExistsWithDifferentCode:            "exists_with_different_code",
	ResultTransferExists:                             "exists",

	ResultPendingIDMustBeZero:               "pending_id_must_be_zero",
	ResultPendingIDMustNotBeZero:            "pending_id_must_not_be_zero",
	ResultPendingIDMustNotBeIntMax:          "pending_id_must_not_be_int_max",
	ResultPendingIDMustNotEqualTransferID:   "pending_id_must_not_equal_transfer_id",
	ResultTimeoutReservedForPendingTransfer: "timeout_reserved_for_pending_transfer",

	ResultAccountsMustBeDifferent:        "accounts_must_be_different",
	ResultDebitAccountIDMustNotBeZero:    "debit_account_id_must_not_be_zero",
	ResultDebitAccountIDMustNotBeIntMax:  "debit_account_id_must_not_be_int_max",
	ResultCreditAccountIDMustNotBeZero:   "credit_account_id_must_not_be_zero",
	ResultCreditAccountIDMustNotBeIntMax: "credit_account_id_must_not_be_int_max",

	ResultTransferLedgerMustNotBeZero: "ledger_must_not_be_zero",
	ResultTransferCodeMustNotBeZero:   "code_must_not_be_zero",

	ResultDebitAccountNotFound:          "debit_account_not_found",
	ResultCreditAccountNotFound:         "credit_account_not_found",
	ResultAccountsMustHaveTheSameLedger: "accounts_must_have_the_same_ledger",
	ResultDebitAccountClosed:            "debit_account_closed",
	ResultCreditAccountClosed:           "credit_account_closed",

	ResultExceedsCredits: "exceeds_credits",
	ResultExceedsDebits:  "exceeds_debits",

	ResultOverflowsDebitsPending:  "overflows_debits_pending",
	ResultOverflowsCreditsPending: "overflows_credits_pending",
	ResultOverflowsDebitsPosted:   "overflows_debits_posted",
	ResultOverflowsCreditsPosted:  "overflows_credits_posted",

	ResultExceedsTransferCapacity: "exceeds_transfer_capacity",
	ResultExceedsPendingCapacity:  "exceeds_pending_capacity",

	ResultPendingTransferNotFound:                    "pending_transfer_not_found",
	ResultPendingTransferNotPending:                  "pending_transfer_not_pending",
	ResultPendingTransferAlreadyPosted:               "pending_transfer_already_posted",
	ResultPendingTransferAlreadyVoided:               "pending_transfer_already_voided",
	ResultPendingTransferExpired:                     "pending_transfer_expired",
	ResultPendingTransferHasDifferentDebitAccountID:  "pending_transfer_has_different_debit_account_id",
	ResultPendingTransferHasDifferentCreditAccountID: "pending_transfer_has_different_credit_account_id",
	ResultPendingTransferHasDifferentLedger:          "pending_transfer_has_different_ledger",
	ResultPendingTransferHasDifferentCode:            "pending_transfer_has_different_code",
	ResultExceedsPendingTransferAmount:               "exceeds_pending_transfer_amount",
}

func (r ResultCode) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return "unknown_result_code"
}

// IsOK reports whether r represents successful application.
func (r ResultCode) IsOK() bool { return r == ResultOK }
