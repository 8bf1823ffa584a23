package repositories

import (
	"bankledger/internal/models"

	"github.com/shopspring/decimal"
)

// Balance entry directions used by UpdateBalance.
const (
	EntryCredit = "credit"
	EntryDebit  = "debit"
)

// AccountRepositoryInterface defines the contract for account store operations.
// Implementations own every account exclusively: lookups return value copies,
// mutations happen inside the store and are followed by a snapshot persist
// before the call returns.
type AccountRepositoryInterface interface {
	// Create allocates the next account number, stores the account and
	// persists the snapshot. The allocated number is written back into the
	// passed account.
	Create(account *models.Account) error
	GetByNumber(accountNumber int) (*models.Account, error)
	List() []models.Account
	Count() int
	// UpdateBalance applies a single credit or debit entry and persists.
	// Returns the post-entry balance.
	UpdateBalance(accountNumber int, amount decimal.Decimal, entry string) (decimal.Decimal, error)
	// ExecuteAtomicTransfer debits from and credits to as one unit with a
	// single persist; no balance changes on any error. Returns both
	// post-transfer balances.
	ExecuteAtomicTransfer(fromNumber, toNumber int, amount decimal.Decimal) (senderBalance, recipientBalance decimal.Decimal, err error)
	// Reload replaces the in-memory collection with the snapshot file contents.
	Reload() error
}

// TransactionLogRepositoryInterface defines the contract for the append-only
// audit trail. Prior lines are never rewritten.
type TransactionLogRepositoryInterface interface {
	Append(record *models.TransactionRecord) error
	// Tail returns the last n records in file order, excluding the header.
	Tail(n int) ([]models.TransactionRecord, error)
}
