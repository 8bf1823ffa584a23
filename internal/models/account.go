package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	AccountTypeSavings = "Savings"
	AccountTypeCurrent = "Current"

	// StartingAccountNumber is allocated to the first account of an empty store.
	StartingAccountNumber = 1001

	// snapshotFieldCount is the number of fields in one snapshot record.
	snapshotFieldCount = 6
)

var (
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrInvalidBalance       = errors.New("balance cannot be negative")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrMalformedRecord      = errors.New("malformed account record")
)

// Account represents a customer account. AccountNumber, HolderName,
// CredentialHash, AccountType and CreatedAt are immutable after creation;
// Balance is mutated only through Credit and Debit.
type Account struct {
	AccountNumber  int             `json:"account_number"`
	HolderName     string          `json:"holder_name"`
	CredentialHash string          `json:"-"`
	Balance        decimal.Decimal `json:"balance"`
	AccountType    string          `json:"account_type"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.AccountNumber < StartingAccountNumber {
		return ErrInvalidAccountNumber
	}

	if a.HolderName == "" {
		return errors.New("holder name is required")
	}

	if a.CredentialHash == "" {
		return errors.New("credential is required")
	}

	if !IsValidAccountType(a.AccountType) {
		return ErrInvalidAccountType
	}

	if a.Balance.LessThan(decimal.Zero) {
		return ErrInvalidBalance
	}

	return nil
}

// CanWithdraw checks if the amount can be withdrawn
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero) && a.Balance.GreaterThanOrEqual(amount)
}

// Debit debits the account, keeping the balance non-negative
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("debit amount must be positive")
	}

	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Credit credits the account
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("credit amount must be positive")
	}

	a.Balance = a.Balance.Add(amount)
	return nil
}

// SnapshotFields returns the account as one snapshot record, field order
// accountNumber, holderName, credential, balance, accountType, createdAt.
func (a *Account) SnapshotFields() []string {
	return []string{
		strconv.Itoa(a.AccountNumber),
		a.HolderName,
		a.CredentialHash,
		a.Balance.StringFixed(2),
		a.AccountType,
		a.CreatedAt.Format(time.RFC3339),
	}
}

// AccountFromSnapshotFields rebuilds an account from a snapshot record.
// Records with missing fields or unparseable values are rejected with
// ErrMalformedRecord so the loader can skip them.
func AccountFromSnapshotFields(fields []string) (*Account, error) {
	if len(fields) < snapshotFieldCount {
		return nil, fmt.Errorf("%w: got %d fields", ErrMalformedRecord, len(fields))
	}

	accountNumber, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: account number %q", ErrMalformedRecord, fields[0])
	}

	balance, err := decimal.NewFromString(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: balance %q", ErrMalformedRecord, fields[3])
	}

	createdAt, err := time.Parse(time.RFC3339, fields[5])
	if err != nil {
		return nil, fmt.Errorf("%w: created at %q", ErrMalformedRecord, fields[5])
	}

	account := &Account{
		AccountNumber:  accountNumber,
		HolderName:     fields[1],
		CredentialHash: fields[2],
		Balance:        balance,
		AccountType:    fields[4],
		CreatedAt:      createdAt,
	}

	if err := account.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	return account, nil
}

// IsValidAccountType checks if the account type is valid
func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeSavings, AccountTypeCurrent:
		return true
	default:
		return false
	}
}
