package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionKindAccountCreated = "ACCOUNT_CREATED"
	TransactionKindDeposit        = "DEPOSIT"
	TransactionKindWithdrawal     = "WITHDRAWAL"
	TransactionKindTransferOut    = "TRANSFER_OUT"
	TransactionKindTransferIn     = "TRANSFER_IN"

	// Audit log wire formats, DD/MM/YYYY and HH:MM:SS.
	auditDateLayout = "02/01/2006"
	auditTimeLayout = "15:04:05"

	auditFieldCount = 7
)

// AuditLogHeader is the fixed first line of the audit log file.
var AuditLogHeader = []string{
	"Date", "Time", "Account_Number", "Transaction_Type", "Amount", "Balance_After", "Description",
}

var (
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
	ErrMalformedAuditRecord   = errors.New("malformed audit record")
)

// TransactionRecord is one immutable audit entry describing a single
// balance-affecting event. A transfer produces two records, one per leg.
type TransactionRecord struct {
	Timestamp     time.Time       `json:"timestamp"`
	AccountNumber int             `json:"account_number"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Description   string          `json:"description"`
	// Reference identifies the operation in receipts and structured log
	// lines; it is not part of the audit file format.
	Reference string `json:"reference,omitempty"`
}

// Validate validates the record fields
func (t *TransactionRecord) Validate() error {
	if t.AccountNumber < StartingAccountNumber {
		return ErrInvalidAccountNumber
	}

	if !IsValidTransactionKind(t.Kind) {
		return ErrInvalidTransactionKind
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.BalanceAfter.LessThan(decimal.Zero) {
		return ErrInvalidBalance
	}

	if t.Description == "" {
		return errors.New("transaction description is required")
	}

	return nil
}

// AuditFields returns the record as one audit log line in file field order.
func (t *TransactionRecord) AuditFields() []string {
	return []string{
		t.Timestamp.Format(auditDateLayout),
		t.Timestamp.Format(auditTimeLayout),
		strconv.Itoa(t.AccountNumber),
		t.Kind,
		t.Amount.StringFixed(2),
		t.BalanceAfter.StringFixed(2),
		t.Description,
	}
}

// RecordFromAuditFields rebuilds a record from one audit log line.
func RecordFromAuditFields(fields []string) (*TransactionRecord, error) {
	if len(fields) < auditFieldCount {
		return nil, fmt.Errorf("%w: got %d fields", ErrMalformedAuditRecord, len(fields))
	}

	timestamp, err := time.ParseInLocation(
		auditDateLayout+" "+auditTimeLayout, fields[0]+" "+fields[1], time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp %q %q", ErrMalformedAuditRecord, fields[0], fields[1])
	}

	accountNumber, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: account number %q", ErrMalformedAuditRecord, fields[2])
	}

	amount, err := decimal.NewFromString(fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", ErrMalformedAuditRecord, fields[4])
	}

	balanceAfter, err := decimal.NewFromString(fields[5])
	if err != nil {
		return nil, fmt.Errorf("%w: balance %q", ErrMalformedAuditRecord, fields[5])
	}

	return &TransactionRecord{
		Timestamp:     timestamp,
		AccountNumber: accountNumber,
		Kind:          fields[3],
		Amount:        amount,
		BalanceAfter:  balanceAfter,
		Description:   fields[6],
	}, nil
}

// IsValidTransactionKind checks if the transaction kind is valid
func IsValidTransactionKind(kind string) bool {
	switch kind {
	case TransactionKindAccountCreated, TransactionKindDeposit, TransactionKindWithdrawal,
		TransactionKindTransferOut, TransactionKindTransferIn:
		return true
	default:
		return false
	}
}

// GenerateTransactionReference generates a unique transaction reference
func GenerateTransactionReference() string {
	return "TXN-" + uuid.New().String()[:8] + "-" + time.Now().Format("20060102150405")
}
