package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() TransactionRecord {
	return TransactionRecord{
		Timestamp:     time.Date(2026, 3, 14, 9, 30, 45, 0, time.Local),
		AccountNumber: 1001,
		Kind:          TransactionKindDeposit,
		Amount:        decimal.NewFromInt(300),
		BalanceAfter:  decimal.NewFromInt(1300),
		Description:   "Cash deposit",
	}
}

func TestTransactionRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TransactionRecord)
		wantErr error
	}{
		{
			name:   "valid deposit record",
			mutate: func(r *TransactionRecord) {},
		},
		{
			name:    "unknown kind",
			mutate:  func(r *TransactionRecord) { r.Kind = "REFUND" },
			wantErr: ErrInvalidTransactionKind,
		},
		{
			name:    "zero amount",
			mutate:  func(r *TransactionRecord) { r.Amount = decimal.Zero },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(r *TransactionRecord) { r.Amount = decimal.NewFromInt(-10) },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative balance after",
			mutate:  func(r *TransactionRecord) { r.BalanceAfter = decimal.NewFromInt(-1) },
			wantErr: ErrInvalidBalance,
		},
		{
			name:    "account number below starting number",
			mutate:  func(r *TransactionRecord) { r.AccountNumber = 7 },
			wantErr: ErrInvalidAccountNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			tt.mutate(&record)

			err := record.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransactionRecord_AuditFields(t *testing.T) {
	record := validRecord()

	fields := record.AuditFields()
	require.Len(t, fields, 7)
	assert.Equal(t, "14/03/2026", fields[0])
	assert.Equal(t, "09:30:45", fields[1])
	assert.Equal(t, "1001", fields[2])
	assert.Equal(t, "DEPOSIT", fields[3])
	assert.Equal(t, "300.00", fields[4])
	assert.Equal(t, "1300.00", fields[5])
	assert.Equal(t, "Cash deposit", fields[6])

	restored, err := RecordFromAuditFields(fields)
	require.NoError(t, err)
	assert.True(t, restored.Timestamp.Equal(record.Timestamp))
	assert.Equal(t, record.AccountNumber, restored.AccountNumber)
	assert.Equal(t, record.Kind, restored.Kind)
	assert.True(t, record.Amount.Equal(restored.Amount))
	assert.True(t, record.BalanceAfter.Equal(restored.BalanceAfter))
	assert.Equal(t, record.Description, restored.Description)

	// The reference only lives in receipts and log lines, never in the file.
	assert.Empty(t, restored.Reference)
}

func TestRecordFromAuditFields_Malformed(t *testing.T) {
	_, err := RecordFromAuditFields([]string{"14/03/2026", "09:30:45", "1001"})
	assert.ErrorIs(t, err, ErrMalformedAuditRecord)

	_, err = RecordFromAuditFields([]string{"noon", "today", "1001", "DEPOSIT", "300.00", "1300.00", "x"})
	assert.ErrorIs(t, err, ErrMalformedAuditRecord)
}

func TestIsValidTransactionKind(t *testing.T) {
	for _, kind := range []string{
		TransactionKindAccountCreated,
		TransactionKindDeposit,
		TransactionKindWithdrawal,
		TransactionKindTransferOut,
		TransactionKindTransferIn,
	} {
		assert.True(t, IsValidTransactionKind(kind), kind)
	}
	assert.False(t, IsValidTransactionKind("deposit"))
}

func TestGenerateTransactionReference(t *testing.T) {
	ref := GenerateTransactionReference()
	assert.True(t, strings.HasPrefix(ref, "TXN-"))
	assert.NotEqual(t, ref, GenerateTransactionReference())
}
