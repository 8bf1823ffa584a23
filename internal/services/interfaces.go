package services

import (
	"bankledger/internal/dto"
	"bankledger/internal/models"
)

// LedgerServiceInterface defines the contract consumed by the dispatch layer.
// All expected business failures are returned as structured errors; only
// storage I/O failures are unrecoverable.
type LedgerServiceInterface interface {
	OpenAccount(req dto.OpenAccountRequest) (*models.Account, error)
	Authenticate(accountNumber int, credential string) bool
	Deposit(req dto.DepositRequest) (*dto.OperationReceipt, error)
	Withdraw(req dto.WithdrawRequest) (*dto.OperationReceipt, error)
	Transfer(req dto.TransferRequest) (*dto.OperationReceipt, error)
	GetAccountSnapshot(accountNumber int, credential string) (*models.Account, error)
	ListAccounts() []models.Account
	RecentTransactions(n int) ([]models.TransactionRecord, error)
}

// MetricsRecorderInterface defines the contract for recording ledger metrics
type MetricsRecorderInterface interface {
	RecordOperation(operation, status string)
	ObserveTransferAmount(amount float64)
	RecordAuditAppendError()
	SetAccountsTotal(count int)
}
