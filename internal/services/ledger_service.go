package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bankledger/internal/dto"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
	"bankledger/internal/validation"

	"github.com/shopspring/decimal"
)

var (
	ErrAuthenticationFailed = errors.New("invalid account number or credential")
	ErrAccountNotFound      = errors.New("account not found")
	ErrRecipientNotFound    = errors.New("recipient account not found")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrBelowMinimumDeposit  = errors.New("initial deposit below the minimum opening balance")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrAdminAccessDenied    = errors.New("admin access denied")
)

// Operation labels for metrics and logging.
const (
	OperationOpenAccount = "open_account"
	OperationDeposit     = "deposit"
	OperationWithdraw    = "withdraw"
	OperationTransfer    = "transfer"

	statusCompleted = "completed"
	statusRejected  = "rejected"
	statusFailed    = "failed"
)

// ledgerService implements LedgerServiceInterface. Every mutation follows the
// same sequence: validate, mutate in memory, persist snapshot, append audit
// record. The audit log is best-effort; the snapshot is the source of truth.
type ledgerService struct {
	accounts          repositories.AccountRepositoryInterface
	auditLog          repositories.TransactionLogRepositoryInterface
	passwords         *PasswordService
	validator         *validation.Validator
	metrics           MetricsRecorderInterface
	minOpeningDeposit decimal.Decimal
	logger            *slog.Logger
}

// NewLedgerService creates a ledger service over the given stores
func NewLedgerService(
	accounts repositories.AccountRepositoryInterface,
	auditLog repositories.TransactionLogRepositoryInterface,
	passwords *PasswordService,
	metrics MetricsRecorderInterface,
	minOpeningDeposit decimal.Decimal,
	logger *slog.Logger,
) LedgerServiceInterface {
	// Seed the gauge from the loaded snapshot so it is correct before the
	// first mutation after a restart.
	metrics.SetAccountsTotal(accounts.Count())

	return &ledgerService{
		accounts:          accounts,
		auditLog:          auditLog,
		passwords:         passwords,
		validator:         validation.NewValidator(),
		metrics:           metrics,
		minOpeningDeposit: minOpeningDeposit,
		logger:            logger,
	}
}

// OpenAccount creates a new account with an initial deposit at or above the
// minimum opening balance. The account number counter only advances when the
// request is accepted.
func (s *ledgerService) OpenAccount(req dto.OpenAccountRequest) (*models.Account, error) {
	if err := s.validator.Validate(req); err != nil {
		s.metrics.RecordOperation(OperationOpenAccount, statusRejected)
		return nil, err
	}

	initialDeposit, err := decimal.NewFromString(req.InitialDeposit)
	if err != nil {
		s.metrics.RecordOperation(OperationOpenAccount, statusRejected)
		return nil, ErrInvalidAmount
	}

	if initialDeposit.LessThan(s.minOpeningDeposit) {
		s.metrics.RecordOperation(OperationOpenAccount, statusRejected)
		return nil, fmt.Errorf("%w: minimum is %s", ErrBelowMinimumDeposit, s.minOpeningDeposit.StringFixed(2))
	}

	credentialHash, err := s.passwords.HashCredential(req.Credential)
	if err != nil {
		s.metrics.RecordOperation(OperationOpenAccount, statusRejected)
		return nil, err
	}

	account := &models.Account{
		HolderName:     req.HolderName,
		CredentialHash: credentialHash,
		Balance:        initialDeposit,
		AccountType:    req.AccountType,
		CreatedAt:      time.Now(),
	}

	if err := s.accounts.Create(account); err != nil {
		s.metrics.RecordOperation(OperationOpenAccount, statusFailed)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	reference := models.GenerateTransactionReference()
	s.appendAudit(&models.TransactionRecord{
		Timestamp:     time.Now(),
		AccountNumber: account.AccountNumber,
		Kind:          models.TransactionKindAccountCreated,
		Amount:        initialDeposit,
		BalanceAfter:  initialDeposit,
		Description:   "Account opened with initial deposit",
		Reference:     reference,
	})

	s.metrics.RecordOperation(OperationOpenAccount, statusCompleted)
	s.metrics.SetAccountsTotal(s.accounts.Count())
	s.logger.Info("account opened",
		"account_number", account.AccountNumber,
		"account_type", account.AccountType,
		"initial_deposit", initialDeposit.StringFixed(2),
		"reference", reference)

	return account, nil
}

// Authenticate reports whether the account exists and the credential matches.
// Unknown account and wrong credential are indistinguishable to the caller.
func (s *ledgerService) Authenticate(accountNumber int, credential string) bool {
	_, err := s.authenticate(accountNumber, credential)
	return err == nil
}

// Deposit credits an authenticated account and returns a receipt with the
// new balance and the operation reference.
func (s *ledgerService) Deposit(req dto.DepositRequest) (*dto.OperationReceipt, error) {
	amount, err := s.validateMutation(OperationDeposit, req, req.AccountNumber, req.Credential, req.Amount)
	if err != nil {
		return nil, err
	}

	newBalance, err := s.accounts.UpdateBalance(req.AccountNumber, amount, repositories.EntryCredit)
	if err != nil {
		s.metrics.RecordOperation(OperationDeposit, statusFailed)
		return nil, fmt.Errorf("failed to apply deposit: %w", err)
	}

	reference := models.GenerateTransactionReference()
	s.appendAudit(&models.TransactionRecord{
		Timestamp:     time.Now(),
		AccountNumber: req.AccountNumber,
		Kind:          models.TransactionKindDeposit,
		Amount:        amount,
		BalanceAfter:  newBalance,
		Description:   "Cash deposit",
		Reference:     reference,
	})

	s.metrics.RecordOperation(OperationDeposit, statusCompleted)
	s.logger.Info("deposit applied",
		"account_number", req.AccountNumber,
		"amount", amount.StringFixed(2),
		"balance_after", newBalance.StringFixed(2),
		"reference", reference)

	return &dto.OperationReceipt{NewBalance: newBalance, Reference: reference}, nil
}

// Withdraw debits an authenticated account and returns a receipt with the
// new balance and the operation reference. Rejections leave the balance
// untouched and append no audit record.
func (s *ledgerService) Withdraw(req dto.WithdrawRequest) (*dto.OperationReceipt, error) {
	amount, err := s.validateMutation(OperationWithdraw, req, req.AccountNumber, req.Credential, req.Amount)
	if err != nil {
		return nil, err
	}

	newBalance, err := s.accounts.UpdateBalance(req.AccountNumber, amount, repositories.EntryDebit)
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientFunds) {
			s.metrics.RecordOperation(OperationWithdraw, statusRejected)
			return nil, ErrInsufficientFunds
		}
		s.metrics.RecordOperation(OperationWithdraw, statusFailed)
		return nil, fmt.Errorf("failed to apply withdrawal: %w", err)
	}

	reference := models.GenerateTransactionReference()
	s.appendAudit(&models.TransactionRecord{
		Timestamp:     time.Now(),
		AccountNumber: req.AccountNumber,
		Kind:          models.TransactionKindWithdrawal,
		Amount:        amount,
		BalanceAfter:  newBalance,
		Description:   "Cash withdrawal",
		Reference:     reference,
	})

	s.metrics.RecordOperation(OperationWithdraw, statusCompleted)
	s.logger.Info("withdrawal applied",
		"account_number", req.AccountNumber,
		"amount", amount.StringFixed(2),
		"balance_after", newBalance.StringFixed(2),
		"reference", reference)

	return &dto.OperationReceipt{NewBalance: newBalance, Reference: reference}, nil
}

// Transfer moves funds between two accounts as a single unit and returns the
// sender's receipt. Only the sender authenticates. On success exactly two
// audit records are appended, TRANSFER_OUT then TRANSFER_IN, sharing one
// reference.
func (s *ledgerService) Transfer(req dto.TransferRequest) (*dto.OperationReceipt, error) {
	if err := s.validator.Validate(req); err != nil {
		s.metrics.RecordOperation(OperationTransfer, statusRejected)
		return nil, err
	}

	if _, err := s.authenticate(req.FromAccountNumber, req.Credential); err != nil {
		s.metrics.RecordOperation(OperationTransfer, statusRejected)
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		s.metrics.RecordOperation(OperationTransfer, statusRejected)
		return nil, ErrInvalidAmount
	}

	senderBalance, recipientBalance, err := s.accounts.ExecuteAtomicTransfer(
		req.FromAccountNumber, req.ToAccountNumber, amount)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAccountNotFound):
			s.metrics.RecordOperation(OperationTransfer, statusRejected)
			return nil, ErrRecipientNotFound
		case errors.Is(err, repositories.ErrInsufficientFunds):
			s.metrics.RecordOperation(OperationTransfer, statusRejected)
			return nil, ErrInsufficientFunds
		default:
			s.metrics.RecordOperation(OperationTransfer, statusFailed)
			return nil, fmt.Errorf("failed to apply transfer: %w", err)
		}
	}

	now := time.Now()
	reference := models.GenerateTransactionReference()
	s.appendAudit(&models.TransactionRecord{
		Timestamp:     now,
		AccountNumber: req.FromAccountNumber,
		Kind:          models.TransactionKindTransferOut,
		Amount:        amount,
		BalanceAfter:  senderBalance,
		Description:   fmt.Sprintf("Transfer to Acc: %d", req.ToAccountNumber),
		Reference:     reference,
	})
	s.appendAudit(&models.TransactionRecord{
		Timestamp:     now,
		AccountNumber: req.ToAccountNumber,
		Kind:          models.TransactionKindTransferIn,
		Amount:        amount,
		BalanceAfter:  recipientBalance,
		Description:   fmt.Sprintf("Transfer from Acc: %d", req.FromAccountNumber),
		Reference:     reference,
	})

	s.metrics.RecordOperation(OperationTransfer, statusCompleted)
	s.metrics.ObserveTransferAmount(amount.InexactFloat64())
	s.logger.Info("transfer applied",
		"from_account", req.FromAccountNumber,
		"to_account", req.ToAccountNumber,
		"amount", amount.StringFixed(2),
		"sender_balance", senderBalance.StringFixed(2),
		"reference", reference)

	return &dto.OperationReceipt{NewBalance: senderBalance, Reference: reference}, nil
}

// GetAccountSnapshot returns a read-only view of an authenticated account.
func (s *ledgerService) GetAccountSnapshot(accountNumber int, credential string) (*models.Account, error) {
	return s.authenticate(accountNumber, credential)
}

// ListAccounts returns all accounts ordered by account number. The caller is
// responsible for gating this behind the admin credential.
func (s *ledgerService) ListAccounts() []models.Account {
	return s.accounts.List()
}

// RecentTransactions returns the last n audit records in file order.
func (s *ledgerService) RecentTransactions(n int) ([]models.TransactionRecord, error) {
	records, err := s.auditLog.Tail(n)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent transactions: %w", err)
	}
	return records, nil
}

// validateMutation runs request validation, authentication and amount parsing
// shared by deposit and withdrawal.
func (s *ledgerService) validateMutation(operation string, req interface{}, accountNumber int, credential, rawAmount string) (decimal.Decimal, error) {
	if err := s.validator.Validate(req); err != nil {
		s.metrics.RecordOperation(operation, statusRejected)
		return decimal.Zero, err
	}

	if _, err := s.authenticate(accountNumber, credential); err != nil {
		s.metrics.RecordOperation(operation, statusRejected)
		return decimal.Zero, err
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		s.metrics.RecordOperation(operation, statusRejected)
		return decimal.Zero, ErrInvalidAmount
	}

	return amount, nil
}

// authenticate returns a value copy of the account when the credential
// matches. The error never discloses whether the account or the credential
// was wrong.
func (s *ledgerService) authenticate(accountNumber int, credential string) (*models.Account, error) {
	account, err := s.accounts.GetByNumber(accountNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !s.passwords.CompareCredential(credential, account.CredentialHash) {
		return nil, ErrAuthenticationFailed
	}

	return account, nil
}

// appendAudit writes one audit record. A failure is reported and counted but
// does not roll back the already-persisted balance mutation.
func (s *ledgerService) appendAudit(record *models.TransactionRecord) {
	if err := s.auditLog.Append(record); err != nil {
		s.metrics.RecordAuditAppendError()
		s.logger.Error("failed to append audit record",
			"error", err,
			"account_number", record.AccountNumber,
			"kind", record.Kind,
			"reference", record.Reference)
	}
}
