package dto

import "github.com/shopspring/decimal"

// Ledger operation request DTOs. Amounts travel as strings and are parsed to
// decimals only after validation, so callers never lose precision to floats.

// OpenAccountRequest represents the request payload for opening a new account
type OpenAccountRequest struct {
	HolderName     string `json:"holder_name" validate:"required,min=1,max=100"`
	Credential     string `json:"credential" validate:"required,min=1,max=72"`
	InitialDeposit string `json:"initial_deposit" validate:"required,positive_amount"`
	AccountType    string `json:"account_type" validate:"required,account_type"`
}

// DepositRequest represents the request payload for a deposit
type DepositRequest struct {
	AccountNumber int    `json:"account_number" validate:"required,account_number"`
	Credential    string `json:"credential" validate:"required"`
	Amount        string `json:"amount" validate:"required,positive_amount"`
}

// WithdrawRequest represents the request payload for a withdrawal
type WithdrawRequest struct {
	AccountNumber int    `json:"account_number" validate:"required,account_number"`
	Credential    string `json:"credential" validate:"required"`
	Amount        string `json:"amount" validate:"required,positive_amount"`
}

// OperationReceipt is returned by every balance mutation: the balance after
// the operation and the reference identifying it in the structured logs.
// A transfer's two legs share a single reference.
type OperationReceipt struct {
	NewBalance decimal.Decimal `json:"new_balance"`
	Reference  string          `json:"reference"`
}

// TransferRequest represents the request payload for a two-leg transfer.
// Only the sender authenticates; the recipient is identified by number alone.
type TransferRequest struct {
	FromAccountNumber int    `json:"from_account_number" validate:"required,account_number"`
	Credential        string `json:"credential" validate:"required"`
	ToAccountNumber   int    `json:"to_account_number" validate:"required,account_number"`
	Amount            string `json:"amount" validate:"required,positive_amount"`
}
