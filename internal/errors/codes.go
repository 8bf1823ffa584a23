package errors

// ErrorCode represents a standardized error code used throughout the ledger
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthAdminDenied        ErrorCode = "AUTH_002"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral             ErrorCode = "VALIDATION_001"
	ValidationInvalidAmount       ErrorCode = "VALIDATION_002"
	ValidationBelowMinimumDeposit ErrorCode = "VALIDATION_003"
	ValidationInvalidAccountType  ErrorCode = "VALIDATION_004"
	ValidationInvalidCredential   ErrorCode = "VALIDATION_005"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound            ErrorCode = "ACCOUNT_001"
	AccountInsufficientBalance ErrorCode = "ACCOUNT_002"
	AccountRecipientNotFound   ErrorCode = "ACCOUNT_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError ErrorCode = "SYSTEM_001"
	SystemStorageError  ErrorCode = "SYSTEM_002"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	AuthInvalidCredentials: "Invalid account number or credential",
	AuthAdminDenied:        "Admin access denied",

	ValidationGeneral:             "Validation failed",
	ValidationInvalidAmount:       "Invalid amount",
	ValidationBelowMinimumDeposit: "Initial deposit is below the minimum opening balance",
	ValidationInvalidAccountType:  "Invalid account type",
	ValidationInvalidCredential:   "Invalid credential",

	AccountNotFound:            "Account not found",
	AccountInsufficientBalance: "Insufficient account balance",
	AccountRecipientNotFound:   "Recipient account not found",

	SystemInternalError: "An unexpected error occurred",
	SystemStorageError:  "Storage read or write failed",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
