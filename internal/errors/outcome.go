package errors

import (
	stderrors "errors"

	"bankledger/internal/services"
	"bankledger/internal/validation"
)

// Outcome is the structured failure shape handed to the dispatch layer.
// Business failures map to stable codes; anything unrecognized is a system
// error whose detail stays server-side.
type Outcome struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
}

// FromError maps a service error to its coded outcome.
func FromError(err error) *Outcome {
	if err == nil {
		return nil
	}

	code := codeFor(err)
	outcome := &Outcome{
		Code:    code,
		Message: GetErrorMessage(code),
	}

	// Expected business failures carry their own wording.
	if code != SystemInternalError {
		outcome.Detail = err.Error()
	}

	return outcome
}

func codeFor(err error) ErrorCode {
	var validationErr *validation.Error
	if stderrors.As(err, &validationErr) {
		return ValidationGeneral
	}

	switch {
	case stderrors.Is(err, services.ErrAuthenticationFailed):
		return AuthInvalidCredentials
	case stderrors.Is(err, services.ErrAdminAccessDenied):
		return AuthAdminDenied
	case stderrors.Is(err, services.ErrBelowMinimumDeposit):
		return ValidationBelowMinimumDeposit
	case stderrors.Is(err, services.ErrInvalidAmount):
		return ValidationInvalidAmount
	case stderrors.Is(err, services.ErrInvalidAccountType):
		return ValidationInvalidAccountType
	case stderrors.Is(err, services.ErrCredentialEmpty),
		stderrors.Is(err, services.ErrCredentialTooLong):
		return ValidationInvalidCredential
	case stderrors.Is(err, services.ErrInsufficientFunds):
		return AccountInsufficientBalance
	case stderrors.Is(err, services.ErrRecipientNotFound):
		return AccountRecipientNotFound
	case stderrors.Is(err, services.ErrAccountNotFound):
		return AccountNotFound
	default:
		return SystemInternalError
	}
}
