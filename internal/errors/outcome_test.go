package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"bankledger/internal/services"
	"bankledger/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetErrorMessage(t *testing.T) {
	assert.Equal(t, "Invalid account number or credential", GetErrorMessage(AuthInvalidCredentials))
	assert.Equal(t, "An error occurred", GetErrorMessage(ErrorCode("NOPE_999")))
}

func TestIsValidErrorCode(t *testing.T) {
	assert.True(t, IsValidErrorCode(AccountInsufficientBalance))
	assert.False(t, IsValidErrorCode(ErrorCode("NOPE_999")))
}

func TestFromError_MapsBusinessFailures(t *testing.T) {
	tests := []struct {
		err  error
		code ErrorCode
	}{
		{services.ErrAuthenticationFailed, AuthInvalidCredentials},
		{services.ErrAdminAccessDenied, AuthAdminDenied},
		{services.ErrBelowMinimumDeposit, ValidationBelowMinimumDeposit},
		{services.ErrInvalidAmount, ValidationInvalidAmount},
		{services.ErrInvalidAccountType, ValidationInvalidAccountType},
		{services.ErrCredentialEmpty, ValidationInvalidCredential},
		{services.ErrInsufficientFunds, AccountInsufficientBalance},
		{services.ErrRecipientNotFound, AccountRecipientNotFound},
		{services.ErrAccountNotFound, AccountNotFound},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			outcome := FromError(tt.err)
			require.NotNil(t, outcome)
			assert.Equal(t, tt.code, outcome.Code)
			assert.Equal(t, GetErrorMessage(tt.code), outcome.Message)
			assert.NotEmpty(t, outcome.Detail)
		})
	}
}

func TestFromError_WrappedErrorsStillMap(t *testing.T) {
	wrapped := fmt.Errorf("transfer failed: %w", services.ErrInsufficientFunds)
	assert.Equal(t, AccountInsufficientBalance, FromError(wrapped).Code)
}

func TestFromError_ValidationErrors(t *testing.T) {
	err := &validation.Error{Fields: []string{"amount must be a positive amount"}}
	outcome := FromError(err)
	assert.Equal(t, ValidationGeneral, outcome.Code)
	assert.Contains(t, outcome.Detail, "amount")
}

func TestFromError_UnknownErrorsHideDetail(t *testing.T) {
	outcome := FromError(stderrors.New("disk exploded"))
	assert.Equal(t, SystemInternalError, outcome.Code)
	assert.Empty(t, outcome.Detail)
}

func TestFromError_Nil(t *testing.T) {
	assert.Nil(t, FromError(nil))
}
