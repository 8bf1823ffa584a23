package validation

import (
	"testing"

	"bankledger/internal/dto"
	"bankledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_OpenAccountRequest(t *testing.T) {
	v := NewValidator()

	valid := dto.OpenAccountRequest{
		HolderName:     "Alice",
		Credential:     "pw1",
		InitialDeposit: "1000.00",
		AccountType:    models.AccountTypeSavings,
	}
	assert.NoError(t, v.Validate(valid))

	tests := []struct {
		name   string
		mutate func(*dto.OpenAccountRequest)
	}{
		{"missing holder name", func(r *dto.OpenAccountRequest) { r.HolderName = "" }},
		{"missing credential", func(r *dto.OpenAccountRequest) { r.Credential = "" }},
		{"negative deposit", func(r *dto.OpenAccountRequest) { r.InitialDeposit = "-1" }},
		{"zero deposit", func(r *dto.OpenAccountRequest) { r.InitialDeposit = "0" }},
		{"non-numeric deposit", func(r *dto.OpenAccountRequest) { r.InitialDeposit = "lots" }},
		{"three decimal places", func(r *dto.OpenAccountRequest) { r.InitialDeposit = "10.555" }},
		{"unknown account type", func(r *dto.OpenAccountRequest) { r.AccountType = "Premium" }},
		{"lowercase account type", func(r *dto.OpenAccountRequest) { r.AccountType = "savings" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := v.Validate(req)
			require.Error(t, err)

			var validationErr *Error
			assert.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Fields)
		})
	}
}

func TestValidator_TransferRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(dto.TransferRequest{
		FromAccountNumber: 1001,
		Credential:        "pw1",
		ToAccountNumber:   1002,
		Amount:            "300",
	}))

	err := v.Validate(dto.TransferRequest{
		FromAccountNumber: 1001,
		Credential:        "pw1",
		ToAccountNumber:   17, // below the allocated range
		Amount:            "300",
	})
	assert.Error(t, err)
}

func TestValidator_FieldNamesUseJSONTags(t *testing.T) {
	v := NewValidator()

	err := v.Validate(dto.DepositRequest{AccountNumber: 1001, Credential: "pw1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}
