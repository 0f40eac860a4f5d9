package validation

import (
	"net/http"
	"testing"

	appErrors "playpark/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	FullName string  `json:"full_name" validate:"required"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Phone    string  `json:"phone" validate:"omitempty,phone"`
	Method   string  `json:"payment_method" validate:"omitempty,oneof=credit_card cash invoice"`
	Amount   float64 `json:"amount" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{name: "valid", in: sample{FullName: "Ana", Email: "ana@example.com", Phone: "+57 300 123 4567"}},
		{name: "missing name", in: sample{}, wantErr: "full_name is required"},
		{name: "bad email", in: sample{FullName: "Ana", Email: "nope"}, wantErr: "email must be a valid email address"},
		{name: "bad phone", in: sample{FullName: "Ana", Phone: "abc"}, wantErr: "phone must be a valid phone number"},
		{name: "bad method", in: sample{FullName: "Ana", Method: "wallet"}, wantErr: "payment_method must be one of"},
		{name: "negative amount", in: sample{FullName: "Ana", Amount: -1}, wantErr: "amount must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			de, ok := appErrors.As(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnprocessableEntity, de.Status)
			assert.Contains(t, de.Message, tt.wantErr)
		})
	}
}

func TestValidator_Check(t *testing.T) {
	v := New()
	v.Check(true, "a", "never")
	v.Check(false, "b", "first")
	v.Check(false, "b", "second")
	assert.False(t, v.Valid())
	assert.Equal(t, "first", v.Errors["b"])
	assert.EqualError(t, v.Err(), "b first")
}
