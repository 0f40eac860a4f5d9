package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_ScanValue(t *testing.T) {
	j := NewJSON(map[string]interface{}{"notes": "paid at desk"})
	v, err := j.Value()
	require.NoError(t, err)

	var back JSON
	require.NoError(t, back.Scan(v))
	assert.Equal(t, "paid at desk", back["notes"])

	require.NoError(t, back.Scan([]byte(`{"a":1}`)))
	assert.Equal(t, float64(1), back["a"])

	assert.Error(t, back.Scan(42))
}

func TestQRCode_BeforeCreateDefaults(t *testing.T) {
	q := &QRCode{ClientID: uuid.New()}
	require.NoError(t, q.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, q.ID)
	assert.Equal(t, QRStatePending, q.State)
}

func TestVisit_Close(t *testing.T) {
	in := time.Date(2025, 4, 3, 10, 0, 0, 0, time.UTC)
	v := &Visit{CheckIn: in}
	v.Close(in.Add(95*time.Minute + 20*time.Second))

	require.NotNil(t, v.CheckOut)
	require.NotNil(t, v.DurationMinutes)
	assert.Equal(t, 95, *v.DurationMinutes)
}

func TestPlanInstance_Outstanding(t *testing.T) {
	assert.Equal(t, 40.0, (&PlanInstance{TotalCost: 100, PaidAmount: 60}).Outstanding())
	assert.Equal(t, 0.0, (&PlanInstance{TotalCost: 100, PaidAmount: 120}).Outstanding())
}

func TestPayment_BeforeCreate(t *testing.T) {
	p := &Payment{}
	require.NoError(t, p.BeforeCreate(nil))
	assert.NotEmpty(t, p.TransactionID)
	assert.True(t, ValidPaymentMethod(PaymentMethodCash))
	assert.False(t, ValidPaymentMethod("wallet"))
}
