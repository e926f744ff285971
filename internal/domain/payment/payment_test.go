package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func TestMethod_IsValid(t *testing.T) {
	tests := []struct {
		method  Method
		isValid bool
	}{
		{MethodCreditCard, true},
		{MethodDebitCard, true},
		{MethodPaypal, true},
		{MethodBankTransfer, true},
		{MethodCash, true},
		{MethodCOD, true},
		{Method("bitcoin"), false},
		{Method(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.method.IsValid())
		})
	}
}

func TestMethod_IsInstant(t *testing.T) {
	tests := []struct {
		method  Method
		instant bool
	}{
		{MethodCreditCard, true},
		{MethodDebitCard, true},
		{MethodPaypal, true},
		{MethodBankTransfer, false},
		{MethodCash, false},
		{MethodCOD, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.instant, tt.method.IsInstant())
		})
	}
}

func TestNewPayment_InstantMethod(t *testing.T) {
	txID := "txn-12345"
	p, err := NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyUSDFromFloat(33.90), MethodCreditCard, &txID, `{"gateway":"stripe"}`)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, p.Status)
	assert.Equal(t, MethodCreditCard, p.Method)
	require.NotNil(t, p.TransactionID)
	assert.Equal(t, "txn-12345", *p.TransactionID)
	assert.Equal(t, `{"gateway":"stripe"}`, p.ProviderData)
	assert.True(t, p.Amount.Equal(decimal.NewFromFloat(33.90)))
	assert.Len(t, p.GetDomainEvents(), 1)
}

func TestNewPayment_DeferredMethod(t *testing.T) {
	p, err := NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyUSDFromFloat(10), MethodCOD, nil, "")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, p.Status)
	assert.Nil(t, p.TransactionID)
	assert.Equal(t, "{}", p.ProviderData)
}

func TestNewPayment_Validation(t *testing.T) {
	amount := valueobject.NewMoneyUSDFromFloat(10)

	_, err := NewPayment(uuid.Nil, uuid.New(), amount, MethodCash, nil, "")
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), uuid.Nil, amount, MethodCash, nil, "")
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), uuid.New(), valueobject.ZeroUSD(), MethodCash, nil, "")
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyUSDFromFloat(-5), MethodCash, nil, "")
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), uuid.New(), amount, Method("barter"), nil, "")
	assert.Error(t, err)
}

func TestPayment_ApplyCorrection(t *testing.T) {
	p, err := NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyUSDFromFloat(10), MethodCash, nil, "")
	require.NoError(t, err)
	p.ClearDomainEvents()
	v := p.Version

	newAmount := valueobject.NewMoneyUSDFromFloat(12.50)
	newStatus := StatusCompleted
	require.NoError(t, p.ApplyCorrection(Correction{Amount: &newAmount, Status: &newStatus}))

	assert.True(t, p.Amount.Equal(decimal.NewFromFloat(12.50)))
	assert.Equal(t, StatusCompleted, p.Status)
	assert.Equal(t, MethodCash, p.Method)
	assert.Equal(t, v+1, p.Version)
	assert.Len(t, p.GetDomainEvents(), 1)
}

func TestPayment_ApplyCorrection_Invalid(t *testing.T) {
	p, err := NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyUSDFromFloat(10), MethodCash, nil, "")
	require.NoError(t, err)

	bad := valueobject.NewMoneyUSDFromFloat(-1)
	assert.Error(t, p.ApplyCorrection(Correction{Amount: &bad}))
	assert.True(t, p.Amount.Equal(decimal.NewFromInt(10)))

	badMethod := Method("barter")
	assert.Error(t, p.ApplyCorrection(Correction{Method: &badMethod}))

	badStatus := Status("SETTLED")
	assert.Error(t, p.ApplyCorrection(Correction{Status: &badStatus}))
}

func TestPayment_ApplyCorrection_Empty(t *testing.T) {
	p, err := NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyUSDFromFloat(10), MethodCash, nil, "")
	require.NoError(t, err)

	require.NoError(t, p.ApplyCorrection(Correction{}))
	assert.True(t, p.Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, MethodCash, p.Method)
	assert.Equal(t, StatusPending, p.Status)
}
