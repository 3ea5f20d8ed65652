package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/anchor-platform-sub000/internal/models"
)

func TestDecodeAction(t *testing.T) {
	t.Run("every method resolves", func(t *testing.T) {
		for _, method := range append(TransitionMethods, MethodGetTransaction) {
			action, err := decodeAction(string(method), json.RawMessage(`{"transaction_id":"t-1"}`))
			require.NoError(t, err, method)
			assert.Equal(t, method, action.Method())
			assert.Equal(t, "t-1", action.base().TransactionID)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := decodeAction("do_stuff", json.RawMessage(`{"transaction_id":"t-1"}`))
		requireRpcError(t, err, models.CodeMethodNotFound, "No matching RPC method[do_stuff]")
	})

	t.Run("null params", func(t *testing.T) {
		action, err := decodeAction(string(MethodNotifyTransactionError), json.RawMessage(`null`))
		require.NoError(t, err)
		assert.Nil(t, action.base().Message)
	})

	t.Run("wrong field type", func(t *testing.T) {
		_, err := decodeAction(string(MethodRequestOffchainFunds), json.RawMessage(`{"transaction_id":"t-1","amount_in":"100"}`))
		require.Error(t, err)
		assert.Equal(t, models.CodeInvalidParams, toRpcError(err).Code)
	})

	t.Run("typed params", func(t *testing.T) {
		raw := json.RawMessage(`{
			"transaction_id": "t-1",
			"message": "waiting for deposit",
			"amount_in": {"amount": "100", "asset": "iso4217:USD"},
			"amount_out": {"amount": "95", "asset": "` + usdc + `"},
			"fee_details": {"total": "5", "asset": "iso4217:USD", "details": [{"name": "service", "amount": "5"}]},
			"user_action_required_by": "2024-03-02T12:00:00Z"
		}`)
		action, err := decodeAction(string(MethodRequestOffchainFunds), raw)
		require.NoError(t, err)

		p, ok := action.(*RequestOffchainFundsParams)
		require.True(t, ok)
		assert.Equal(t, "waiting for deposit", *p.Message)
		assert.Equal(t, &AmountAssetParam{Amount: "100", Asset: usd}, p.AmountIn)
		assert.Equal(t, AmountString("5"), p.fee().Total)
		assert.Len(t, p.fee().Details, 1)
		assert.Equal(t, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), p.UserActionRequiredBy.UTC())
	})
}

func TestFeeSource(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected *FeeDetailsParam
	}{
		{
			name:     "fee_details",
			raw:      `{"fee_details":{"total":"5","asset":"iso4217:USD"}}`,
			expected: &FeeDetailsParam{Total: "5", Asset: usd},
		},
		{
			name:     "legacy amount_fee",
			raw:      `{"amount_fee":{"amount":"3","asset":"iso4217:USD"}}`,
			expected: &FeeDetailsParam{Total: "3", Asset: usd},
		},
		{
			name:     "fee_details wins",
			raw:      `{"fee_details":{"total":"5","asset":"iso4217:USD"},"amount_fee":{"amount":"3","asset":"iso4217:USD"}}`,
			expected: &FeeDetailsParam{Total: "5", Asset: usd},
		},
		{
			name: "neither",
			raw:  `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p NotifyInteractiveFlowCompletedParams
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &p))
			assert.Equal(t, tt.expected, p.fee())
		})
	}
}

func TestTransactionIDOf(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		expected  string
		expectErr bool
	}{
		{name: "present", raw: `{"transaction_id":"abc"}`, expected: "abc"},
		{name: "missing", raw: `{"message":"x"}`},
		{name: "empty params", raw: ``},
		{name: "null params", raw: `null`},
		{name: "array params", raw: `["abc"]`, expectErr: true},
		{name: "numeric id", raw: `{"transaction_id":42}`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := transactionIDOf(json.RawMessage(tt.raw))
			if tt.expectErr {
				require.Error(t, err)
				assert.Equal(t, models.CodeInvalidParams, toRpcError(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestNotifyTrustSetParams_Succeeded(t *testing.T) {
	assert.True(t, (&NotifyTrustSetParams{}).succeeded())
	assert.True(t, (&NotifyTrustSetParams{Success: ptr(true)}).succeeded())
	assert.False(t, (&NotifyTrustSetParams{Success: ptr(false)}).succeeded())
}

func TestAmountString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  AmountString
		expectErr bool
	}{
		{name: "string", input: `"95.50"`, expected: "95.50"},
		{name: "integer", input: `95`, expected: "95"},
		{name: "fraction keeps literal text", input: `0.10`, expected: "0.10"},
		{name: "exponent", input: `1e2`, expected: "1e2"},
		{name: "non-numeric string is kept for validation", input: `"ten"`, expected: "ten"},
		{name: "null", input: `null`, expected: ""},
		{name: "boolean", input: `true`, expectErr: true},
		{name: "object", input: `{"amount":1}`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p AmountParam
			err := json.Unmarshal([]byte(`{"amount":`+tt.input+`}`), &p)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Amount)
		})
	}
}

func TestDecodeAction_NumericAmounts(t *testing.T) {
	raw := json.RawMessage(`{"transaction_id":"t-1","amount_in":{"amount":100,"asset":"` + usd + `"},` +
		`"amount_out":{"amount":95,"asset":"` + usdc + `"},"amount_fee":{"amount":5,"asset":"` + usd + `"}}`)

	action, err := decodeAction(string(MethodRequestOffchainFunds), raw)
	require.NoError(t, err)

	p, ok := action.(*RequestOffchainFundsParams)
	require.True(t, ok)
	assert.Equal(t, AmountString("100"), p.AmountIn.Amount)
	assert.Equal(t, AmountString("95"), p.AmountOut.Amount)
	assert.Equal(t, &FeeDetailsParam{Total: "5", Asset: usd}, p.fee())
}
