package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/require"

	"github.com/stellar/anchor-platform-sub000/internal/models"
)

const (
	usdc    = "stellar:USDC:GDQOE23CFSUMSVQK4Y5JHPPYK73VYCNHZHA7ENKCV37P6SUEO6XQBKPU"
	jpyc    = "stellar:JPYC:GDQOE23CFSUMSVQK4Y5JHPPYK73VYCNHZHA7ENKCV37P6SUEO6XQBKPU"
	usd     = "iso4217:USD"
	eur     = "iso4217:EUR"
	account = "GBLGJA4TUN5XOGTV6WO2BWYUI2OZR5GYQ5PDPCRMQ5XEPJOYWB2X4CJO"

	stellarHash = "51bcf1d3b1b6fb2a49e6e4ee5fc8ff9b9ca7f3e6fdcc0c3d3a24adc8a2d0a1cb"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func decimals(n int32) *int32 { return &n }

func testAssets() *AssetRegistry {
	return NewAssetRegistry([]models.AssetInfo{
		{ID: usdc, SignificantDecimals: decimals(7), Sep6Enabled: true, Sep24Enabled: true, Sep31Enabled: true},
		{ID: jpyc, SignificantDecimals: decimals(4), Sep6Enabled: true, Sep24Enabled: true, Sep31Enabled: true},
		{ID: usd, SignificantDecimals: decimals(2), Sep6Enabled: true, Sep24Enabled: true, Sep31Enabled: true},
		{ID: eur, SignificantDecimals: decimals(2), Sep6Enabled: true, Sep24Enabled: true},
	})
}

// newMockClock returns a mock clock set to testNow.
func newMockClock() *clock.Mock {
	clk := clock.NewMock()
	clk.Add(testNow.Sub(clk.Now()))
	return clk
}

func ptr[T any](v T) *T { return &v }

// newTxn returns a fresh transaction without amounts.
func newTxn(id string, sep models.Sep, kind models.Kind, status models.Status) *models.Transaction {
	return &models.Transaction{
		ID:        id,
		Sep:       sep,
		Kind:      kind,
		Status:    status,
		StartedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	}
}

// depositWithAmounts is a SEP-24 deposit with 100 USD in, 95 USDC out and a 5 USD fee.
func depositWithAmounts(id string, status models.Status, received bool) *models.Transaction {
	txn := newTxn(id, models.Sep24, models.KindDeposit, status)
	txn.AmountExpected = models.NewAmount("100", usd)
	txn.AmountIn = models.NewAmount("100", usd)
	txn.AmountOut = models.NewAmount("95", usdc)
	txn.FeeDetails = &models.FeeDetails{Total: models.NewAmount("5", usd).Amount, Asset: usd}
	txn.DestinationAccount = account
	if received {
		at := testNow.Add(-30 * time.Minute)
		txn.TransferReceivedAt = &at
	}
	return txn
}

// withdrawalWithAmounts is a withdrawal with 100 USDC in, 95 USD out and a 5 USDC fee.
func withdrawalWithAmounts(id string, sep models.Sep, kind models.Kind, status models.Status, received bool) *models.Transaction {
	txn := newTxn(id, sep, kind, status)
	txn.AmountExpected = models.NewAmount("100", usdc)
	txn.AmountIn = models.NewAmount("100", usdc)
	txn.AmountOut = models.NewAmount("95", usd)
	txn.FeeDetails = &models.FeeDetails{Total: models.NewAmount("5", usdc).Amount, Asset: usdc}
	if received {
		at := testNow.Add(-30 * time.Minute)
		txn.TransferReceivedAt = &at
	}
	return txn
}

func rawParams(t *testing.T, params map[string]any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(params)
	require.NoError(t, err)
	return data
}

func rpcRequest(t *testing.T, id any, method Method, params map[string]any) models.RpcRequest {
	t.Helper()
	return models.RpcRequest{ID: id, JSONRPC: models.JSONRPCVersion, Method: string(method), Params: rawParams(t, params)}
}

func amountParam(amount, asset string) map[string]any {
	return map[string]any{"amount": amount, "asset": asset}
}

func feeParam(total, asset string) map[string]any {
	return map[string]any{"total": total, "asset": asset}
}

// decodeTestAction decodes params for method and fails the test on error.
func decodeTestAction(t *testing.T, method Method, params map[string]any) Action {
	t.Helper()
	action, err := decodeAction(string(method), rawParams(t, params))
	require.NoError(t, err)
	return action
}

func requireRpcError(t *testing.T, err error, code int, message string) {
	t.Helper()
	require.Error(t, err)
	rpcErr := toRpcError(err)
	require.Equal(t, code, rpcErr.Code, rpcErr.Message)
	require.Equal(t, message, rpcErr.Message)
}
