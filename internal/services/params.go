package services

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/stellar/anchor-platform-sub000/internal/models"
)

// AmountString is a decimal amount as sent by the caller. It decodes from a JSON string
// or a JSON number and keeps the literal text until validated.
type AmountString string

func (a *AmountString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Errorf("amount must be a string or a number, got %s", data)
	}
	*a = AmountString(n)
	return nil
}

func (a AmountString) toDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(string(a))
}

// mustDecimal is for amounts that already passed validation.
func (a AmountString) mustDecimal() decimal.Decimal {
	return decimal.RequireFromString(string(a))
}

// AmountAssetParam is an amount with an explicit asset.
type AmountAssetParam struct {
	Amount AmountString `json:"amount"`
	Asset  string `json:"asset"`
}

// AmountParam is an amount whose asset is taken from the transaction.
type AmountParam struct {
	Amount AmountString `json:"amount"`
}

// FeeDescriptionParam is one component of a fee breakdown.
type FeeDescriptionParam struct {
	Name        string `json:"name"`
	Description string       `json:"description,omitempty"`
	Amount      AmountString `json:"amount"`
}

// FeeDetailsParam is the fee charged on the transaction.
type FeeDetailsParam struct {
	Total   AmountString          `json:"total"`
	Asset   string                `json:"asset"`
	Details []FeeDescriptionParam `json:"details,omitempty"`
}

// RefundParam is a single refund payment notification.
type RefundParam struct {
	ID        string           `json:"id"`
	Amount    AmountAssetParam `json:"amount"`
	AmountFee AmountAssetParam `json:"amount_fee"`
}

// baseParams carries the fields every method accepts.
type baseParams struct {
	TransactionID string  `json:"transaction_id"`
	Message       *string `json:"message,omitempty"`
}

func (p *baseParams) base() *baseParams { return p }

// Action is the closed set of typed method parameters. Only types in this package implement it.
type Action interface {
	Method() Method
	base() *baseParams
}

// userActionRequester is implemented by actions that may set user_action_required_by.
type userActionRequester interface {
	userActionRequiredBy() *time.Time
}

// feeSource resolves fee_details, falling back to the legacy amount_fee field.
type feeSource struct {
	FeeDetails *FeeDetailsParam  `json:"fee_details,omitempty"`
	AmountFee  *AmountAssetParam `json:"amount_fee,omitempty"`
}

func (f feeSource) fee() *FeeDetailsParam {
	if f.FeeDetails != nil {
		return f.FeeDetails
	}
	if f.AmountFee != nil {
		return &FeeDetailsParam{Total: f.AmountFee.Amount, Asset: f.AmountFee.Asset}
	}
	return nil
}

type NotifyInteractiveFlowCompletedParams struct {
	baseParams
	feeSource
	AmountIn       *AmountAssetParam `json:"amount_in,omitempty"`
	AmountOut      *AmountAssetParam `json:"amount_out,omitempty"`
	AmountExpected *AmountParam      `json:"amount_expected,omitempty"`
}

func (*NotifyInteractiveFlowCompletedParams) Method() Method {
	return MethodNotifyInteractiveFlowCompleted
}

type RequestOffchainFundsParams struct {
	baseParams
	feeSource
	AmountIn             *AmountAssetParam                  `json:"amount_in,omitempty"`
	AmountOut            *AmountAssetParam                  `json:"amount_out,omitempty"`
	AmountExpected       *AmountParam                       `json:"amount_expected,omitempty"`
	Instructions         map[string]models.InstructionField `json:"instructions,omitempty"`
	UserActionRequiredBy *time.Time                         `json:"user_action_required_by,omitempty"`
}

func (*RequestOffchainFundsParams) Method() Method { return MethodRequestOffchainFunds }

func (p *RequestOffchainFundsParams) userActionRequiredBy() *time.Time {
	return p.UserActionRequiredBy
}

type RequestOnchainFundsParams struct {
	baseParams
	feeSource
	AmountIn             *AmountAssetParam `json:"amount_in,omitempty"`
	AmountOut            *AmountAssetParam `json:"amount_out,omitempty"`
	AmountExpected       *AmountParam      `json:"amount_expected,omitempty"`
	DestinationAccount   string            `json:"destination_account,omitempty"`
	Memo                 string            `json:"memo,omitempty"`
	MemoType             string            `json:"memo_type,omitempty"`
	UserActionRequiredBy *time.Time        `json:"user_action_required_by,omitempty"`
}

func (*RequestOnchainFundsParams) Method() Method { return MethodRequestOnchainFunds }

func (p *RequestOnchainFundsParams) userActionRequiredBy() *time.Time {
	return p.UserActionRequiredBy
}

type NotifyOffchainFundsReceivedParams struct {
	baseParams
	FundsReceivedAt       *time.Time       `json:"funds_received_at,omitempty"`
	ExternalTransactionID string           `json:"external_transaction_id,omitempty"`
	AmountIn              *AmountParam     `json:"amount_in,omitempty"`
	AmountOut             *AmountParam     `json:"amount_out,omitempty"`
	FeeDetails            *FeeDetailsParam `json:"fee_details,omitempty"`
}

func (*NotifyOffchainFundsReceivedParams) Method() Method { return MethodNotifyOffchainFundsReceived }

type NotifyOnchainFundsReceivedParams struct {
	baseParams
	StellarTransactionID string           `json:"stellar_transaction_id"`
	AmountIn             *AmountParam     `json:"amount_in,omitempty"`
	AmountOut            *AmountParam     `json:"amount_out,omitempty"`
	FeeDetails           *FeeDetailsParam `json:"fee_details,omitempty"`
}

func (*NotifyOnchainFundsReceivedParams) Method() Method { return MethodNotifyOnchainFundsReceived }

type NotifyOnchainFundsSentParams struct {
	baseParams
	StellarTransactionID string `json:"stellar_transaction_id"`
}

func (*NotifyOnchainFundsSentParams) Method() Method { return MethodNotifyOnchainFundsSent }

type NotifyOffchainFundsSentParams struct {
	baseParams
	FundsSentAt           *time.Time `json:"funds_sent_at,omitempty"`
	ExternalTransactionID string     `json:"external_transaction_id,omitempty"`
}

func (*NotifyOffchainFundsSentParams) Method() Method { return MethodNotifyOffchainFundsSent }

type NotifyOffchainFundsPendingParams struct {
	baseParams
	ExternalTransactionID string `json:"external_transaction_id,omitempty"`
}

func (*NotifyOffchainFundsPendingParams) Method() Method { return MethodNotifyOffchainFundsPending }

type NotifyOffchainFundsAvailableParams struct {
	baseParams
	ExternalTransactionID string `json:"external_transaction_id,omitempty"`
}

func (*NotifyOffchainFundsAvailableParams) Method() Method {
	return MethodNotifyOffchainFundsAvailable
}

type NotifyRefundPendingParams struct {
	baseParams
	Refund *RefundParam `json:"refund,omitempty"`
}

func (*NotifyRefundPendingParams) Method() Method { return MethodNotifyRefundPending }

type NotifyRefundSentParams struct {
	baseParams
	Refund *RefundParam `json:"refund,omitempty"`
}

func (*NotifyRefundSentParams) Method() Method { return MethodNotifyRefundSent }

type NotifyTransactionErrorParams struct {
	baseParams
}

func (*NotifyTransactionErrorParams) Method() Method { return MethodNotifyTransactionError }

type NotifyTransactionExpiredParams struct {
	baseParams
}

func (*NotifyTransactionExpiredParams) Method() Method { return MethodNotifyTransactionExpired }

type NotifyTransactionRecoveryParams struct {
	baseParams
}

func (*NotifyTransactionRecoveryParams) Method() Method { return MethodNotifyTransactionRecovery }

type RequestTrustParams struct {
	baseParams
}

func (*RequestTrustParams) Method() Method { return MethodRequestTrust }

type NotifyTrustSetParams struct {
	baseParams
	Success *bool `json:"success,omitempty"`
}

func (*NotifyTrustSetParams) Method() Method { return MethodNotifyTrustSet }

func (p *NotifyTrustSetParams) succeeded() bool {
	return p.Success == nil || *p.Success
}

type RequestCustomerInfoUpdateParams struct {
	baseParams
	RequiredCustomerInfoMessage string     `json:"required_customer_info_message,omitempty"`
	RequiredCustomerInfoUpdates []string   `json:"required_customer_info_updates,omitempty"`
	UserActionRequiredBy        *time.Time `json:"user_action_required_by,omitempty"`
}

func (*RequestCustomerInfoUpdateParams) Method() Method { return MethodRequestCustomerInfoUpdate }

func (p *RequestCustomerInfoUpdateParams) userActionRequiredBy() *time.Time {
	return p.UserActionRequiredBy
}

type NotifyCustomerInfoUpdatedParams struct {
	baseParams
	CustomerID   string `json:"customer_id,omitempty"`
	CustomerType string `json:"customer_type,omitempty"`
}

func (*NotifyCustomerInfoUpdatedParams) Method() Method { return MethodNotifyCustomerInfoUpdated }

type NotifyAmountsUpdatedParams struct {
	baseParams
	AmountOut  *AmountParam     `json:"amount_out,omitempty"`
	FeeDetails *FeeDetailsParam `json:"fee_details,omitempty"`
}

func (*NotifyAmountsUpdatedParams) Method() Method { return MethodNotifyAmountsUpdated }

type GetTransactionParams struct {
	baseParams
}

func (*GetTransactionParams) Method() Method { return MethodGetTransaction }

// newAction returns an empty parameter struct for method, or false if no handler is registered.
func newAction(method string) (Action, bool) {
	switch Method(method) {
	case MethodNotifyInteractiveFlowCompleted:
		return &NotifyInteractiveFlowCompletedParams{}, true
	case MethodRequestOffchainFunds:
		return &RequestOffchainFundsParams{}, true
	case MethodRequestOnchainFunds:
		return &RequestOnchainFundsParams{}, true
	case MethodNotifyOffchainFundsReceived:
		return &NotifyOffchainFundsReceivedParams{}, true
	case MethodNotifyOnchainFundsReceived:
		return &NotifyOnchainFundsReceivedParams{}, true
	case MethodNotifyOnchainFundsSent:
		return &NotifyOnchainFundsSentParams{}, true
	case MethodNotifyOffchainFundsSent:
		return &NotifyOffchainFundsSentParams{}, true
	case MethodNotifyOffchainFundsPending:
		return &NotifyOffchainFundsPendingParams{}, true
	case MethodNotifyOffchainFundsAvailable:
		return &NotifyOffchainFundsAvailableParams{}, true
	case MethodNotifyRefundPending:
		return &NotifyRefundPendingParams{}, true
	case MethodNotifyRefundSent:
		return &NotifyRefundSentParams{}, true
	case MethodNotifyTransactionError:
		return &NotifyTransactionErrorParams{}, true
	case MethodNotifyTransactionExpired:
		return &NotifyTransactionExpiredParams{}, true
	case MethodNotifyTransactionRecovery:
		return &NotifyTransactionRecoveryParams{}, true
	case MethodRequestTrust:
		return &RequestTrustParams{}, true
	case MethodNotifyTrustSet:
		return &NotifyTrustSetParams{}, true
	case MethodRequestCustomerInfoUpdate:
		return &RequestCustomerInfoUpdateParams{}, true
	case MethodNotifyCustomerInfoUpdated:
		return &NotifyCustomerInfoUpdatedParams{}, true
	case MethodNotifyAmountsUpdated:
		return &NotifyAmountsUpdatedParams{}, true
	case MethodGetTransaction:
		return &GetTransactionParams{}, true
	}
	return nil, false
}

// decodeAction resolves method to its parameter type and decodes raw into it.
func decodeAction(method string, raw json.RawMessage) (Action, error) {
	action, ok := newAction(method)
	if !ok {
		return nil, NewMethodNotFoundError("No matching RPC method[%s]", method)
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return action, nil
	}
	if err := json.Unmarshal(raw, action); err != nil {
		return nil, NewInvalidParamsError("Invalid params: %s", err.Error())
	}
	return action, nil
}

// transactionIDOf extracts transaction_id from undecoded params.
func transactionIDOf(raw json.RawMessage) (string, error) {
	var p baseParams
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", nil
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", NewInvalidParamsError("Invalid params: %s", err.Error())
	}
	return p.TransactionID, nil
}
