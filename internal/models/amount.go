package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amount is a decimal quantity of a single asset.
// swagger:model Amount
type Amount struct {
	// Decimal amount, serialized as a string
	// example: 100
	Amount decimal.Decimal `json:"amount"`

	// SEP-38 asset identifier
	// example: iso4217:USD
	Asset string `json:"asset"`
}

func (a *Amount) clone() *Amount {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// NewAmount builds an Amount from a decimal string, panicking on malformed input.
// Intended for fixtures and constants.
func NewAmount(amount, asset string) *Amount {
	return &Amount{Amount: decimal.RequireFromString(amount), Asset: asset}
}

// FeeDetails is the total fee charged on a transaction and its breakdown.
// swagger:model FeeDetails
type FeeDetails struct {
	Total   decimal.Decimal  `json:"total"`
	Asset   string           `json:"asset"`
	Details []FeeDescription `json:"details,omitempty"`
}

// FeeDescription is one component of FeeDetails.
type FeeDescription struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// Refunds aggregates every refund payment made for a transaction.
// AmountRefunded includes fees.
type Refunds struct {
	AmountRefunded Amount          `json:"amount_refunded"`
	AmountFee      Amount          `json:"amount_fee"`
	Payments       []RefundPayment `json:"payments"`
}

// RefundPaymentIDType tells where a refund payment was settled.
type RefundPaymentIDType string

const (
	RefundIDTypeStellar  RefundPaymentIDType = "stellar"
	RefundIDTypeExternal RefundPaymentIDType = "external"
)

// RefundPayment is a single refund payment.
type RefundPayment struct {
	ID     string              `json:"id"`
	IDType RefundPaymentIDType `json:"id_type"`
	Amount Amount              `json:"amount"`
	Fee    Amount              `json:"fee"`
}

// StellarTransaction is a settlement record resolved from the ledger.
type StellarTransaction struct {
	ID        string           `json:"id"`
	Memo      string           `json:"memo,omitempty"`
	MemoType  string           `json:"memo_type,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Envelope  string           `json:"envelope,omitempty"`
	Payments  []StellarPayment `json:"payments"`
}

// StellarPayment is a payment operation inside a StellarTransaction.
type StellarPayment struct {
	ID                 string `json:"id"`
	Amount             Amount `json:"amount"`
	PaymentType        string `json:"payment_type"`
	SourceAccount      string `json:"source_account"`
	DestinationAccount string `json:"destination_account"`
}

// StellarID references a customer or account in an external system.
type StellarID struct {
	ID      string `json:"id,omitempty"`
	Account string `json:"account,omitempty"`
	Memo    string `json:"memo,omitempty"`
}

// Customers holds references into the customer service.
type Customers struct {
	Sender   StellarID `json:"sender"`
	Receiver StellarID `json:"receiver"`
}

// InstructionField is a single SEP-6 deposit instruction.
type InstructionField struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}
