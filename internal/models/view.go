package models

import "time"

// TransactionView is the public representation of a transaction returned as an RPC result.
// swagger:model TransactionView
type TransactionView struct {
	ID     string `json:"id"`
	Sep    Sep    `json:"sep"`
	Kind   Kind   `json:"kind"`
	Status Status `json:"status"`
	Type   string `json:"type"`

	AmountExpected *Amount     `json:"amount_expected"`
	AmountIn       *Amount     `json:"amount_in"`
	AmountOut      *Amount     `json:"amount_out"`
	FeeDetails     *FeeDetails `json:"fee_details"`
	QuoteID        string      `json:"quote_id,omitempty"`

	StartedAt            time.Time  `json:"started_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	TransferReceivedAt   *time.Time `json:"transfer_received_at,omitempty"`
	UserActionRequiredBy *time.Time `json:"user_action_required_by,omitempty"`

	Message                     string   `json:"message"`
	RequiredCustomerInfoUpdates []string `json:"required_customer_info_updates,omitempty"`

	SourceAccount         string `json:"source_account,omitempty"`
	DestinationAccount    string `json:"destination_account,omitempty"`
	Memo                  string `json:"memo,omitempty"`
	MemoType              string `json:"memo_type,omitempty"`
	RefundMemo            string `json:"refund_memo,omitempty"`
	RefundMemoType        string `json:"refund_memo_type,omitempty"`
	ExternalTransactionID string `json:"external_transaction_id,omitempty"`

	StellarTransactions []StellarTransaction        `json:"stellar_transactions,omitempty"`
	Refunds             *Refunds                    `json:"refunds,omitempty"`
	Instructions        map[string]InstructionField `json:"instructions,omitempty"`

	Customers  Customers  `json:"customers"`
	ClientName string     `json:"client_name,omitempty"`
	Creator    *StellarID `json:"creator,omitempty"`
}

// NewTransactionView renders the public view of txn. The view shares no memory with txn.
func NewTransactionView(txn *Transaction) *TransactionView {
	c := txn.Clone()
	return &TransactionView{
		ID:                          c.ID,
		Sep:                         c.Sep,
		Kind:                        c.Kind,
		Status:                      c.Status,
		Type:                        c.Type,
		AmountExpected:              c.AmountExpected,
		AmountIn:                    c.AmountIn,
		AmountOut:                   c.AmountOut,
		FeeDetails:                  c.FeeDetails,
		QuoteID:                     c.QuoteID,
		StartedAt:                   c.StartedAt,
		UpdatedAt:                   c.UpdatedAt,
		CompletedAt:                 c.CompletedAt,
		TransferReceivedAt:          c.TransferReceivedAt,
		UserActionRequiredBy:        c.UserActionRequiredBy,
		Message:                     c.Message,
		RequiredCustomerInfoUpdates: c.RequiredCustomerInfoUpdates,
		SourceAccount:               c.SourceAccount,
		DestinationAccount:          c.DestinationAccount,
		Memo:                        c.Memo,
		MemoType:                    c.MemoType,
		RefundMemo:                  c.RefundMemo,
		RefundMemoType:              c.RefundMemoType,
		ExternalTransactionID:       c.ExternalTransactionID,
		StellarTransactions:         c.StellarTransactions,
		Refunds:                     c.Refunds,
		Instructions:                c.Instructions,
		Customers:                   c.Customers,
		ClientName:                  c.ClientName,
		Creator:                     c.Creator,
	}
}
