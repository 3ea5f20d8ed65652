package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sep identifies the Stellar Ecosystem Proposal a transaction was created under.
type Sep string

const (
	Sep6  Sep = "6"
	Sep24 Sep = "24"
	Sep31 Sep = "31"
)

// Kind is the transfer direction of a transaction.
type Kind string

const (
	KindDeposit            Kind = "deposit"
	KindDepositExchange    Kind = "deposit-exchange"
	KindWithdrawal         Kind = "withdrawal"
	KindWithdrawalExchange Kind = "withdrawal-exchange"
	KindReceive            Kind = "receive"
)

// IsDeposit reports whether funds arrive off-chain and leave on-chain.
func (k Kind) IsDeposit() bool {
	return k == KindDeposit || k == KindDepositExchange
}

// IsWithdrawal reports whether funds arrive on-chain and leave off-chain.
// SEP-31 receives share the withdrawal direction.
func (k Kind) IsWithdrawal() bool {
	return k == KindWithdrawal || k == KindWithdrawalExchange || k == KindReceive
}

// IsExchange reports whether the kind converts between two different assets.
func (k Kind) IsExchange() bool {
	return k == KindDepositExchange || k == KindWithdrawalExchange
}

// Status is the lifecycle state of a transaction.
type Status string

const (
	StatusIncomplete                  Status = "incomplete"
	StatusPendingAnchor               Status = "pending_anchor"
	StatusPendingCustomerInfoUpdate   Status = "pending_customer_info_update"
	StatusPendingUserTransferStart    Status = "pending_user_transfer_start"
	StatusPendingUserTransferComplete Status = "pending_user_transfer_complete"
	StatusPendingTrust                Status = "pending_trust"
	StatusPendingExternal             Status = "pending_external"
	StatusPendingSender               Status = "pending_sender"
	StatusPendingReceiver             Status = "pending_receiver"
	StatusError                       Status = "error"
	StatusExpired                     Status = "expired"
	StatusCompleted                   Status = "completed"
	StatusRefunded                    Status = "refunded"
)

// AllStatuses lists every status known to the engine.
var AllStatuses = []Status{
	StatusIncomplete,
	StatusPendingAnchor,
	StatusPendingCustomerInfoUpdate,
	StatusPendingUserTransferStart,
	StatusPendingUserTransferComplete,
	StatusPendingTrust,
	StatusPendingExternal,
	StatusPendingSender,
	StatusPendingReceiver,
	StatusError,
	StatusExpired,
	StatusCompleted,
	StatusRefunded,
}

// IsTerminal reports whether no further transitions leave the status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRefunded
}

// IsError reports whether the status is an error-class status.
func (s Status) IsError() bool {
	return s == StatusError || s == StatusExpired
}

// Transaction is the mutable aggregate driven through its lifecycle by RPC actions.
type Transaction struct {
	ID   string
	Sep  Sep
	Kind Kind

	Status Status
	Type   string

	AmountExpected *Amount
	AmountIn       *Amount
	AmountOut      *Amount
	FeeDetails     *FeeDetails
	QuoteID        string

	StartedAt            time.Time
	UpdatedAt            time.Time
	CompletedAt          *time.Time
	TransferReceivedAt   *time.Time
	UserActionRequiredBy *time.Time

	Message                     string
	RequiredCustomerInfoUpdates []string

	SourceAccount         string
	DestinationAccount    string
	Memo                  string
	MemoType              string
	RefundMemo            string
	RefundMemoType        string
	ExternalTransactionID string
	StellarTransactionID  string

	StellarTransactions []StellarTransaction
	Refunds             *Refunds
	Instructions        map[string]InstructionField

	Customers  Customers
	ClientName string
	Creator    *StellarID

	// Version is bumped by the store on every successful save.
	Version int64
}

// FundsReceived reports whether an inbound leg has been notified.
func (t *Transaction) FundsReceived() bool {
	return t.TransferReceivedAt != nil
}

// AmountInAsset returns the asset of the inbound leg, or "" if not yet set.
func (t *Transaction) AmountInAsset() string {
	if t.AmountIn == nil {
		return ""
	}
	return t.AmountIn.Asset
}

// AmountOutAsset returns the asset of the outbound leg, or "" if not yet set.
func (t *Transaction) AmountOutAsset() string {
	if t.AmountOut == nil {
		return ""
	}
	return t.AmountOut.Asset
}

// AmountRefunded returns the cumulative refunded amount (payments plus fees).
func (t *Transaction) AmountRefunded() decimal.Decimal {
	if t.Refunds == nil {
		return decimal.Zero
	}
	return t.Refunds.AmountRefunded.Amount
}

// Clone returns a deep copy so that handlers can mutate without touching the stored record.
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	c.AmountExpected = t.AmountExpected.clone()
	c.AmountIn = t.AmountIn.clone()
	c.AmountOut = t.AmountOut.clone()
	if t.FeeDetails != nil {
		fd := *t.FeeDetails
		fd.Details = append([]FeeDescription(nil), t.FeeDetails.Details...)
		c.FeeDetails = &fd
	}
	c.CompletedAt = cloneTime(t.CompletedAt)
	c.TransferReceivedAt = cloneTime(t.TransferReceivedAt)
	c.UserActionRequiredBy = cloneTime(t.UserActionRequiredBy)
	c.RequiredCustomerInfoUpdates = append([]string(nil), t.RequiredCustomerInfoUpdates...)
	if t.StellarTransactions != nil {
		c.StellarTransactions = make([]StellarTransaction, len(t.StellarTransactions))
		for i, st := range t.StellarTransactions {
			st.Payments = append([]StellarPayment(nil), st.Payments...)
			c.StellarTransactions[i] = st
		}
	}
	if t.Refunds != nil {
		r := *t.Refunds
		r.Payments = append([]RefundPayment(nil), t.Refunds.Payments...)
		c.Refunds = &r
	}
	if t.Instructions != nil {
		c.Instructions = make(map[string]InstructionField, len(t.Instructions))
		for k, v := range t.Instructions {
			c.Instructions[k] = v
		}
	}
	if t.Creator != nil {
		cr := *t.Creator
		c.Creator = &cr
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
