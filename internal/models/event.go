package models

import "time"

// EventTypeTransactionStatusChanged is emitted after every successful RPC mutation.
const EventTypeTransactionStatusChanged = "transaction_status_changed"

// AnchorEvent is published to the event stream after a transaction changes.
type AnchorEvent struct {
	ID          string           `json:"id"`
	Type        string           `json:"type"`
	Sep         Sep              `json:"sep"`
	Timestamp   time.Time        `json:"timestamp"`
	Transaction *TransactionView `json:"transaction"`
}
