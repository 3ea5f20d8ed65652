package services

// Method is an RPC method name.
type Method string

const (
	MethodNotifyInteractiveFlowCompleted Method = "notify_interactive_flow_completed"
	MethodRequestOffchainFunds           Method = "request_offchain_funds"
	MethodRequestOnchainFunds            Method = "request_onchain_funds"
	MethodNotifyOffchainFundsReceived    Method = "notify_offchain_funds_received"
	MethodNotifyOnchainFundsReceived     Method = "notify_onchain_funds_received"
	MethodNotifyOnchainFundsSent         Method = "notify_onchain_funds_sent"
	MethodNotifyOffchainFundsSent        Method = "notify_offchain_funds_sent"
	MethodNotifyOffchainFundsPending     Method = "notify_offchain_funds_pending"
	MethodNotifyOffchainFundsAvailable   Method = "notify_offchain_funds_available"
	MethodNotifyRefundPending            Method = "notify_refund_pending"
	MethodNotifyRefundSent               Method = "notify_refund_sent"
	MethodNotifyTransactionError         Method = "notify_transaction_error"
	MethodNotifyTransactionExpired       Method = "notify_transaction_expired"
	MethodNotifyTransactionRecovery      Method = "notify_transaction_recovery"
	MethodRequestTrust                   Method = "request_trust"
	MethodNotifyTrustSet                 Method = "notify_trust_set"
	MethodRequestCustomerInfoUpdate      Method = "request_customer_info_update"
	MethodNotifyCustomerInfoUpdated      Method = "notify_customer_info_updated"
	MethodNotifyAmountsUpdated           Method = "notify_amounts_updated"
	MethodGetTransaction                 Method = "get_transaction"
)

// TransitionMethods lists every method that moves a transaction through the state machine.
var TransitionMethods = []Method{
	MethodNotifyInteractiveFlowCompleted,
	MethodRequestOffchainFunds,
	MethodRequestOnchainFunds,
	MethodNotifyOffchainFundsReceived,
	MethodNotifyOnchainFundsReceived,
	MethodNotifyOnchainFundsSent,
	MethodNotifyOffchainFundsSent,
	MethodNotifyOffchainFundsPending,
	MethodNotifyOffchainFundsAvailable,
	MethodNotifyRefundPending,
	MethodNotifyRefundSent,
	MethodNotifyTransactionError,
	MethodNotifyTransactionExpired,
	MethodNotifyTransactionRecovery,
	MethodRequestTrust,
	MethodNotifyTrustSet,
	MethodRequestCustomerInfoUpdate,
	MethodNotifyCustomerInfoUpdated,
	MethodNotifyAmountsUpdated,
}
