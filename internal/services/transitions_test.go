package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/anchor-platform-sub000/internal/models"
)

var allSeps = map[models.Sep][]models.Kind{
	models.Sep6:  {models.KindDeposit, models.KindDepositExchange, models.KindWithdrawal, models.KindWithdrawalExchange},
	models.Sep24: {models.KindDeposit, models.KindWithdrawal},
	models.Sep31: {models.KindReceive},
}

func TestTransitionTable_Allowed(t *testing.T) {
	table := NewTransitionTable()

	tests := []struct {
		name          string
		sep           models.Sep
		kind          models.Kind
		status        models.Status
		fundsReceived bool
		method        Method
		expected      models.Status
		allowed       bool
	}{
		{"sep24 interactive flow completed", models.Sep24, models.KindDeposit, models.StatusIncomplete, false, MethodNotifyInteractiveFlowCompleted, models.StatusPendingAnchor, true},
		{"sep6 has no interactive flow", models.Sep6, models.KindDeposit, models.StatusIncomplete, false, MethodNotifyInteractiveFlowCompleted, "", false},
		{"sep24 deposit request offchain funds", models.Sep24, models.KindDeposit, models.StatusIncomplete, false, MethodRequestOffchainFunds, models.StatusPendingUserTransferStart, true},
		{"sep6 deposit-exchange request offchain funds", models.Sep6, models.KindDepositExchange, models.StatusPendingAnchor, false, MethodRequestOffchainFunds, models.StatusPendingUserTransferStart, true},
		{"withdrawal cannot request offchain funds", models.Sep24, models.KindWithdrawal, models.StatusIncomplete, false, MethodRequestOffchainFunds, "", false},
		{"sep31 cannot request offchain funds", models.Sep31, models.KindReceive, models.StatusPendingSender, false, MethodRequestOffchainFunds, "", false},
		{"request offchain funds twice", models.Sep24, models.KindDeposit, models.StatusPendingUserTransferStart, false, MethodRequestOffchainFunds, "", false},
		{"sep6 withdrawal request onchain funds", models.Sep6, models.KindWithdrawal, models.StatusIncomplete, false, MethodRequestOnchainFunds, models.StatusPendingUserTransferStart, true},
		{"offchain funds received from user transfer start", models.Sep24, models.KindDeposit, models.StatusPendingUserTransferStart, false, MethodNotifyOffchainFundsReceived, models.StatusPendingAnchor, true},
		{"offchain funds received from pending external", models.Sep6, models.KindDeposit, models.StatusPendingExternal, false, MethodNotifyOffchainFundsReceived, models.StatusPendingAnchor, true},
		{"offchain funds received twice", models.Sep24, models.KindDeposit, models.StatusPendingAnchor, true, MethodNotifyOffchainFundsReceived, "", false},
		{"deposit offchain funds sent", models.Sep24, models.KindDeposit, models.StatusPendingUserTransferStart, false, MethodNotifyOffchainFundsSent, models.StatusPendingExternal, true},
		{"withdrawal onchain funds received", models.Sep24, models.KindWithdrawal, models.StatusPendingUserTransferStart, false, MethodNotifyOnchainFundsReceived, models.StatusPendingAnchor, true},
		{"sep31 onchain funds received", models.Sep31, models.KindReceive, models.StatusPendingSender, false, MethodNotifyOnchainFundsReceived, models.StatusPendingReceiver, true},
		{"deposit onchain funds sent", models.Sep24, models.KindDeposit, models.StatusPendingAnchor, true, MethodNotifyOnchainFundsSent, models.StatusCompleted, true},
		{"onchain funds sent before funds received", models.Sep24, models.KindDeposit, models.StatusPendingAnchor, false, MethodNotifyOnchainFundsSent, "", false},
		{"withdrawal onchain funds sent", models.Sep24, models.KindWithdrawal, models.StatusPendingAnchor, true, MethodNotifyOnchainFundsSent, "", false},
		{"request trust", models.Sep6, models.KindDeposit, models.StatusPendingAnchor, true, MethodRequestTrust, models.StatusPendingTrust, true},
		{"trust set", models.Sep24, models.KindDeposit, models.StatusPendingTrust, true, MethodNotifyTrustSet, models.StatusPendingAnchor, true},
		{"amounts updated", models.Sep24, models.KindWithdrawal, models.StatusPendingAnchor, true, MethodNotifyAmountsUpdated, models.StatusPendingAnchor, true},
		{"sep31 amounts updated", models.Sep31, models.KindReceive, models.StatusPendingReceiver, true, MethodNotifyAmountsUpdated, "", false},
		{"withdrawal offchain funds pending", models.Sep6, models.KindWithdrawal, models.StatusPendingAnchor, true, MethodNotifyOffchainFundsPending, models.StatusPendingExternal, true},
		{"sep31 offchain funds pending", models.Sep31, models.KindReceive, models.StatusPendingReceiver, true, MethodNotifyOffchainFundsPending, models.StatusPendingExternal, true},
		{"withdrawal offchain funds available", models.Sep24, models.KindWithdrawal, models.StatusPendingExternal, true, MethodNotifyOffchainFundsAvailable, models.StatusPendingUserTransferComplete, true},
		{"withdrawal offchain funds sent", models.Sep24, models.KindWithdrawal, models.StatusPendingUserTransferComplete, true, MethodNotifyOffchainFundsSent, models.StatusCompleted, true},
		{"sep31 offchain funds sent", models.Sep31, models.KindReceive, models.StatusPendingReceiver, true, MethodNotifyOffchainFundsSent, models.StatusCompleted, true},
		{"refund pending", models.Sep24, models.KindWithdrawal, models.StatusPendingAnchor, true, MethodNotifyRefundPending, models.StatusPendingExternal, true},
		{"sep6 refund sent", models.Sep6, models.KindWithdrawal, models.StatusPendingAnchor, true, MethodNotifyRefundSent, models.StatusPendingAnchor, true},
		{"sep24 refund sent from pending external", models.Sep24, models.KindDeposit, models.StatusPendingExternal, true, MethodNotifyRefundSent, models.StatusPendingAnchor, true},
		{"sep31 refund sent", models.Sep31, models.KindReceive, models.StatusPendingReceiver, true, MethodNotifyRefundSent, models.StatusRefunded, true},
		{"refund before funds received", models.Sep24, models.KindWithdrawal, models.StatusPendingAnchor, false, MethodNotifyRefundSent, "", false},
		{"sep6 request customer info update", models.Sep6, models.KindDeposit, models.StatusIncomplete, false, MethodRequestCustomerInfoUpdate, models.StatusPendingCustomerInfoUpdate, true},
		{"sep24 request customer info update", models.Sep24, models.KindDeposit, models.StatusIncomplete, false, MethodRequestCustomerInfoUpdate, "", false},
		{"sep6 customer info updated", models.Sep6, models.KindWithdrawal, models.StatusPendingCustomerInfoUpdate, true, MethodNotifyCustomerInfoUpdated, models.StatusPendingAnchor, true},
		{"sep31 customer info updated", models.Sep31, models.KindReceive, models.StatusPendingCustomerInfoUpdate, true, MethodNotifyCustomerInfoUpdated, models.StatusPendingReceiver, true},
		{"expired", models.Sep24, models.KindDeposit, models.StatusPendingUserTransferStart, false, MethodNotifyTransactionExpired, models.StatusExpired, true},
		{"expired after funds received", models.Sep24, models.KindDeposit, models.StatusPendingAnchor, true, MethodNotifyTransactionExpired, "", false},
		{"error from pending anchor", models.Sep24, models.KindDeposit, models.StatusPendingAnchor, true, MethodNotifyTransactionError, models.StatusError, true},
		{"error from completed", models.Sep24, models.KindDeposit, models.StatusCompleted, true, MethodNotifyTransactionError, "", false},
		{"error from error", models.Sep24, models.KindDeposit, models.StatusError, true, MethodNotifyTransactionError, "", false},
		{"recovery from error", models.Sep6, models.KindDeposit, models.StatusError, true, MethodNotifyTransactionRecovery, models.StatusPendingAnchor, true},
		{"recovery from expired", models.Sep24, models.KindWithdrawal, models.StatusExpired, false, MethodNotifyTransactionRecovery, models.StatusPendingAnchor, true},
		{"sep31 recovery", models.Sep31, models.KindReceive, models.StatusError, true, MethodNotifyTransactionRecovery, models.StatusPendingReceiver, true},
		{"recovery from pending anchor", models.Sep24, models.KindDeposit, models.StatusPendingAnchor, true, MethodNotifyTransactionRecovery, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := table.Allowed(tt.sep, tt.kind, tt.status, tt.fundsReceived, tt.method)
			assert.Equal(t, tt.allowed, ok)
			assert.Equal(t, tt.expected, next)
		})
	}
}

func TestTransitionTable_TerminalStatusesHaveNoEdges(t *testing.T) {
	table := NewTransitionTable()
	for sep, kinds := range allSeps {
		for _, kind := range kinds {
			for _, status := range []models.Status{models.StatusCompleted, models.StatusRefunded} {
				for _, funds := range []bool{false, true} {
					for _, method := range TransitionMethods {
						_, ok := table.Allowed(sep, kind, status, funds, method)
						assert.False(t, ok, "%s %s %s %t %s", sep, kind, status, funds, method)
					}
				}
			}
		}
	}
}

func TestTransitionTable_EveryMethodHasAnEdge(t *testing.T) {
	table := NewTransitionTable()
	assert.Greater(t, table.Len(), 0)

	for _, method := range TransitionMethods {
		found := false
		for sep, kinds := range allSeps {
			for _, kind := range kinds {
				for _, status := range models.AllStatuses {
					for _, funds := range []bool{false, true} {
						if next, ok := table.Allowed(sep, kind, status, funds, method); ok {
							found = true
							assert.NotEmpty(t, next)
						}
					}
				}
			}
		}
		assert.True(t, found, "method %s has no edge", method)
	}
}

func TestTransitionTable_GetTransactionIsNotAnEdge(t *testing.T) {
	table := NewTransitionTable()
	_, ok := table.Allowed(models.Sep24, models.KindDeposit, models.StatusIncomplete, false, MethodGetTransaction)
	assert.False(t, ok)
}

func TestTransitionTable_Check(t *testing.T) {
	table := NewTransitionTable()

	next, err := table.Check(depositWithAmounts("t-1", models.StatusPendingAnchor, true), MethodNotifyOnchainFundsSent)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, next)

	_, err = table.Check(depositWithAmounts("t-1", models.StatusPendingUserTransferStart, false), MethodRequestOffchainFunds)
	requireRpcError(t, err, models.CodeInvalidRequest,
		"RPC method[request_offchain_funds] is not supported. Status[pending_user_transfer_start], kind[deposit], protocol[24], funds received[false]")
}
