package services

import (
	"fmt"

	"github.com/stellar/anchor-platform-sub000/internal/models"
)

// fundsGuard constrains an edge on the funds-received flag.
type fundsGuard int

const (
	anyFunds fundsGuard = iota
	fundsReceived
	fundsNotReceived
)

func (g fundsGuard) values() []bool {
	switch g {
	case fundsReceived:
		return []bool{true}
	case fundsNotReceived:
		return []bool{false}
	default:
		return []bool{false, true}
	}
}

// scope is a protocol together with the kinds an edge applies to.
type scope struct {
	sep   models.Sep
	kinds []models.Kind
}

var (
	deposit6    = scope{models.Sep6, []models.Kind{models.KindDeposit, models.KindDepositExchange}}
	deposit24   = scope{models.Sep24, []models.Kind{models.KindDeposit}}
	withdrawal6 = scope{models.Sep6, []models.Kind{models.KindWithdrawal, models.KindWithdrawalExchange}}
	withdraw24  = scope{models.Sep24, []models.Kind{models.KindWithdrawal}}
	receive31   = scope{models.Sep31, []models.Kind{models.KindReceive}}
	all6        = scope{models.Sep6, []models.Kind{models.KindDeposit, models.KindDepositExchange, models.KindWithdrawal, models.KindWithdrawalExchange}}
	all24       = scope{models.Sep24, []models.Kind{models.KindDeposit, models.KindWithdrawal}}

	depositScopes    = []scope{deposit6, deposit24}
	withdrawalScopes = []scope{withdrawal6, withdraw24}
	sep624Scopes     = []scope{all6, all24}
	allScopes        = []scope{all6, all24, receive31}
)

// rule is one row of the transition table before expansion.
type rule struct {
	method Method
	scopes []scope
	from   []models.Status
	funds  fundsGuard
	to     models.Status
}

// activeStatuses are the statuses an error or expiry may interrupt.
var activeStatuses = []models.Status{
	models.StatusIncomplete,
	models.StatusPendingAnchor,
	models.StatusPendingCustomerInfoUpdate,
	models.StatusPendingUserTransferStart,
	models.StatusPendingUserTransferComplete,
	models.StatusPendingTrust,
	models.StatusPendingExternal,
	models.StatusPendingSender,
	models.StatusPendingReceiver,
}

var rules = []rule{
	{MethodNotifyInteractiveFlowCompleted, []scope{all24}, []models.Status{models.StatusIncomplete}, fundsNotReceived, models.StatusPendingAnchor},

	{MethodRequestOffchainFunds, depositScopes, []models.Status{models.StatusIncomplete, models.StatusPendingAnchor}, fundsNotReceived, models.StatusPendingUserTransferStart},
	{MethodRequestOnchainFunds, withdrawalScopes, []models.Status{models.StatusIncomplete, models.StatusPendingAnchor}, fundsNotReceived, models.StatusPendingUserTransferStart},

	{MethodNotifyOffchainFundsSent, depositScopes, []models.Status{models.StatusPendingUserTransferStart}, fundsNotReceived, models.StatusPendingExternal},
	{MethodNotifyOffchainFundsReceived, depositScopes, []models.Status{models.StatusPendingUserTransferStart, models.StatusPendingExternal, models.StatusPendingAnchor}, fundsNotReceived, models.StatusPendingAnchor},
	{MethodNotifyOnchainFundsReceived, withdrawalScopes, []models.Status{models.StatusPendingUserTransferStart}, fundsNotReceived, models.StatusPendingAnchor},
	{MethodNotifyOnchainFundsReceived, []scope{receive31}, []models.Status{models.StatusPendingSender}, fundsNotReceived, models.StatusPendingReceiver},

	{MethodRequestTrust, depositScopes, []models.Status{models.StatusPendingAnchor}, fundsReceived, models.StatusPendingTrust},
	{MethodNotifyTrustSet, depositScopes, []models.Status{models.StatusPendingTrust}, fundsReceived, models.StatusPendingAnchor},
	{MethodNotifyOnchainFundsSent, depositScopes, []models.Status{models.StatusPendingAnchor}, fundsReceived, models.StatusCompleted},
	{MethodNotifyAmountsUpdated, sep624Scopes, []models.Status{models.StatusPendingAnchor}, fundsReceived, models.StatusPendingAnchor},

	{MethodNotifyOffchainFundsPending, withdrawalScopes, []models.Status{models.StatusPendingAnchor}, fundsReceived, models.StatusPendingExternal},
	{MethodNotifyOffchainFundsPending, []scope{receive31}, []models.Status{models.StatusPendingReceiver}, fundsReceived, models.StatusPendingExternal},
	{MethodNotifyOffchainFundsAvailable, withdrawalScopes, []models.Status{models.StatusPendingAnchor, models.StatusPendingExternal}, fundsReceived, models.StatusPendingUserTransferComplete},
	{MethodNotifyOffchainFundsSent, withdrawalScopes, []models.Status{models.StatusPendingAnchor, models.StatusPendingExternal, models.StatusPendingUserTransferComplete}, fundsReceived, models.StatusCompleted},
	{MethodNotifyOffchainFundsSent, []scope{receive31}, []models.Status{models.StatusPendingReceiver, models.StatusPendingExternal}, fundsReceived, models.StatusCompleted},

	{MethodNotifyRefundPending, sep624Scopes, []models.Status{models.StatusPendingAnchor}, fundsReceived, models.StatusPendingExternal},
	{MethodNotifyRefundPending, []scope{receive31}, []models.Status{models.StatusPendingReceiver}, fundsReceived, models.StatusPendingExternal},
	// A full refund promotes the result to refunded.
	{MethodNotifyRefundSent, sep624Scopes, []models.Status{models.StatusPendingAnchor, models.StatusPendingExternal}, fundsReceived, models.StatusPendingAnchor},
	{MethodNotifyRefundSent, []scope{receive31}, []models.Status{models.StatusPendingReceiver, models.StatusPendingExternal}, fundsReceived, models.StatusRefunded},

	{MethodRequestCustomerInfoUpdate, []scope{all6}, []models.Status{models.StatusIncomplete, models.StatusPendingAnchor}, anyFunds, models.StatusPendingCustomerInfoUpdate},
	{MethodRequestCustomerInfoUpdate, []scope{receive31}, []models.Status{models.StatusPendingReceiver}, anyFunds, models.StatusPendingCustomerInfoUpdate},
	{MethodNotifyCustomerInfoUpdated, []scope{all6}, []models.Status{models.StatusPendingCustomerInfoUpdate}, anyFunds, models.StatusPendingAnchor},
	{MethodNotifyCustomerInfoUpdated, []scope{receive31}, []models.Status{models.StatusPendingCustomerInfoUpdate}, anyFunds, models.StatusPendingReceiver},

	{MethodNotifyTransactionExpired, allScopes, activeStatuses, fundsNotReceived, models.StatusExpired},
	{MethodNotifyTransactionError, allScopes, activeStatuses, anyFunds, models.StatusError},
	{MethodNotifyTransactionRecovery, sep624Scopes, []models.Status{models.StatusError, models.StatusExpired}, anyFunds, models.StatusPendingAnchor},
	{MethodNotifyTransactionRecovery, []scope{receive31}, []models.Status{models.StatusError, models.StatusExpired}, anyFunds, models.StatusPendingReceiver},
}

// transitionKey identifies a single edge of the state machine.
type transitionKey struct {
	method        Method
	sep           models.Sep
	kind          models.Kind
	status        models.Status
	fundsReceived bool
}

// TransitionTable answers whether a method may run on a transaction and which status it leads to.
type TransitionTable struct {
	edges map[transitionKey]models.Status
}

// NewTransitionTable expands the rule set into a lookup table.
func NewTransitionTable() *TransitionTable {
	edges := make(map[transitionKey]models.Status)
	for _, r := range rules {
		for _, sc := range r.scopes {
			for _, kind := range sc.kinds {
				for _, from := range r.from {
					for _, funds := range r.funds.values() {
						key := transitionKey{r.method, sc.sep, kind, from, funds}
						if prev, ok := edges[key]; ok && prev != r.to {
							panic(fmt.Sprintf("conflicting transition for %+v: %s and %s", key, prev, r.to))
						}
						edges[key] = r.to
					}
				}
			}
		}
	}
	return &TransitionTable{edges: edges}
}

// Allowed returns the nominal next status of method for the given transaction coordinates.
func (t *TransitionTable) Allowed(sep models.Sep, kind models.Kind, status models.Status, fundsReceived bool, method Method) (models.Status, bool) {
	next, ok := t.edges[transitionKey{method, sep, kind, status, fundsReceived}]
	return next, ok
}

// Check is Allowed for a transaction, returning the compatibility error when the edge is absent.
func (t *TransitionTable) Check(txn *models.Transaction, method Method) (models.Status, error) {
	next, ok := t.Allowed(txn.Sep, txn.Kind, txn.Status, txn.FundsReceived(), method)
	if !ok {
		return "", NewInvalidRequestError(
			"RPC method[%s] is not supported. Status[%s], kind[%s], protocol[%s], funds received[%t]",
			method, txn.Status, txn.Kind, txn.Sep, txn.FundsReceived())
	}
	return next, nil
}

// Len returns the number of expanded edges.
func (t *TransitionTable) Len() int {
	return len(t.edges)
}
