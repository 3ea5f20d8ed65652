package services

import (
	"context"
	"errors"
	"time"

	"github.com/facebookgo/clock"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

//go:generate mockgen -source=dispatcher.go -destination=dispatcher_mock.go -package=services

// maxSaveAttempts bounds reload-and-retry on optimistic version conflicts.
const maxSaveAttempts = 3

// TransactionStore loads and persists transactions.
type TransactionStore interface {
	FindByID(ctx context.Context, id string) (*models.Transaction, error) // Returns nil if the transaction does not exist
	Save(ctx context.Context, txn *models.Transaction) error              // Returns models.ErrVersionConflict on a stale write
}

// Locker serializes mutators of the same transaction id.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error) // The returned func releases the lock and is safe to call twice
}

// EventPublisher announces committed transaction changes.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, txn *models.Transaction)
}

// RpcDispatcher executes a single JSON-RPC request against its transaction.
type RpcDispatcher struct {
	store     TransactionStore
	locker    Locker
	table     *TransitionTable
	validator *AmountValidator
	handlers  *actionHandlers
	events    EventPublisher
	clock     clock.Clock
}

// NewRpcDispatcher creates a new RpcDispatcher. events may be nil.
func NewRpcDispatcher(
	store TransactionStore,
	locker Locker,
	assets *AssetRegistry,
	quotes QuoteReader,
	ledger LedgerClient,
	customers CustomerReader,
	events EventPublisher,
	clk clock.Clock,
) *RpcDispatcher {
	return &RpcDispatcher{
		store:     store,
		locker:    locker,
		table:     NewTransitionTable(),
		validator: NewAmountValidator(assets, quotes),
		handlers:  &actionHandlers{ledger: ledger, customers: customers},
		events:    events,
		clock:     clk,
	}
}

// Dispatch runs req and renders the outcome as a response. It never returns a nil error member on failure.
func (d *RpcDispatcher) Dispatch(ctx context.Context, req models.RpcRequest) models.RpcResponse {
	resp := models.RpcResponse{JSONRPC: models.JSONRPCVersion, ID: req.ID}
	view, err := d.dispatch(ctx, req)
	if err != nil {
		rpcErr := toRpcError(err)
		logger.Log.Warnw("rpc request failed", "id", req.ID, "method", req.Method, "code", rpcErr.Code, "error", rpcErr.Message)
		resp.Error = &models.RpcError{ID: req.ID, Code: rpcErr.Code, Message: rpcErr.Message}
		return resp
	}
	resp.Result = view
	return resp
}

func (d *RpcDispatcher) dispatch(ctx context.Context, req models.RpcRequest) (*models.TransactionView, error) {
	if req.ID == nil {
		return nil, NewInvalidRequestError("Id can't be NULL")
	}
	if req.JSONRPC != models.JSONRPCVersion {
		return nil, NewInvalidRequestError("Unsupported JSON-RPC protocol version[%s]", req.JSONRPC)
	}
	txnID, err := transactionIDOf(req.Params)
	if err != nil {
		return nil, err
	}
	if txnID == "" {
		return nil, NewInvalidParamsError("transaction_id is required")
	}

	unlock, err := d.locker.Lock(ctx, txnID)
	if err != nil {
		logger.Log.Errorw("failed to lock transaction", "transaction_id", txnID, "error", err)
		return nil, NewInternalError("Failed to lock transaction with id[%s]", txnID)
	}
	defer unlock()

	for attempt := 1; ; attempt++ {
		view, err := d.execute(ctx, req, txnID)
		if errors.Is(err, models.ErrVersionConflict) && attempt < maxSaveAttempts {
			logger.Log.Warnw("transaction version conflict, retrying", "transaction_id", txnID, "attempt", attempt)
			continue
		}
		return view, err
	}
}

// execute loads the transaction, checks the request against it and commits the mutation.
func (d *RpcDispatcher) execute(ctx context.Context, req models.RpcRequest, txnID string) (*models.TransactionView, error) {
	txn, err := d.store.FindByID(ctx, txnID)
	if err != nil {
		logger.Log.Errorw("failed to load transaction", "transaction_id", txnID, "error", err)
		return nil, NewInternalError("Failed to load transaction with id[%s]", txnID)
	}
	if txn == nil {
		return nil, NewInvalidRequestError("Transaction with id[%s] is not found", txnID)
	}

	action, err := decodeAction(req.Method, req.Params)
	if err != nil {
		return nil, err
	}
	if _, ok := action.(*GetTransactionParams); ok {
		return models.NewTransactionView(txn), nil
	}

	next, err := d.table.Check(txn, action.Method())
	if err != nil {
		return nil, err
	}
	now := d.clock.Now().UTC()
	if err := validateCommon(action, next, now); err != nil {
		return nil, err
	}
	if err := d.validator.Validate(ctx, txn, action); err != nil {
		return nil, err
	}

	updated := txn.Clone()
	applyCommon(updated, txn.Status, action, next)
	next, err = d.handlers.apply(ctx, updated, action, next, now)
	if err != nil {
		return nil, err
	}
	updated.Status = next
	updated.UpdatedAt = now
	if next.IsTerminal() && updated.CompletedAt == nil {
		updated.CompletedAt = &now
	}

	if err := d.store.Save(ctx, updated); err != nil {
		if errors.Is(err, models.ErrVersionConflict) {
			return nil, err
		}
		logger.Log.Errorw("failed to save transaction", "transaction_id", txnID, "error", err)
		return nil, NewInternalError("Failed to save transaction with id[%s]", txnID)
	}
	logger.Log.Infow("transaction updated", "transaction_id", txnID, "method", action.Method(), "from", txn.Status, "to", next)

	if d.events != nil {
		d.events.PublishStatusChanged(ctx, updated)
	}
	return models.NewTransactionView(updated), nil
}

// validateCommon checks the parameters shared by every method.
func validateCommon(action Action, next models.Status, now time.Time) error {
	base := action.base()
	if next.IsError() && (base.Message == nil || *base.Message == "") {
		return NewInvalidParamsError("message is required")
	}
	if ua, ok := action.(userActionRequester); ok {
		if by := ua.userActionRequiredBy(); by != nil && by.Before(now) {
			return NewInvalidParamsError("user_action_required_by can not be in the past")
		}
	}
	return nil
}

// applyCommon sets the message and user_action_required_by. It runs before the method handler.
func applyCommon(txn *models.Transaction, prev models.Status, action Action, next models.Status) {
	base := action.base()
	switch {
	case base.Message != nil:
		txn.Message = *base.Message
	case prev.IsError() && !next.IsError():
		txn.Message = ""
	}

	txn.UserActionRequiredBy = nil
	if ua, ok := action.(userActionRequester); ok {
		if by := ua.userActionRequiredBy(); by != nil {
			v := by.UTC()
			txn.UserActionRequiredBy = &v
		}
	}
}
