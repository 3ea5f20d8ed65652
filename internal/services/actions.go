package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

//go:generate mockgen -source=actions.go -destination=actions_mock.go -package=services

// LedgerClient reads confirmed state from the Stellar network.
type LedgerClient interface {
	HasTrustline(ctx context.Context, account, asset string) (bool, error)                   // Reports whether account trusts asset
	GetTransaction(ctx context.Context, hash string) (*models.StellarTransaction, error) // Returns the settled transaction, nil if unknown
}

// CustomerReader resolves KYC records by id.
type CustomerReader interface {
	GetCustomer(ctx context.Context, id string) (*models.Customer, error) // Returns nil if the customer does not exist
}

// actionHandlers applies the mutation of each method to a transaction copy.
type actionHandlers struct {
	ledger    LedgerClient
	customers CustomerReader
}

// apply mutates txn for action and returns the final status. next is the status the transition table selected.
func (h *actionHandlers) apply(ctx context.Context, txn *models.Transaction, action Action, next models.Status, now time.Time) (models.Status, error) {
	switch a := action.(type) {
	case *NotifyInteractiveFlowCompletedParams:
		setRequestedAmounts(txn, a.AmountIn, a.AmountOut, a.fee(), a.AmountExpected)
		return next, nil
	case *RequestOffchainFundsParams:
		setRequestedAmounts(txn, a.AmountIn, a.AmountOut, a.fee(), a.AmountExpected)
		if len(a.Instructions) > 0 {
			txn.Instructions = a.Instructions
		}
		return next, nil
	case *RequestOnchainFundsParams:
		setRequestedAmounts(txn, a.AmountIn, a.AmountOut, a.fee(), a.AmountExpected)
		if a.DestinationAccount != "" {
			txn.DestinationAccount = a.DestinationAccount
		}
		if a.Memo != "" {
			txn.Memo, txn.MemoType = a.Memo, a.MemoType
		}
		return next, nil
	case *NotifyOffchainFundsReceivedParams:
		return h.offchainFundsReceived(txn, a, next, now)
	case *NotifyOnchainFundsReceivedParams:
		return h.onchainFundsReceived(ctx, txn, a, next, now)
	case *NotifyOnchainFundsSentParams:
		return h.onchainFundsSent(ctx, txn, a, next)
	case *NotifyOffchainFundsSentParams:
		setExternalID(txn, a.ExternalTransactionID)
		if a.FundsSentAt != nil && next.IsTerminal() {
			sentAt := a.FundsSentAt.UTC()
			txn.CompletedAt = &sentAt
		}
		return next, nil
	case *NotifyOffchainFundsPendingParams:
		setExternalID(txn, a.ExternalTransactionID)
		return next, nil
	case *NotifyOffchainFundsAvailableParams:
		setExternalID(txn, a.ExternalTransactionID)
		return next, nil
	case *NotifyRefundPendingParams:
		addRefundPayment(txn, a.Refund)
		return next, nil
	case *NotifyRefundSentParams:
		return h.refundSent(txn, a, next)
	case *NotifyTransactionErrorParams, *NotifyTransactionExpiredParams, *NotifyTransactionRecoveryParams, *RequestTrustParams:
		return next, nil
	case *NotifyTrustSetParams:
		return h.trustSet(ctx, txn, a, next)
	case *RequestCustomerInfoUpdateParams:
		if a.RequiredCustomerInfoMessage != "" {
			txn.Message = a.RequiredCustomerInfoMessage
		}
		txn.RequiredCustomerInfoUpdates = a.RequiredCustomerInfoUpdates
		return next, nil
	case *NotifyCustomerInfoUpdatedParams:
		return h.customerInfoUpdated(ctx, txn, a, next)
	case *NotifyAmountsUpdatedParams:
		txn.AmountOut = &models.Amount{Amount: a.AmountOut.Amount.mustDecimal(), Asset: txn.AmountOutAsset()}
		txn.FeeDetails = toFeeDetails(a.FeeDetails)
		return next, nil
	}
	return "", NewMethodNotFoundError("No matching RPC method[%s]", action.Method())
}

func (h *actionHandlers) offchainFundsReceived(txn *models.Transaction, a *NotifyOffchainFundsReceivedParams, next models.Status, now time.Time) (models.Status, error) {
	receivedAt := now
	if a.FundsReceivedAt != nil {
		receivedAt = a.FundsReceivedAt.UTC()
	}
	txn.TransferReceivedAt = &receivedAt
	setExternalID(txn, a.ExternalTransactionID)
	setReceivedAmounts(txn, a.AmountIn, a.AmountOut, a.FeeDetails)
	return next, nil
}

func (h *actionHandlers) onchainFundsReceived(ctx context.Context, txn *models.Transaction, a *NotifyOnchainFundsReceivedParams, next models.Status, now time.Time) (models.Status, error) {
	if err := h.attachStellarTransaction(ctx, txn, a.StellarTransactionID); err != nil {
		return "", err
	}
	txn.TransferReceivedAt = &now
	setReceivedAmounts(txn, a.AmountIn, a.AmountOut, a.FeeDetails)
	return next, nil
}

func (h *actionHandlers) onchainFundsSent(ctx context.Context, txn *models.Transaction, a *NotifyOnchainFundsSentParams, next models.Status) (models.Status, error) {
	if err := h.attachStellarTransaction(ctx, txn, a.StellarTransactionID); err != nil {
		return "", err
	}
	return next, nil
}

// attachStellarTransaction resolves hash on the ledger and records it on txn, replacing an earlier record with the same id.
func (h *actionHandlers) attachStellarTransaction(ctx context.Context, txn *models.Transaction, hash string) error {
	if hash == "" {
		return NewInvalidParamsError("stellar_transaction_id is required")
	}
	st, err := h.ledger.GetTransaction(ctx, hash)
	if err != nil {
		logger.Log.Errorw("failed to get stellar transaction", "transaction_id", txn.ID, "hash", hash, "error", err)
		return NewInternalError("Failed to retrieve Stellar transaction by ID[%s]", hash)
	}
	if st == nil {
		return NewInternalError("Failed to retrieve Stellar transaction by ID[%s]", hash)
	}
	txn.StellarTransactionID = hash
	for i := range txn.StellarTransactions {
		if txn.StellarTransactions[i].ID == st.ID {
			txn.StellarTransactions[i] = *st
			return nil
		}
	}
	txn.StellarTransactions = append(txn.StellarTransactions, *st)
	return nil
}

func (h *actionHandlers) refundSent(txn *models.Transaction, a *NotifyRefundSentParams, next models.Status) (models.Status, error) {
	if a.Refund != nil {
		addRefundPayment(txn, a.Refund)
	}
	if txn.AmountIn != nil && txn.AmountRefunded().GreaterThanOrEqual(txn.AmountIn.Amount) {
		return models.StatusRefunded, nil
	}
	return next, nil
}

func (h *actionHandlers) trustSet(ctx context.Context, txn *models.Transaction, a *NotifyTrustSetParams, next models.Status) (models.Status, error) {
	if !a.succeeded() {
		return next, nil
	}
	ok, err := h.ledger.HasTrustline(ctx, txn.DestinationAccount, txn.AmountOutAsset())
	if err != nil {
		logger.Log.Errorw("failed to check trustline", "transaction_id", txn.ID, "account", txn.DestinationAccount, "error", err)
		return "", NewInternalError("Failed to check trustline for account[%s]", txn.DestinationAccount)
	}
	if !ok {
		return "", NewInvalidParamsError("Trustline for account[%s] and asset[%s] is not configured",
			txn.DestinationAccount, txn.AmountOutAsset())
	}
	return next, nil
}

func (h *actionHandlers) customerInfoUpdated(ctx context.Context, txn *models.Transaction, a *NotifyCustomerInfoUpdatedParams, next models.Status) (models.Status, error) {
	txn.RequiredCustomerInfoUpdates = nil
	if a.CustomerID == "" {
		return next, nil
	}
	if a.CustomerType != "" && a.CustomerType != "sender" && a.CustomerType != "receiver" {
		return "", NewInvalidParamsError("customer_type should be sender or receiver")
	}
	customer, err := h.customers.GetCustomer(ctx, a.CustomerID)
	if err != nil {
		logger.Log.Errorw("failed to get customer", "transaction_id", txn.ID, "customer_id", a.CustomerID, "error", err)
		return "", NewInternalError("Failed to retrieve customer with id[%s]", a.CustomerID)
	}
	if customer == nil {
		return "", NewInvalidParamsError("Customer with id[%s] is not found", a.CustomerID)
	}
	if a.CustomerType == "sender" {
		txn.Customers.Sender.ID = customer.ID
	} else {
		txn.Customers.Receiver.ID = customer.ID
	}
	return next, nil
}

func setExternalID(txn *models.Transaction, id string) {
	if id != "" {
		txn.ExternalTransactionID = id
	}
}

// setRequestedAmounts stores amounts that passed validation. amount_expected defaults to amount_in.
func setRequestedAmounts(txn *models.Transaction, in, out *AmountAssetParam, fee *FeeDetailsParam, expected *AmountParam) {
	if in != nil {
		txn.AmountIn = toAmount(in)
		txn.AmountOut = toAmount(out)
		txn.FeeDetails = toFeeDetails(fee)
		txn.AmountExpected = &models.Amount{Amount: txn.AmountIn.Amount, Asset: txn.AmountIn.Asset}
	}
	if expected != nil {
		txn.AmountExpected = &models.Amount{Amount: expected.Amount.mustDecimal(), Asset: txn.AmountInAsset()}
	}
}

func setReceivedAmounts(txn *models.Transaction, in, out *AmountParam, fee *FeeDetailsParam) {
	if in != nil {
		txn.AmountIn = &models.Amount{Amount: in.Amount.mustDecimal(), Asset: txn.AmountInAsset()}
	}
	if out != nil {
		txn.AmountOut = &models.Amount{Amount: out.Amount.mustDecimal(), Asset: txn.AmountOutAsset()}
	}
	if fee != nil {
		txn.FeeDetails = toFeeDetails(fee)
	}
}

// addRefundPayment records p, replacing a payment with the same id, and recomputes the totals.
func addRefundPayment(txn *models.Transaction, p *RefundParam) {
	idType := models.RefundIDTypeExternal
	if models.IsStellarAsset(txn.AmountInAsset()) {
		idType = models.RefundIDTypeStellar
	}
	payment := models.RefundPayment{
		ID:     p.ID,
		IDType: idType,
		Amount: *toAmount(&p.Amount),
		Fee:    *toAmount(&p.AmountFee),
	}
	if txn.Refunds == nil {
		txn.Refunds = &models.Refunds{}
	}
	replaced := false
	for i := range txn.Refunds.Payments {
		if txn.Refunds.Payments[i].ID == p.ID {
			txn.Refunds.Payments[i] = payment
			replaced = true
		}
	}
	if !replaced {
		txn.Refunds.Payments = append(txn.Refunds.Payments, payment)
	}

	refunded, fees := decimal.Zero, decimal.Zero
	for _, rp := range txn.Refunds.Payments {
		refunded = refunded.Add(rp.Amount.Amount).Add(rp.Fee.Amount)
		fees = fees.Add(rp.Fee.Amount)
	}
	asset := txn.AmountInAsset()
	txn.Refunds.AmountRefunded = models.Amount{Amount: refunded, Asset: asset}
	txn.Refunds.AmountFee = models.Amount{Amount: fees, Asset: asset}
}

func toAmount(p *AmountAssetParam) *models.Amount {
	return &models.Amount{Amount: p.Amount.mustDecimal(), Asset: p.Asset}
}

func toFeeDetails(p *FeeDetailsParam) *models.FeeDetails {
	fd := &models.FeeDetails{Total: p.Total.mustDecimal(), Asset: p.Asset}
	for _, d := range p.Details {
		fd.Details = append(fd.Details, models.FeeDescription{
			Name:        d.Name,
			Description: d.Description,
			Amount:      d.Amount.mustDecimal(),
		})
	}
	return fd
}
