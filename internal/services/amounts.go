package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

//go:generate mockgen -source=amounts.go -destination=amounts_mock.go -package=services

// QuoteReader resolves firm quotes. A missing quote is (nil, nil).
type QuoteReader interface {
	GetQuote(ctx context.Context, id string) (*models.Quote, error)
}

// AmountValidator checks amounts, assets, fees and refunds carried by an action.
type AmountValidator struct {
	assets *AssetRegistry
	quotes QuoteReader
}

func NewAmountValidator(assets *AssetRegistry, quotes QuoteReader) *AmountValidator {
	return &AmountValidator{assets: assets, quotes: quotes}
}

// Validate runs every amount rule relevant to action against txn. It never mutates txn.
func (v *AmountValidator) Validate(ctx context.Context, txn *models.Transaction, action Action) error {
	switch a := action.(type) {
	case *NotifyInteractiveFlowCompletedParams:
		if a.AmountIn == nil {
			return NewInvalidParamsError("amount_in is required")
		}
		if a.AmountOut == nil {
			return NewInvalidParamsError("amount_out is required")
		}
		if a.fee() == nil {
			return NewInvalidParamsError("fee_details is required")
		}
		return v.validateAmounts(ctx, txn, a.AmountIn, a.AmountOut, a.fee(), a.AmountExpected)
	case *RequestOffchainFundsParams:
		return v.validateRequestedAmounts(ctx, txn, a.AmountIn, a.AmountOut, a.fee(), a.AmountExpected)
	case *RequestOnchainFundsParams:
		if err := v.validateRequestedAmounts(ctx, txn, a.AmountIn, a.AmountOut, a.fee(), a.AmountExpected); err != nil {
			return err
		}
		if err := validateMemo(a.Memo, a.MemoType); err != nil {
			return err
		}
		if a.DestinationAccount == "" && txn.DestinationAccount == "" {
			return NewInvalidParamsError("destination_account is required")
		}
		return nil
	case *NotifyOffchainFundsReceivedParams:
		return v.validateReceivedAmounts(txn, a.AmountIn, a.AmountOut, a.FeeDetails)
	case *NotifyOnchainFundsReceivedParams:
		return v.validateReceivedAmounts(txn, a.AmountIn, a.AmountOut, a.FeeDetails)
	case *NotifyAmountsUpdatedParams:
		if a.AmountOut == nil {
			return NewInvalidParamsError("amount_out is required")
		}
		if a.FeeDetails == nil {
			return NewInvalidParamsError("fee_details is required")
		}
		if _, err := v.parseAmount("amount_out", a.AmountOut.Amount, txn.AmountOutAsset(), txn.Sep, false); err != nil {
			return err
		}
		return v.validateFee(txn, a.FeeDetails, txn.AmountInAsset(), txn.AmountOutAsset())
	case *NotifyRefundPendingParams:
		if a.Refund == nil {
			return NewInvalidParamsError("refund is required")
		}
		return v.validateRefund(txn, a.Refund, a.Method())
	case *NotifyRefundSentParams:
		if a.Refund == nil {
			return v.validatePendingRefund(txn)
		}
		return v.validateRefund(txn, a.Refund, a.Method())
	}
	return nil
}

// validateRequestedAmounts accepts all of amount_in, amount_out and fee or none of them.
func (v *AmountValidator) validateRequestedAmounts(ctx context.Context, txn *models.Transaction, in, out *AmountAssetParam, fee *FeeDetailsParam, expected *AmountParam) error {
	set := 0
	if in != nil {
		set++
	}
	if out != nil {
		set++
	}
	if fee != nil {
		set++
	}
	switch set {
	case 3:
		return v.validateAmounts(ctx, txn, in, out, fee, expected)
	case 0:
		if txn.AmountIn == nil {
			return NewInvalidParamsError("amount_in is required")
		}
		if txn.AmountOut == nil {
			return NewInvalidParamsError("amount_out is required")
		}
		if txn.FeeDetails == nil {
			return NewInvalidParamsError("fee_details is required")
		}
		if expected != nil {
			_, err := v.parseAmount("amount_expected", expected.Amount, txn.AmountInAsset(), txn.Sep, false)
			return err
		}
		return nil
	}
	return NewInvalidParamsError("All or none of the amount_in, amount_out, and fee_details should be set")
}

func (v *AmountValidator) validateAmounts(ctx context.Context, txn *models.Transaction, in, out *AmountAssetParam, fee *FeeDetailsParam, expected *AmountParam) error {
	inAmount, err := v.parseAmount("amount_in", in.Amount, in.Asset, txn.Sep, false)
	if err != nil {
		return err
	}
	outAmount, err := v.parseAmount("amount_out", out.Amount, out.Asset, txn.Sep, false)
	if err != nil {
		return err
	}
	if expected != nil {
		if _, err := v.parseAmount("amount_expected", expected.Amount, in.Asset, txn.Sep, false); err != nil {
			return err
		}
	}
	if err := v.checkDirection(txn, in.Asset, out.Asset); err != nil {
		return err
	}
	if err := v.validateFee(txn, fee, in.Asset, out.Asset); err != nil {
		return err
	}
	if txn.Kind.IsExchange() && txn.QuoteID != "" {
		return v.checkQuote(ctx, txn.QuoteID, in.Asset, inAmount, out.Asset, outAmount)
	}
	return nil
}

// validateReceivedAmounts accepts all amounts, none, or amount_in alone. Assets come from txn.
func (v *AmountValidator) validateReceivedAmounts(txn *models.Transaction, in, out *AmountParam, fee *FeeDetailsParam) error {
	valid := (in == nil && out == nil && fee == nil) ||
		(in != nil && out == nil && fee == nil) ||
		(in != nil && out != nil && fee != nil)
	if !valid {
		return NewInvalidParamsError("Invalid amounts combination provided: all, none or only amount_in should be set")
	}
	if in != nil {
		if _, err := v.parseAmount("amount_in", in.Amount, txn.AmountInAsset(), txn.Sep, false); err != nil {
			return err
		}
	}
	if out != nil {
		if _, err := v.parseAmount("amount_out", out.Amount, txn.AmountOutAsset(), txn.Sep, false); err != nil {
			return err
		}
	}
	if fee != nil {
		return v.validateFee(txn, fee, txn.AmountInAsset(), txn.AmountOutAsset())
	}
	return nil
}

// validateFee checks the fee total, its breakdown and the side it is charged on.
func (v *AmountValidator) validateFee(txn *models.Transaction, fee *FeeDetailsParam, inAsset, outAsset string) error {
	total, err := v.parseAmount("fee_details", fee.Total, fee.Asset, txn.Sep, true)
	if err != nil {
		return err
	}
	if txn.Kind.IsExchange() {
		if fee.Asset != inAsset && fee.Asset != outAsset {
			return NewInvalidParamsError("fee_details.asset should match amount_in.asset or amount_out.asset")
		}
	} else if fee.Asset != inAsset {
		return NewInvalidParamsError("fee_details.asset should match amount_in.asset")
	}
	if len(fee.Details) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, d := range fee.Details {
		amount, err := d.Amount.toDecimal()
		if err != nil {
			return NewInvalidParamsError("fee_details.details.amount is invalid")
		}
		if amount.IsNegative() {
			return NewInvalidParamsError("fee_details.details.amount should be non-negative")
		}
		sum = sum.Add(amount)
	}
	if !sum.Equal(total) {
		return NewInvalidParamsError("fee_details.total is not equal to the sum of (fee_details.details.amount)")
	}
	return nil
}

func (v *AmountValidator) validateRefund(txn *models.Transaction, refund *RefundParam, method Method) error {
	if refund.ID == "" {
		return NewInvalidParamsError("refund.id is required")
	}
	if txn.AmountIn == nil {
		return NewInvalidParamsError("amount_in is required")
	}
	amount, err := v.parseAmount("refund.amount", refund.Amount.Amount, refund.Amount.Asset, txn.Sep, false)
	if err != nil {
		return err
	}
	if refund.Amount.Asset != txn.AmountInAsset() {
		return NewInvalidParamsError("refund.amount.asset does not match transaction amount_in_asset")
	}
	fee, err := v.parseAmount("refund.amount_fee", refund.AmountFee.Amount, refund.AmountFee.Asset, txn.Sep, true)
	if err != nil {
		return err
	}
	if refund.AmountFee.Asset != txn.AmountInAsset() {
		return NewInvalidParamsError("refund.amount_fee.asset does not match transaction amount_in_asset")
	}

	others := otherRefundPayments(txn, refund.ID)
	if txn.Sep == models.Sep31 && method == MethodNotifyRefundSent && others > 0 {
		return NewInvalidParamsError(
			"Multiple refunds aren't supported for kind[%s], protocol[%s] and action[%s]",
			txn.Kind, txn.Sep, method)
	}
	total := refundedExcept(txn, refund.ID).Add(amount).Add(fee)
	if total.GreaterThan(txn.AmountIn.Amount) {
		return NewInvalidParamsError("Refund amount exceeds amount_in")
	}
	if txn.Sep == models.Sep31 && method == MethodNotifyRefundSent && total.LessThan(txn.AmountIn.Amount) {
		return NewInvalidParamsError("Refund amount is less than amount_in")
	}
	return nil
}

// validatePendingRefund allows notify_refund_sent without a refund only to confirm a pending one.
func (v *AmountValidator) validatePendingRefund(txn *models.Transaction) error {
	if txn.Status != models.StatusPendingExternal || txn.Refunds == nil || len(txn.Refunds.Payments) == 0 {
		return NewInvalidParamsError("refund is required")
	}
	if txn.Sep == models.Sep31 && txn.AmountIn != nil && txn.AmountRefunded().LessThan(txn.AmountIn.Amount) {
		return NewInvalidParamsError("Refund amount is less than amount_in")
	}
	return nil
}

// parseAmount validates a single amount and its asset. Fees pass allowZero.
func (v *AmountValidator) parseAmount(field string, amount AmountString, asset string, sep models.Sep, allowZero bool) (decimal.Decimal, error) {
	amountField := field + ".amount"
	if field == "fee_details" {
		amountField = field + ".total"
	}
	d, err := amount.toDecimal()
	if amount == "" || err != nil {
		return decimal.Zero, NewInvalidParamsError("%s is invalid", amountField)
	}
	if allowZero {
		if d.IsNegative() {
			return decimal.Zero, NewInvalidParamsError("%s should be non-negative", amountField)
		}
	} else if !d.IsPositive() {
		return decimal.Zero, NewInvalidParamsError("%s should be positive", amountField)
	}
	if asset == "" {
		return decimal.Zero, NewInvalidParamsError("%s.asset cannot be empty", field)
	}
	info, ok := v.assets.Lookup(asset, sep)
	if !ok {
		return decimal.Zero, v.assets.unsupported(asset)
	}
	if info.SignificantDecimals != nil && d.Exponent() < -*info.SignificantDecimals {
		return decimal.Zero, NewInvalidParamsError(
			"'%s' has invalid significant decimals. Expected: '%d'", amount, *info.SignificantDecimals)
	}
	return d, nil
}

// checkDirection enforces that amount_in and amount_out sit on the sides implied by the kind.
func (v *AmountValidator) checkDirection(txn *models.Transaction, inAsset, outAsset string) error {
	inSide, outSide := DirectionOffChain, DirectionOnChain
	if txn.Kind.IsWithdrawal() {
		inSide, outSide = DirectionOnChain, DirectionOffChain
	}
	if !v.assets.IsSupported(inAsset, txn.Sep, inSide) {
		return NewInvalidParamsError("amount_in.asset should be %s", sideName(inSide))
	}
	if !v.assets.IsSupported(outAsset, txn.Sep, outSide) {
		return NewInvalidParamsError("amount_out.asset should be %s", sideName(outSide))
	}
	return nil
}

func sideName(d Direction) string {
	if d == DirectionOnChain {
		return "stellar asset"
	}
	return "non-stellar asset"
}

func (v *AmountValidator) checkQuote(ctx context.Context, quoteID, inAsset string, inAmount decimal.Decimal, outAsset string, outAmount decimal.Decimal) error {
	if v.quotes == nil {
		return NewInternalError("Quote service is not configured")
	}
	quote, err := v.quotes.GetQuote(ctx, quoteID)
	if err != nil {
		logger.Log.Errorw("failed to get quote", "quote_id", quoteID, "error", err)
		return NewInternalError("Failed to retrieve quote with id[%s]", quoteID)
	}
	if quote == nil {
		return NewInvalidParamsError("Quote with id[%s] is not found", quoteID)
	}
	if inAsset != quote.SellAsset {
		return NewInvalidParamsError("amount_in.asset does not match quote sell_asset")
	}
	if !inAmount.Equal(quote.SellAmount) {
		return NewInvalidParamsError("amount_in.amount does not match quote sell_amount")
	}
	if outAsset != quote.BuyAsset {
		return NewInvalidParamsError("amount_out.asset does not match quote buy_asset")
	}
	if outAmount.GreaterThan(quote.BuyAmount) {
		return NewInvalidParamsError("amount_out.amount exceeds quote buy_amount")
	}
	return nil
}

// refundedExcept sums amount and fee of every recorded refund payment other than id.
func refundedExcept(txn *models.Transaction, id string) decimal.Decimal {
	total := decimal.Zero
	if txn.Refunds == nil {
		return total
	}
	for _, p := range txn.Refunds.Payments {
		if p.ID == id {
			continue
		}
		total = total.Add(p.Amount.Amount).Add(p.Fee.Amount)
	}
	return total
}

func otherRefundPayments(txn *models.Transaction, id string) int {
	if txn.Refunds == nil {
		return 0
	}
	n := 0
	for _, p := range txn.Refunds.Payments {
		if p.ID != id {
			n++
		}
	}
	return n
}
