package facades

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

const nativeAsset = models.StellarAssetPrefix + "native"

type horizonBalance struct {
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code"`
	AssetIssuer string `json:"asset_issuer"`
	Balance     string `json:"balance"`
}

// HorizonAccount is the part of a Horizon account record the engine reads.
type HorizonAccount struct {
	ID       string           `json:"id"`
	Sequence string           `json:"sequence"`
	Balances []horizonBalance `json:"balances"`
}

type horizonTransaction struct {
	ID          string    `json:"id"`
	Hash        string    `json:"hash"`
	Successful  bool      `json:"successful"`
	Memo        string    `json:"memo"`
	MemoType    string    `json:"memo_type"`
	CreatedAt   time.Time `json:"created_at"`
	EnvelopeXdr string    `json:"envelope_xdr"`
}

type horizonOperation struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	SourceAccount string `json:"source_account"`
	From          string `json:"from"`
	To            string `json:"to"`
	Amount        string `json:"amount"`
	AssetType     string `json:"asset_type"`
	AssetCode     string `json:"asset_code"`
	AssetIssuer   string `json:"asset_issuer"`
}

type horizonOperationPage struct {
	Embedded struct {
		Records []horizonOperation `json:"records"`
	} `json:"_embedded"`
}

// HorizonFacade reads accounts and transactions from a Horizon server.
type HorizonFacade struct {
	client *resty.Client
}

// NewHorizonFacade creates a facade for the Horizon server at baseURL.
func NewHorizonFacade(baseURL string, timeout time.Duration) *HorizonFacade {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &HorizonFacade{client: client}
}

// GetAccount fetches an account. A missing account is (nil, nil).
func (f *HorizonFacade) GetAccount(ctx context.Context, accountID string) (*HorizonAccount, error) {
	var account HorizonAccount
	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("id", accountID).
		SetResult(&account).
		Get("/accounts/{id}")
	if err != nil {
		logger.Log.Errorw("failed to fetch account from horizon", "account", accountID, "error", err)
		return nil, errors.Wrapf(err, "get account %s", accountID)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, errors.Errorf("get account %s: horizon returned %s", accountID, resp.Status())
	}
	return &account, nil
}

// HasTrustline reports whether account can hold asset. Native lumens need no trustline.
func (f *HorizonFacade) HasTrustline(ctx context.Context, account, asset string) (bool, error) {
	acc, err := f.GetAccount(ctx, account)
	if err != nil {
		return false, err
	}
	if acc == nil {
		return false, nil
	}
	if asset == nativeAsset {
		return true, nil
	}
	for _, b := range acc.Balances {
		if b.AssetType != "native" && toAssetID(b.AssetType, b.AssetCode, b.AssetIssuer) == asset {
			return true, nil
		}
	}
	return false, nil
}

// GetTransaction fetches a successful transaction and its payment operations.
// An unknown or failed transaction is (nil, nil).
func (f *HorizonFacade) GetTransaction(ctx context.Context, hash string) (*models.StellarTransaction, error) {
	var tx horizonTransaction
	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("hash", hash).
		SetResult(&tx).
		Get("/transactions/{hash}")
	if err != nil {
		logger.Log.Errorw("failed to fetch transaction from horizon", "hash", hash, "error", err)
		return nil, errors.Wrapf(err, "get transaction %s", hash)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, errors.Errorf("get transaction %s: horizon returned %s", hash, resp.Status())
	}
	if !tx.Successful {
		return nil, nil
	}

	var page horizonOperationPage
	resp, err = f.client.R().
		SetContext(ctx).
		SetPathParam("hash", hash).
		SetQueryParam("limit", "200").
		SetResult(&page).
		Get("/transactions/{hash}/payments")
	if err != nil {
		logger.Log.Errorw("failed to fetch payments from horizon", "hash", hash, "error", err)
		return nil, errors.Wrapf(err, "get payments of %s", hash)
	}
	if resp.IsError() {
		return nil, errors.Errorf("get payments of %s: horizon returned %s", hash, resp.Status())
	}

	st := &models.StellarTransaction{
		ID:        tx.Hash,
		Memo:      tx.Memo,
		MemoType:  tx.MemoType,
		CreatedAt: tx.CreatedAt.UTC(),
		Envelope:  tx.EnvelopeXdr,
	}
	for _, op := range page.Embedded.Records {
		if op.Type != "payment" && op.Type != "path_payment_strict_send" && op.Type != "path_payment_strict_receive" {
			continue
		}
		amount, err := decimal.NewFromString(op.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "parse amount of operation %s", op.ID)
		}
		st.Payments = append(st.Payments, models.StellarPayment{
			ID:                 op.ID,
			Amount:             models.Amount{Amount: amount, Asset: toAssetID(op.AssetType, op.AssetCode, op.AssetIssuer)},
			PaymentType:        paymentType(op.Type),
			SourceAccount:      op.From,
			DestinationAccount: op.To,
		})
	}
	return st, nil
}

func toAssetID(assetType, code, issuer string) string {
	if assetType == "native" {
		return nativeAsset
	}
	return models.StellarAssetPrefix + code + ":" + issuer
}

func paymentType(opType string) string {
	if opType == "payment" {
		return "payment"
	}
	return "path_payment"
}
