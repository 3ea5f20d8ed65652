package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StellarAssetPrefix marks SEP-38 identifiers of on-ledger assets.
const StellarAssetPrefix = "stellar:"

// IsStellarAsset reports whether the SEP-38 asset identifier lives on the ledger.
func IsStellarAsset(asset string) bool {
	return strings.HasPrefix(asset, StellarAssetPrefix)
}

// AssetInfo describes a configured asset and the protocols it may be used with.
type AssetInfo struct {
	// SEP-38 identifier, e.g. "stellar:USDC:GA5Z..." or "iso4217:USD"
	ID                  string `yaml:"id"`
	SignificantDecimals *int32 `yaml:"significant_decimals"`
	Sep6Enabled         bool   `yaml:"sep6_enabled"`
	Sep24Enabled        bool   `yaml:"sep24_enabled"`
	Sep31Enabled        bool   `yaml:"sep31_enabled"`
}

// Code returns the asset code portion of the identifier.
func (a AssetInfo) Code() string {
	parts := strings.Split(a.ID, ":")
	if len(parts) < 2 {
		return a.ID
	}
	return parts[1]
}

// Issuer returns the issuer of a stellar asset, or "" for native and off-chain assets.
func (a AssetInfo) Issuer() string {
	parts := strings.Split(a.ID, ":")
	if len(parts) != 3 {
		return ""
	}
	return parts[2]
}

// Quote is a firm SEP-38 quote backing an exchange transaction.
type Quote struct {
	ID         string          `json:"id" db:"id"`
	SellAsset  string          `json:"sell_asset" db:"sell_asset"`
	SellAmount decimal.Decimal `json:"sell_amount" db:"sell_amount"`
	BuyAsset   string          `json:"buy_asset" db:"buy_asset"`
	BuyAmount  decimal.Decimal `json:"buy_amount" db:"buy_amount"`
	Price      decimal.Decimal `json:"price" db:"price"`
	ExpiresAt  time.Time       `json:"expires_at" db:"expires_at"`
}

// Customer is the subset of a KYC record the engine needs.
type Customer struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
