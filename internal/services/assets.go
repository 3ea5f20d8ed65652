package services

import (
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

// Direction is the side of the on/off-chain boundary an asset is expected on.
type Direction int

const (
	DirectionAny Direction = iota
	DirectionOnChain
	DirectionOffChain
)

// AssetRegistry answers whether an asset identifier is configured for a protocol.
type AssetRegistry struct {
	assets map[string]models.AssetInfo
}

// NewAssetRegistry indexes assets by their exact identifier.
func NewAssetRegistry(assets []models.AssetInfo) *AssetRegistry {
	r := &AssetRegistry{assets: make(map[string]models.AssetInfo, len(assets))}
	for _, a := range assets {
		r.assets[a.ID] = a
	}
	return r
}

// Lookup returns the configured asset if it is enabled for sep.
// Identifiers are matched exactly, so composite or malformed strings never resolve.
func (r *AssetRegistry) Lookup(assetID string, sep models.Sep) (models.AssetInfo, bool) {
	a, ok := r.assets[assetID]
	if !ok {
		return models.AssetInfo{}, false
	}
	switch sep {
	case models.Sep6:
		return a, a.Sep6Enabled
	case models.Sep24:
		return a, a.Sep24Enabled
	case models.Sep31:
		return a, a.Sep31Enabled
	}
	return models.AssetInfo{}, false
}

// IsSupported reports whether assetID is configured for sep and lives on the given side of the ledger.
func (r *AssetRegistry) IsSupported(assetID string, sep models.Sep, direction Direction) bool {
	if _, ok := r.Lookup(assetID, sep); !ok {
		return false
	}
	switch direction {
	case DirectionOnChain:
		return models.IsStellarAsset(assetID)
	case DirectionOffChain:
		return !models.IsStellarAsset(assetID)
	}
	return true
}

func (r *AssetRegistry) unsupported(assetID string) error {
	return NewInvalidParamsError("'%s' is not a supported asset.", assetID)
}
