package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stellar/anchor-platform-sub000/internal/models"
)

func TestAssetRegistry_IsSupported(t *testing.T) {
	registry := testAssets()

	tests := []struct {
		name      string
		asset     string
		sep       models.Sep
		direction Direction
		expected  bool
	}{
		{"stellar asset any side", usdc, models.Sep24, DirectionAny, true},
		{"stellar asset on chain", usdc, models.Sep6, DirectionOnChain, true},
		{"stellar asset off chain", usdc, models.Sep6, DirectionOffChain, false},
		{"fiat off chain", usd, models.Sep31, DirectionOffChain, true},
		{"fiat on chain", usd, models.Sep24, DirectionOnChain, false},
		{"disabled for protocol", eur, models.Sep31, DirectionAny, false},
		{"enabled for protocol", eur, models.Sep6, DirectionOffChain, true},
		{"unknown asset", "iso4217:GBP", models.Sep24, DirectionAny, false},
		{"composite string", usdc + "," + usd, models.Sep24, DirectionAny, false},
		{"code only", "USDC", models.Sep24, DirectionAny, false},
		{"unknown protocol", usd, models.Sep("38"), DirectionAny, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, registry.IsSupported(tt.asset, tt.sep, tt.direction))
		})
	}
}

func TestAssetRegistry_Lookup(t *testing.T) {
	registry := testAssets()

	info, ok := registry.Lookup(usdc, models.Sep24)
	assert.True(t, ok)
	assert.Equal(t, "USDC", info.Code())
	assert.Equal(t, int32(7), *info.SignificantDecimals)

	_, ok = registry.Lookup(eur, models.Sep31)
	assert.False(t, ok)
}
