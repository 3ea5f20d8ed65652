package repositories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetFileRepository_ListAssets(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectedIDs []string
		expectErr   bool
	}{
		{
			name: "valid file",
			content: `assets:
  - id: stellar:USDC:GDQOE23CFSUMSVQK4Y5JHPPYK73VYCNHZHA7ENKCV37P6SUEO6XQBKPU
    significant_decimals: 2
    sep24_enabled: true
    sep31_enabled: true
  - id: iso4217:USD
    sep6_enabled: true
`,
			expectedIDs: []string{"stellar:USDC:GDQOE23CFSUMSVQK4Y5JHPPYK73VYCNHZHA7ENKCV37P6SUEO6XQBKPU", "iso4217:USD"},
		},
		{
			name:      "missing id",
			content:   "assets:\n  - sep6_enabled: true\n",
			expectErr: true,
		},
		{
			name:      "duplicate id",
			content:   "assets:\n  - id: iso4217:USD\n  - id: iso4217:USD\n",
			expectErr: true,
		},
		{
			name:      "malformed yaml",
			content:   "assets: [",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "assets.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			assets, err := NewAssetFileRepository(path).ListAssets()
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			ids := make([]string, len(assets))
			for i, a := range assets {
				ids[i] = a.ID
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewAssetFileRepository(filepath.Join(t.TempDir(), "nope.yaml")).ListAssets()
		assert.Error(t, err)
	})

	t.Run("decimals and flags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "assets.yaml")
		require.NoError(t, os.WriteFile(path, []byte("assets:\n  - id: iso4217:USD\n    significant_decimals: 2\n    sep31_enabled: true\n"), 0o600))

		assets, err := NewAssetFileRepository(path).ListAssets()
		require.NoError(t, err)
		require.Len(t, assets, 1)
		require.NotNil(t, assets[0].SignificantDecimals)
		assert.Equal(t, int32(2), *assets[0].SignificantDecimals)
		assert.True(t, assets[0].Sep31Enabled)
		assert.False(t, assets[0].Sep6Enabled)
	})
}
