package repositories

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

type assetsFile struct {
	Assets []models.AssetInfo `yaml:"assets"`
}

// AssetFileRepository loads the asset configuration from a YAML file.
type AssetFileRepository struct {
	path string
}

func NewAssetFileRepository(path string) *AssetFileRepository {
	return &AssetFileRepository{path: path}
}

// ListAssets reads every configured asset. Duplicate ids are rejected.
func (r *AssetFileRepository) ListAssets() ([]models.AssetInfo, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "read assets file %s", r.path)
	}

	var file assetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "parse assets file %s", r.path)
	}

	seen := make(map[string]struct{}, len(file.Assets))
	for _, a := range file.Assets {
		if a.ID == "" {
			return nil, errors.Errorf("asset without id in %s", r.path)
		}
		if _, ok := seen[a.ID]; ok {
			return nil, errors.Errorf("duplicate asset %s in %s", a.ID, r.path)
		}
		seen[a.ID] = struct{}{}
	}

	logger.Log.Infow("assets loaded", "path", r.path, "count", len(file.Assets))
	return file.Assets, nil
}
