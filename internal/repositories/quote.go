package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

// QuoteRepository reads firm SEP-38 quotes from Postgres.
type QuoteRepository struct {
	db *sqlx.DB
}

func NewQuoteRepository(db *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// GetQuote returns the quote with id, or nil if it does not exist.
func (r *QuoteRepository) GetQuote(ctx context.Context, id string) (*models.Quote, error) {
	const query = `
		SELECT id, sell_asset, sell_amount, buy_asset, buy_amount, price, expires_at
		FROM quotes
		WHERE id = $1
	`

	var quote models.Quote
	err := r.db.GetContext(ctx, &quote, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"result", quote.ID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select quote %s", id)
	}
	return &quote, nil
}

// QuoteCacheRepository caches quotes in Redis until they expire.
type QuoteCacheRepository struct {
	client *redis.Client
	exp    time.Duration // upper bound on how long a quote stays cached
}

// NewQuoteCacheRepository creates a new repository instance with the given TTL
func NewQuoteCacheRepository(client *redis.Client, expiration time.Duration) *QuoteCacheRepository {
	return &QuoteCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func quoteKey(id string) string {
	return fmt.Sprintf("quote:%s", id)
}

// GetQuote returns the cached quote, or nil on a miss.
func (r *QuoteCacheRepository) GetQuote(ctx context.Context, id string) (*models.Quote, error) {
	key := quoteKey(id)

	val, err := r.client.Get(ctx, key).Bytes()
	logger.Log.Infow(
		"key", key,
		"result", len(val),
		"error", err,
	)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get cached quote %s", id)
	}

	var quote models.Quote
	if err := json.Unmarshal(val, &quote); err != nil {
		return nil, errors.Wrapf(err, "decode cached quote %s", id)
	}
	return &quote, nil
}

// SetQuote caches quote until it expires, but no longer than the configured TTL.
// Expired quotes are not cached.
func (r *QuoteCacheRepository) SetQuote(ctx context.Context, quote *models.Quote) error {
	key := quoteKey(quote.ID)

	ttl := r.exp
	if !quote.ExpiresAt.IsZero() {
		left := time.Until(quote.ExpiresAt)
		if left <= 0 {
			return nil
		}
		if ttl <= 0 || left < ttl {
			ttl = left
		}
	}

	data, err := json.Marshal(quote)
	if err != nil {
		return errors.Wrapf(err, "encode quote %s", quote.ID)
	}
	err = r.client.Set(ctx, key, data, ttl).Err()

	logger.Log.Infow(
		"key", key,
		"ttl", ttl,
		"result", "ok",
		"error", err,
	)

	return err
}
