package services

import (
	"context"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

//go:generate mockgen -source=quotes.go -destination=quotes_mock.go -package=services

// QuoteCache caches firm quotes by id.
type QuoteCache interface {
	GetQuote(ctx context.Context, id string) (*models.Quote, error) // Returns nil on a cache miss
	SetQuote(ctx context.Context, quote *models.Quote) error        // Caches quote until it expires
}

// QuoteService reads quotes through an optional cache.
type QuoteService struct {
	repo  QuoteReader
	cache QuoteCache
}

// NewQuoteService creates a new QuoteService. cache may be nil.
func NewQuoteService(repo QuoteReader, cache QuoteCache) *QuoteService {
	return &QuoteService{repo: repo, cache: cache}
}

// GetQuote returns the quote with id, or nil if it does not exist.
func (s *QuoteService) GetQuote(ctx context.Context, id string) (*models.Quote, error) {
	if s.cache != nil {
		quote, err := s.cache.GetQuote(ctx, id)
		if err != nil {
			logger.Log.Warnw("failed to read cached quote", "quote_id", id, "error", err)
		} else if quote != nil {
			return quote, nil
		}
	}

	quote, err := s.repo.GetQuote(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get quote", "quote_id", id, "error", err)
		return nil, err
	}
	if quote == nil || s.cache == nil {
		return quote, nil
	}
	if err := s.cache.SetQuote(ctx, quote); err != nil {
		logger.Log.Errorw("failed to cache quote", "quote_id", id, "error", err)
	}
	return quote, nil
}
