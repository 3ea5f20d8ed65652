package repositories

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

// MemoryTransactionRepository keeps transactions in process memory. Records are copied in and out.
type MemoryTransactionRepository struct {
	mu   sync.RWMutex
	txns map[string]*models.Transaction
}

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{txns: make(map[string]*models.Transaction)}
}

// FindByID returns a copy of the transaction with id, or nil if it does not exist.
func (r *MemoryTransactionRepository) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.txns[id].Clone(), nil
}

// Create stores a new transaction at version 1.
func (r *MemoryTransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.txns[txn.ID]; ok {
		return errors.Errorf("transaction %s already exists", txn.ID)
	}
	txn.Version = 1
	r.txns[txn.ID] = txn.Clone()
	logger.Log.Debugw("transaction created", "transaction_id", txn.ID, "status", txn.Status)
	return nil
}

// Save replaces the stored transaction if txn carries the current version.
func (r *MemoryTransactionRepository) Save(ctx context.Context, txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.txns[txn.ID]
	if !ok || stored.Version != txn.Version {
		return models.ErrVersionConflict
	}
	txn.Version++
	r.txns[txn.ID] = txn.Clone()
	return nil
}
