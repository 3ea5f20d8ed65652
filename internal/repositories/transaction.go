package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

// transactionRow is the storage shape of a transaction. Nested values are JSONB.
type transactionRow struct {
	ID                          string     `db:"id"`
	Sep                         string     `db:"sep"`
	Kind                        string     `db:"kind"`
	Status                      string     `db:"status"`
	Type                        string     `db:"type"`
	AmountExpected              []byte     `db:"amount_expected"`
	AmountIn                    []byte     `db:"amount_in"`
	AmountOut                   []byte     `db:"amount_out"`
	FeeDetails                  []byte     `db:"fee_details"`
	QuoteID                     string     `db:"quote_id"`
	StartedAt                   time.Time  `db:"started_at"`
	UpdatedAt                   time.Time  `db:"updated_at"`
	CompletedAt                 *time.Time `db:"completed_at"`
	TransferReceivedAt          *time.Time `db:"transfer_received_at"`
	UserActionRequiredBy        *time.Time `db:"user_action_required_by"`
	Message                     string     `db:"message"`
	RequiredCustomerInfoUpdates []byte     `db:"required_customer_info_updates"`
	SourceAccount               string     `db:"source_account"`
	DestinationAccount          string     `db:"destination_account"`
	Memo                        string     `db:"memo"`
	MemoType                    string     `db:"memo_type"`
	RefundMemo                  string     `db:"refund_memo"`
	RefundMemoType              string     `db:"refund_memo_type"`
	ExternalTransactionID       string     `db:"external_transaction_id"`
	StellarTransactionID        string     `db:"stellar_transaction_id"`
	StellarTransactions         []byte     `db:"stellar_transactions"`
	Refunds                     []byte     `db:"refunds"`
	Instructions                []byte     `db:"instructions"`
	Customers                   []byte     `db:"customers"`
	ClientName                  string     `db:"client_name"`
	Creator                     []byte     `db:"creator"`
	Version                     int64      `db:"version"`
}

const transactionColumns = `
	id, sep, kind, status, type, amount_expected, amount_in, amount_out, fee_details, quote_id,
	started_at, updated_at, completed_at, transfer_received_at, user_action_required_by,
	message, required_customer_info_updates, source_account, destination_account, memo, memo_type,
	refund_memo, refund_memo_type, external_transaction_id, stellar_transaction_id,
	stellar_transactions, refunds, instructions, customers, client_name, creator, version
`

// TransactionRepository stores transactions in Postgres with an optimistic version column.
type TransactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// FindByID returns the transaction with id, or nil if it does not exist.
func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var row transactionRow
	err := r.db.GetContext(ctx, &row, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"result", row.Status,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select transaction %s", id)
	}
	txn, err := row.toModel()
	if err != nil {
		return nil, errors.Wrapf(err, "decode transaction %s", id)
	}
	return txn, nil
}

// Create inserts a new transaction at version 1.
func (r *TransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `) VALUES (
		:id, :sep, :kind, :status, :type, :amount_expected, :amount_in, :amount_out, :fee_details, :quote_id,
		:started_at, :updated_at, :completed_at, :transfer_received_at, :user_action_required_by,
		:message, :required_customer_info_updates, :source_account, :destination_account, :memo, :memo_type,
		:refund_memo, :refund_memo_type, :external_transaction_id, :stellar_transaction_id,
		:stellar_transactions, :refunds, :instructions, :customers, :client_name, :creator, 1
	)`

	row, err := newTransactionRow(txn)
	if err != nil {
		return errors.Wrapf(err, "encode transaction %s", txn.ID)
	}
	_, err = r.db.NamedExecContext(ctx, query, row)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{txn.ID, txn.Status},
		"result", "inserted",
		"error", err,
	)

	if err != nil {
		return errors.Wrapf(err, "insert transaction %s", txn.ID)
	}
	txn.Version = 1
	return nil
}

// Save updates txn if its version still matches the stored one and bumps the version.
// A stale write returns models.ErrVersionConflict.
func (r *TransactionRepository) Save(ctx context.Context, txn *models.Transaction) error {
	query := `
		UPDATE transactions SET
			status = :status, type = :type,
			amount_expected = :amount_expected, amount_in = :amount_in, amount_out = :amount_out,
			fee_details = :fee_details, quote_id = :quote_id,
			updated_at = :updated_at, completed_at = :completed_at,
			transfer_received_at = :transfer_received_at, user_action_required_by = :user_action_required_by,
			message = :message, required_customer_info_updates = :required_customer_info_updates,
			source_account = :source_account, destination_account = :destination_account,
			memo = :memo, memo_type = :memo_type, refund_memo = :refund_memo, refund_memo_type = :refund_memo_type,
			external_transaction_id = :external_transaction_id, stellar_transaction_id = :stellar_transaction_id,
			stellar_transactions = :stellar_transactions, refunds = :refunds, instructions = :instructions,
			customers = :customers, client_name = :client_name, creator = :creator,
			version = version + 1
		WHERE id = :id AND version = :version
	`

	row, err := newTransactionRow(txn)
	if err != nil {
		return errors.Wrapf(err, "encode transaction %s", txn.ID)
	}
	res, err := r.db.NamedExecContext(ctx, query, row)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{txn.ID, txn.Version, txn.Status},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return errors.Wrapf(err, "update transaction %s", txn.ID)
	}
	if rowsAffected == 0 {
		return models.ErrVersionConflict
	}
	txn.Version++
	return nil
}

func newTransactionRow(txn *models.Transaction) (*transactionRow, error) {
	row := &transactionRow{
		ID:                    txn.ID,
		Sep:                   string(txn.Sep),
		Kind:                  string(txn.Kind),
		Status:                string(txn.Status),
		Type:                  txn.Type,
		QuoteID:               txn.QuoteID,
		StartedAt:             txn.StartedAt,
		UpdatedAt:             txn.UpdatedAt,
		CompletedAt:           txn.CompletedAt,
		TransferReceivedAt:    txn.TransferReceivedAt,
		UserActionRequiredBy:  txn.UserActionRequiredBy,
		Message:               txn.Message,
		SourceAccount:         txn.SourceAccount,
		DestinationAccount:    txn.DestinationAccount,
		Memo:                  txn.Memo,
		MemoType:              txn.MemoType,
		RefundMemo:            txn.RefundMemo,
		RefundMemoType:        txn.RefundMemoType,
		ExternalTransactionID: txn.ExternalTransactionID,
		StellarTransactionID:  txn.StellarTransactionID,
		ClientName:            txn.ClientName,
		Version:               txn.Version,
	}

	fields := []struct {
		dst  *[]byte
		src  any
		skip bool
	}{
		{&row.AmountExpected, txn.AmountExpected, txn.AmountExpected == nil},
		{&row.AmountIn, txn.AmountIn, txn.AmountIn == nil},
		{&row.AmountOut, txn.AmountOut, txn.AmountOut == nil},
		{&row.FeeDetails, txn.FeeDetails, txn.FeeDetails == nil},
		{&row.RequiredCustomerInfoUpdates, txn.RequiredCustomerInfoUpdates, txn.RequiredCustomerInfoUpdates == nil},
		{&row.StellarTransactions, txn.StellarTransactions, txn.StellarTransactions == nil},
		{&row.Refunds, txn.Refunds, txn.Refunds == nil},
		{&row.Instructions, txn.Instructions, txn.Instructions == nil},
		{&row.Customers, txn.Customers, false},
		{&row.Creator, txn.Creator, txn.Creator == nil},
	}
	for _, f := range fields {
		if f.skip {
			continue
		}
		b, err := json.Marshal(f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = b
	}
	return row, nil
}

func (row *transactionRow) toModel() (*models.Transaction, error) {
	txn := &models.Transaction{
		ID:                    row.ID,
		Sep:                   models.Sep(row.Sep),
		Kind:                  models.Kind(row.Kind),
		Status:                models.Status(row.Status),
		Type:                  row.Type,
		QuoteID:               row.QuoteID,
		StartedAt:             row.StartedAt.UTC(),
		UpdatedAt:             row.UpdatedAt.UTC(),
		CompletedAt:           utc(row.CompletedAt),
		TransferReceivedAt:    utc(row.TransferReceivedAt),
		UserActionRequiredBy:  utc(row.UserActionRequiredBy),
		Message:               row.Message,
		SourceAccount:         row.SourceAccount,
		DestinationAccount:    row.DestinationAccount,
		Memo:                  row.Memo,
		MemoType:              row.MemoType,
		RefundMemo:            row.RefundMemo,
		RefundMemoType:        row.RefundMemoType,
		ExternalTransactionID: row.ExternalTransactionID,
		StellarTransactionID:  row.StellarTransactionID,
		ClientName:            row.ClientName,
		Version:               row.Version,
	}

	fields := []struct {
		src []byte
		dst any
	}{
		{row.AmountExpected, &txn.AmountExpected},
		{row.AmountIn, &txn.AmountIn},
		{row.AmountOut, &txn.AmountOut},
		{row.FeeDetails, &txn.FeeDetails},
		{row.RequiredCustomerInfoUpdates, &txn.RequiredCustomerInfoUpdates},
		{row.StellarTransactions, &txn.StellarTransactions},
		{row.Refunds, &txn.Refunds},
		{row.Instructions, &txn.Instructions},
		{row.Customers, &txn.Customers},
		{row.Creator, &txn.Creator},
	}
	for _, f := range fields {
		if len(f.src) == 0 {
			continue
		}
		if err := json.Unmarshal(f.src, f.dst); err != nil {
			return nil, err
		}
	}
	return txn, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
