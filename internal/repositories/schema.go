package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		sep TEXT NOT NULL,
		kind TEXT NOT NULL,
		status TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		amount_expected JSONB,
		amount_in JSONB,
		amount_out JSONB,
		fee_details JSONB,
		quote_id TEXT NOT NULL DEFAULT '',
		started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ,
		transfer_received_at TIMESTAMPTZ,
		user_action_required_by TIMESTAMPTZ,
		message TEXT NOT NULL DEFAULT '',
		required_customer_info_updates JSONB,
		source_account TEXT NOT NULL DEFAULT '',
		destination_account TEXT NOT NULL DEFAULT '',
		memo TEXT NOT NULL DEFAULT '',
		memo_type TEXT NOT NULL DEFAULT '',
		refund_memo TEXT NOT NULL DEFAULT '',
		refund_memo_type TEXT NOT NULL DEFAULT '',
		external_transaction_id TEXT NOT NULL DEFAULT '',
		stellar_transaction_id TEXT NOT NULL DEFAULT '',
		stellar_transactions JSONB,
		refunds JSONB,
		instructions JSONB,
		customers JSONB,
		client_name TEXT NOT NULL DEFAULT '',
		creator JSONB,
		version BIGINT NOT NULL DEFAULT 1
	);`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id TEXT PRIMARY KEY,
		sell_asset TEXT NOT NULL,
		sell_amount NUMERIC(38,7) NOT NULL,
		buy_asset TEXT NOT NULL,
		buy_amount NUMERIC(38,7) NOT NULL,
		price NUMERIC(38,7) NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	);`,
}

// Migrate creates the tables used by the repositories if they are missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return errors.Wrap(err, "apply migration")
		}
	}
	return nil
}
