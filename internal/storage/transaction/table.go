package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	db *sql.DB
}

func NewTransactionsTable(db *sql.DB) *TransactionsTable {
	return &TransactionsTable{db: db}
}

// Insert records a new transaction in PROCESSING. It returns false without an
// error when a row for the same transaction_id already exists; the primary key
// constraint, not a prior existence check, is what makes racing duplicates safe.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (bool, error) {
	res, err := t.db.ExecContext(ctx, `
		INSERT INTO transactions
			(transaction_id, source_account, destination_account, amount, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (transaction_id) DO NOTHING`,
		create.TransactionID,
		create.SourceAccount,
		create.DestinationAccount,
		create.Amount,
		create.Currency,
		StatusProcessing,
		time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// FindByID retrieves a transaction by its id. Returns (nil, nil) when no row exists.
func (t *TransactionsTable) FindByID(ctx context.Context, id string) (*Transaction, error) {
	row := t.db.QueryRowContext(ctx, `
		SELECT transaction_id, source_account, destination_account, amount, currency, status, created_at, processed_at
		FROM transactions
		WHERE transaction_id = $1`,
		id,
	)

	var txn Transaction
	var processedAt sql.NullTime
	err := row.Scan(
		&txn.TransactionID,
		&txn.SourceAccount,
		&txn.DestinationAccount,
		&txn.Amount,
		&txn.Currency,
		&txn.Status,
		&txn.CreatedAt,
		&processedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if processedAt.Valid {
		txn.ProcessedAt = &processedAt.Time
	}
	return &txn, nil
}

// CompareAndSetStatus moves a transaction from expected to next in a single
// guarded UPDATE. processed_at is stamped with at on transitions out of
// PROCESSING and cleared on transitions back into it (re-arm).
func (t *TransactionsTable) CompareAndSetStatus(ctx context.Context, id string, expected, next Status, at time.Time) (CASOutcome, error) {
	var processedAt sql.NullTime
	if next != StatusProcessing {
		processedAt = sql.NullTime{Time: at, Valid: true}
	}

	res, err := t.db.ExecContext(ctx, `
		UPDATE transactions
		SET status = $1, processed_at = $2
		WHERE transaction_id = $3 AND status = $4`,
		next,
		processedAt,
		id,
		expected,
	)
	if err != nil {
		return CASStaleState, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return CASStaleState, err
	}
	if affected == 1 {
		return CASUpdated, nil
	}

	// Guard did not match: distinguish a missing row from a state change.
	existing, err := t.FindByID(ctx, id)
	if err != nil {
		return CASStaleState, err
	}
	if existing == nil {
		return CASNotFound, nil
	}
	return CASStaleState, nil
}
