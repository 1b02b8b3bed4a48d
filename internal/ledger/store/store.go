package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mlowther/centsy/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, user_id, date, merchant, category, amount, type, payment_method, needs_review, created_at, updated_at
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var typeStr string

	var paymentMethod sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.OwnerID, &tx.Date, &tx.Merchant, &tx.Category, &tx.Amount,
		&typeStr, &paymentMethod, &tx.NeedsReview, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = ledger.Type(typeStr)
	tx.PaymentMethod = ledger.PaymentMethod(paymentMethod.String)

	return &tx, nil
}

const selectTransactionColumns = `
	id, user_id, date, merchant, category, amount, type, payment_method, needs_review, created_at, updated_at
`

func paymentMethodValue(pm ledger.PaymentMethod) any {
	if pm == ledger.PaymentNone {
		return nil
	}

	return string(pm)
}

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, date, merchant, category, amount, type, payment_method, needs_review, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.OwnerID,
		tx.Date,
		tx.Merchant,
		tx.Category,
		tx.Amount,
		tx.Type,
		paymentMethodValue(tx.PaymentMethod),
		tx.NeedsReview,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateTransactions(ctx context.Context, txs []*ledger.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch insert: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transactions (user_id, date, merchant, category, amount, type, payment_method, needs_review, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	for _, tx := range txs {
		err := dbTx.QueryRowContext(ctx, query,
			tx.OwnerID,
			tx.Date,
			tx.Merchant,
			tx.Category,
			tx.Amount,
			tx.Type,
			paymentMethodValue(tx.PaymentMethod),
			tx.NeedsReview,
		).Scan(&tx.ID, &tx.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing batch insert: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE id = $1 AND user_id = $2`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE user_id = $1`

	args := []any{filter.OwnerID}
	argIdx := 2

	var conditions []string

	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *filter.Category)
		argIdx++
	}

	if filter.PaymentMethod != nil {
		conditions = append(conditions, fmt.Sprintf("payment_method = $%d", argIdx))
		args = append(args, *filter.PaymentMethod)
		argIdx++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.NeedsReview != nil {
		conditions = append(conditions, fmt.Sprintf("needs_review = $%d", argIdx))
		args = append(args, *filter.NeedsReview)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		UPDATE transactions
		SET date = $1, merchant = $2, category = $3, amount = $4, type = $5,
			payment_method = $6, needs_review = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.Date,
		tx.Merchant,
		tx.Category,
		tx.Amount,
		tx.Type,
		paymentMethodValue(tx.PaymentMethod),
		tx.NeedsReview,
		tx.ID,
		tx.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return ensureRowAffected(res)
}

func (s *Store) MarkReviewed(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `
		UPDATE transactions
		SET needs_review = FALSE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	res, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("marking transaction reviewed: %w", err)
	}

	return ensureRowAffected(res)
}

func (s *Store) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return ensureRowAffected(res)
}

func ensureRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}
