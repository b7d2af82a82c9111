package withdrawal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/earnquick/earnquick-api/internal/pkg/database"
)

const queryTimeout = 3 * time.Second

// Ledger is the slice of the account ledger the withdrawal flow needs. The
// debit runs inside the submission transaction so balance and request row
// stay consistent.
type Ledger interface {
	DebitTx(ctx context.Context, tx *sqlx.Tx, userID int64, amount int64) error
}

type Repository interface {
	Submit(ctx context.Context, userID int64, amount int64, method, destination string) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Request, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

type PostgresRepository struct {
	db     *sqlx.DB
	ledger Ledger
}

func NewRepository(db *sqlx.DB, ledger Ledger) *PostgresRepository {
	return &PostgresRepository{db: db, ledger: ledger}
}

// Submit atomically debits the balance and appends a Pending request row.
// Returns the new request id. The debit locks the account row, so the balance
// check and the insert cannot race with a concurrent submission.
func (r *PostgresRepository) Submit(ctx context.Context, userID int64, amount int64, method, destination string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("%w: begin tx: %v", database.ErrUnavailable, err)
	}
	defer tx.Rollback()

	if err := r.ledger.DebitTx(ctx, tx, userID, amount); err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO withdrawal_requests (user_id, amount, method, destination, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, userID, amount, method, destination, StatusPending).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: insert withdrawal request: %v", database.ErrUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit tx: %v", database.ErrUnavailable, err)
	}

	return id, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Request, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	requests := make([]Request, 0)
	err := r.db.SelectContext(ctx, &requests, `
		SELECT id, user_id, amount, method, destination, status, requested_at
		FROM withdrawal_requests
		WHERE user_id = $1
		ORDER BY requested_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list withdrawal requests: %v", database.ErrUnavailable, err)
	}

	return requests, nil
}

// UpdateStatus records the external resolution of a request. No balance
// mutation happens here; a rejected amount is re-credited manually by the
// admin process.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		UPDATE withdrawal_requests SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("%w: update withdrawal status: %v", database.ErrUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", database.ErrUnavailable, err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
