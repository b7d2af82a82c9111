package reward

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/earnquick/earnquick-api/internal/pkg/database"
)

const queryTimeout = 3 * time.Second

// Ledger is the slice of the account ledger the reward flow needs. The credit
// runs inside the token-consumption transaction so that quota check and token
// consumption commit or roll back together.
type Ledger interface {
	CreditAdTx(ctx context.Context, tx *sqlx.Tx, userID int64, income int64, dailyLimit int, now time.Time) (int, error)
}

// ConsumeParams carries the verification constants into one Consume call.
type ConsumeParams struct {
	Now        time.Time
	Timeout    time.Duration
	Income     int64
	DailyLimit int
}

type Repository interface {
	Insert(ctx context.Context, t *AdToken) error
	Consume(ctx context.Context, userID int64, token string, p ConsumeParams) (int, error)
}

type PostgresRepository struct {
	db     *sqlx.DB
	ledger Ledger
}

func NewRepository(db *sqlx.DB, ledger Ledger) *PostgresRepository {
	return &PostgresRepository{db: db, ledger: ledger}
}

func (r *PostgresRepository) Insert(ctx context.Context, t *AdToken) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO ad_tokens (token, user_id, issued_at, used)
		VALUES ($1, $2, $3, FALSE)
	`, t.Token, t.UserID, t.IssuedAt); err != nil {
		return fmt.Errorf("%w: insert ad token: %v", database.ErrUnavailable, err)
	}
	return nil
}

// Consume verifies and consumes a token, crediting the ad income in the same
// transaction. Token validity and age are checked before the quota, so an
// expired or foreign token never leaks quota state.
//
// Two concurrent calls for the same token serialize on the row lock: the
// second re-evaluates used = FALSE after the first commits and gets
// ErrInvalidToken. A quota failure rolls the whole transaction back, leaving
// the token unused.
func (r *PostgresRepository) Consume(ctx context.Context, userID int64, token string, p ConsumeParams) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("%w: begin tx: %v", database.ErrUnavailable, err)
	}
	defer tx.Rollback()

	var t AdToken
	err = tx.GetContext(ctx, &t, `
		SELECT token, user_id, issued_at, used
		FROM ad_tokens
		WHERE token = $1 AND user_id = $2 AND used = FALSE
		FOR UPDATE
	`, token, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrInvalidToken
	}
	if err != nil {
		return 0, fmt.Errorf("%w: lock ad token: %v", database.ErrUnavailable, err)
	}

	if p.Now.Sub(t.IssuedAt) > p.Timeout {
		return 0, ErrTokenExpired
	}

	count, err := r.ledger.CreditAdTx(ctx, tx, userID, p.Income, p.DailyLimit, p.Now)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE ad_tokens SET used = TRUE WHERE token = $1`, token); err != nil {
		return 0, fmt.Errorf("%w: mark token used: %v", database.ErrUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit tx: %v", database.ErrUnavailable, err)
	}

	return count, nil
}
