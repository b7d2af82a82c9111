package account

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

// PostgresRepository owns every balance mutation of the ledger. All multi-step
// sequences run inside a transaction with a FOR UPDATE row lock so that two
// concurrent operations on the same account serialize instead of double
// crediting or double debiting.
type PostgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account if none exists for userID. It is idempotent:
// re-invoking for an existing id is a no-op and reports created=false. The
// referral bonus is tied to the same transaction as the insert, so it fires at
// most once per referred account no matter how often Create is retried.
// A referrer that does not exist or equals the new account is skipped.
func (r *PostgresRepository) Create(ctx context.Context, userID int64, displayName string, referredBy *int64, referralBonus int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("%w: begin tx: %v", database.ErrUnavailable, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO accounts (user_id, display_name, referred_by, last_ad_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, displayName, referredBy, time.Now().UTC().Format(dateLayout))
	if err != nil {
		return false, fmt.Errorf("%w: insert account: %v", database.ErrUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: rows affected: %v", database.ErrUnavailable, err)
	}
	if rows == 0 {
		// Account already existed; nothing to commit.
		return false, nil
	}

	if referredBy != nil && *referredBy != userID {
		// No-op when the referrer does not exist; the back-reference on the
		// new account is kept either way.
		if _, err := tx.ExecContext(ctx, `
			UPDATE accounts
			SET balance = balance + $2, total_referrals = total_referrals + 1
			WHERE user_id = $1
		`, *referredBy, referralBonus); err != nil {
			return false, fmt.Errorf("%w: credit referrer: %v", database.ErrUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%w: commit tx: %v", database.ErrUnavailable, err)
	}

	return true, nil
}

// Get returns the full account row.
func (r *PostgresRepository) Get(ctx context.Context, userID int64) (*Account, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var acct Account
	err := r.db.GetContext(ctx, &acct, `
		SELECT user_id, display_name, balance, daily_ads_seen, total_referrals, referred_by, last_ad_date, created_at
		FROM accounts
		WHERE user_id = $1
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownAccount
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get account: %v", database.ErrUnavailable, err)
	}
	return &acct, nil
}

// Snapshot returns the dashboard read model. Unknown ids yield a zeroed
// snapshot, never an error.
func (r *PostgresRepository) Snapshot(ctx context.Context, userID int64) (*Snapshot, error) {
	acct, err := r.Get(ctx, userID)
	if errors.Is(err, ErrUnknownAccount) {
		return &Snapshot{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}

	seen := acct.DailyAdsSeen
	if !sameDay(acct.LastAdDate, time.Now()) {
		// The stored counter belongs to a previous quota window.
		seen = 0
	}

	return &Snapshot{
		UserID:         acct.UserID,
		Balance:        acct.Balance,
		DailyAdsSeen:   seen,
		TotalReferrals: acct.TotalReferrals,
	}, nil
}

// CreditAdTx executes the rollover-check-increment sequence as one atomic unit
// within the caller's transaction: lock the account row, reset the daily
// counter when the quota window moved on, enforce the daily limit, then credit
// the balance. Returns the new daily count. The caller commits or rolls back.
func (r *PostgresRepository) CreditAdTx(ctx context.Context, tx *sqlx.Tx, userID int64, income int64, dailyLimit int, now time.Time) (int, error) {
	var acct Account
	err := tx.GetContext(ctx, &acct, `
		SELECT user_id, display_name, balance, daily_ads_seen, total_referrals, referred_by, last_ad_date, created_at
		FROM accounts
		WHERE user_id = $1
		FOR UPDATE
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUnknownAccount
	}
	if err != nil {
		return 0, fmt.Errorf("%w: lock account row: %v", database.ErrUnavailable, err)
	}

	seen := acct.DailyAdsSeen
	if !sameDay(acct.LastAdDate, now) {
		seen = 0
	}

	if seen >= dailyLimit {
		return 0, ErrQuotaExceeded
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance = balance + $2, daily_ads_seen = $3, last_ad_date = $4
		WHERE user_id = $1
	`, userID, income, seen+1, now.UTC().Format(dateLayout)); err != nil {
		return 0, fmt.Errorf("%w: credit ad income: %v", database.ErrUnavailable, err)
	}

	return seen + 1, nil
}

// DebitTx removes amount points from the account within the caller's
// transaction, locking the row first so the balance can never go negative.
func (r *PostgresRepository) DebitTx(ctx context.Context, tx *sqlx.Tx, userID int64, amount int64) error {
	var balance int64
	err := tx.GetContext(ctx, &balance, `SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUnknownAccount
	}
	if err != nil {
		return fmt.Errorf("%w: lock account row: %v", database.ErrUnavailable, err)
	}

	if balance < amount {
		return ErrInsufficientBalance
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE accounts SET balance = balance - $2 WHERE user_id = $1
	`, userID, amount); err != nil {
		return fmt.Errorf("%w: debit balance: %v", database.ErrUnavailable, err)
	}

	return nil
}
