package withdrawal

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/earnquick/earnquick-api/internal/domain/account"
)

// Notifier delivers the withdrawal event to the administrative channel.
type Notifier interface {
	WithdrawalRequested(ctx context.Context, ev Event) error
}

// Config holds the withdrawal rule constants.
type Config struct {
	MinWithdrawPoints int64
}

type Service struct {
	repo     Repository
	cache    *account.SnapshotCache
	notifier Notifier
	cfg      Config
}

func NewService(repo Repository, cache *account.SnapshotCache, notifier Notifier, cfg Config) *Service {
	return &Service{repo: repo, cache: cache, notifier: notifier, cfg: cfg}
}

// Submit validates and records a cash-out request. The balance is debited
// atomically with the request insert; a failed notification never fails the
// request itself.
func (s *Service) Submit(ctx context.Context, userID int64, amount int64, method, destination string) (int64, error) {
	if amount < s.cfg.MinWithdrawPoints {
		return 0, ErrBelowMinimum
	}

	id, err := s.repo.Submit(ctx, userID, amount, method, destination)
	if err != nil {
		return 0, err
	}

	log.Info().Int64("user_id", userID).Int64("amount", amount).Str("method", method).Int64("request_id", id).Msg("withdrawal request submitted")

	if err := s.cache.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("snapshot cache invalidation failed")
	}

	if s.notifier != nil {
		ev := Event{UserID: userID, Amount: amount, Method: method, Destination: destination}
		if err := s.notifier.WithdrawalRequested(ctx, ev); err != nil {
			log.Warn().Err(err).Int64("request_id", id).Msg("withdrawal notification failed")
		}
	}

	return id, nil
}

// ListByUser returns the request history for the dashboard.
func (s *Service) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Request, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
