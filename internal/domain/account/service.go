package account

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Repository is the part of the ledger the account service needs.
type Repository interface {
	Create(ctx context.Context, userID int64, displayName string, referredBy *int64, referralBonus int64) (bool, error)
	Snapshot(ctx context.Context, userID int64) (*Snapshot, error)
}

type Service struct {
	repo          Repository
	cache         *SnapshotCache
	referralBonus int64
}

func NewService(repo Repository, cache *SnapshotCache, referralBonusPoints int64) *Service {
	return &Service{repo: repo, cache: cache, referralBonus: referralBonusPoints}
}

// Create registers an account. Idempotent; the referral bonus is credited at
// most once, when the account row is actually inserted. A self-referral is
// silently dropped, matching the chat front end's behavior.
func (s *Service) Create(ctx context.Context, userID int64, displayName string, referredBy *int64) (bool, error) {
	if referredBy != nil && *referredBy == userID {
		referredBy = nil
	}

	created, err := s.repo.Create(ctx, userID, displayName, referredBy, s.referralBonus)
	if err != nil {
		return false, err
	}

	if created {
		log.Info().Int64("user_id", userID).Msg("account created")
		if referredBy != nil {
			log.Info().Int64("user_id", userID).Int64("referrer_id", *referredBy).Int64("bonus", s.referralBonus).Msg("referral bonus credited")
			if err := s.cache.Invalidate(ctx, *referredBy); err != nil {
				log.Warn().Err(err).Int64("user_id", *referredBy).Msg("snapshot cache invalidation failed")
			}
		}
	}

	return created, nil
}

// GetSnapshot serves the dashboard read path through the cache.
func (s *Service) GetSnapshot(ctx context.Context, userID int64) (*Snapshot, error) {
	if snap, err := s.cache.Get(ctx, userID); err == nil && snap != nil {
		return snap, nil
	} else if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("snapshot cache read failed")
	}

	snap, err := s.repo.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, snap); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("snapshot cache write failed")
	}

	return snap, nil
}
