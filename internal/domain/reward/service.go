package reward

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/earnquick/earnquick-api/internal/domain/account"
)

// Config holds the reward rule constants.
type Config struct {
	AdIncome     int64
	DailyAdLimit int
	TokenTimeout time.Duration
}

type Service struct {
	repo  Repository
	cache *account.SnapshotCache
	cfg   Config
}

func NewService(repo Repository, cache *account.SnapshotCache, cfg Config) *Service {
	return &Service{repo: repo, cache: cache, cfg: cfg}
}

// IssuedToken is what the mini-app receives before showing an ad.
type IssuedToken struct {
	Token          string
	TimeoutSeconds int
}

// IssueToken creates a fresh single-use token for userID. No precondition on
// the account existing; the account check happens at completion time.
func (s *Service) IssueToken(ctx context.Context, userID int64) (*IssuedToken, error) {
	token, err := generateAdToken()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, &AdToken{
		Token:    token,
		UserID:   userID,
		IssuedAt: time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	log.Debug().Int64("user_id", userID).Msg("ad token issued")
	return &IssuedToken{
		Token:          token,
		TimeoutSeconds: int(s.cfg.TokenTimeout.Seconds()),
	}, nil
}

// CompleteAd verifies and consumes the token and credits the ad income.
// Returns the account's new daily ad count.
func (s *Service) CompleteAd(ctx context.Context, userID int64, token string) (int, error) {
	count, err := s.repo.Consume(ctx, userID, token, ConsumeParams{
		Now:        time.Now().UTC(),
		Timeout:    s.cfg.TokenTimeout,
		Income:     s.cfg.AdIncome,
		DailyLimit: s.cfg.DailyAdLimit,
	})
	if err != nil {
		return 0, err
	}

	log.Info().Int64("user_id", userID).Int64("income", s.cfg.AdIncome).Int("daily_ads_seen", count).Msg("ad credit applied")

	if err := s.cache.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("snapshot cache invalidation failed")
	}

	return count, nil
}
