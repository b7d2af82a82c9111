package reward

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeTokenRepo struct {
	inserted   []*AdToken
	consumeErr error
	count      int
	lastParams ConsumeParams
	lastToken  string
	lastUser   int64
}

func (f *fakeTokenRepo) Insert(ctx context.Context, t *AdToken) error {
	f.inserted = append(f.inserted, t)
	return nil
}

func (f *fakeTokenRepo) Consume(ctx context.Context, userID int64, token string, p ConsumeParams) (int, error) {
	f.lastUser = userID
	f.lastToken = token
	f.lastParams = p
	if f.consumeErr != nil {
		return 0, f.consumeErr
	}
	return f.count, nil
}

func testConfig() Config {
	return Config{AdIncome: 20, DailyAdLimit: 300, TokenTimeout: 60 * time.Second}
}

func TestIssueTokenGeneratesUniqueTokens(t *testing.T) {
	repo := &fakeTokenRepo{}
	svc := NewService(repo, nil, testConfig())

	first, err := svc.IssueToken(context.Background(), 1)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	second, err := svc.IssueToken(context.Background(), 1)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	if first.Token == second.Token {
		t.Fatal("expected distinct tokens")
	}
	if first.TimeoutSeconds != 60 {
		t.Fatalf("expected timeout 60s, got %d", first.TimeoutSeconds)
	}
	if len(repo.inserted) != 2 {
		t.Fatalf("expected 2 inserted tokens, got %d", len(repo.inserted))
	}
	if repo.inserted[0].Used {
		t.Fatal("expected token inserted unused")
	}
}

func TestCompleteAdPassesRewardConstants(t *testing.T) {
	repo := &fakeTokenRepo{count: 5}
	svc := NewService(repo, nil, testConfig())

	count, err := svc.CompleteAd(context.Background(), 7, "tok-abc")
	if err != nil {
		t.Fatalf("complete ad failed: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected count 5, got %d", count)
	}
	if repo.lastUser != 7 || repo.lastToken != "tok-abc" {
		t.Fatalf("unexpected consume args: user=%d token=%q", repo.lastUser, repo.lastToken)
	}
	if repo.lastParams.Income != 20 || repo.lastParams.DailyLimit != 300 {
		t.Fatalf("unexpected consume params: %+v", repo.lastParams)
	}
	if repo.lastParams.Timeout != 60*time.Second {
		t.Fatalf("unexpected timeout: %v", repo.lastParams.Timeout)
	}
}

func TestCompleteAdPropagatesConsumeError(t *testing.T) {
	repo := &fakeTokenRepo{consumeErr: ErrInvalidToken}
	svc := NewService(repo, nil, testConfig())

	if _, err := svc.CompleteAd(context.Background(), 7, "bad"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
