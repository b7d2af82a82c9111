package account

import (
	"context"
	"testing"
)

type fakeRepo struct {
	created    map[int64]bool
	lastBonus  int64
	lastRefBy  *int64
	snapshots  map[int64]*Snapshot
	createErr  error
	createdNew bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{created: make(map[int64]bool), snapshots: make(map[int64]*Snapshot), createdNew: true}
}

func (f *fakeRepo) Create(ctx context.Context, userID int64, displayName string, referredBy *int64, referralBonus int64) (bool, error) {
	if f.createErr != nil {
		return false, f.createErr
	}
	f.lastRefBy = referredBy
	f.lastBonus = referralBonus
	if f.created[userID] {
		return false, nil
	}
	f.created[userID] = true
	return f.createdNew, nil
}

func (f *fakeRepo) Snapshot(ctx context.Context, userID int64) (*Snapshot, error) {
	if snap, ok := f.snapshots[userID]; ok {
		return snap, nil
	}
	return &Snapshot{UserID: userID}, nil
}

func TestCreateDropsSelfReferral(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, 31250)

	self := int64(7)
	created, err := svc.Create(context.Background(), 7, "alice", &self)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !created {
		t.Fatal("expected account to be created")
	}
	if repo.lastRefBy != nil {
		t.Fatalf("expected self-referral to be dropped, got %v", *repo.lastRefBy)
	}
}

func TestCreatePassesReferralBonus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, 31250)

	ref := int64(1)
	if _, err := svc.Create(context.Background(), 2, "bob", &ref); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if repo.lastBonus != 31250 {
		t.Fatalf("expected bonus 31250, got %d", repo.lastBonus)
	}
	if repo.lastRefBy == nil || *repo.lastRefBy != 1 {
		t.Fatalf("expected referrer 1, got %v", repo.lastRefBy)
	}
}

func TestCreateIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, 31250)

	created, err := svc.Create(context.Background(), 3, "carol", nil)
	if err != nil || !created {
		t.Fatalf("first create: created=%v err=%v", created, err)
	}

	created, err = svc.Create(context.Background(), 3, "carol", nil)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if created {
		t.Fatal("expected second create to be a no-op")
	}
}

func TestGetSnapshotUnknownAccountReturnsZeroes(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, 31250)

	snap, err := svc.GetSnapshot(context.Background(), 99)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snap.UserID != 99 || snap.Balance != 0 || snap.DailyAdsSeen != 0 || snap.TotalReferrals != 0 {
		t.Fatalf("expected zeroed snapshot, got %+v", snap)
	}
}
