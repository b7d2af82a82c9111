package account

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/earnquick/earnquick-api/internal/pkg/response"
)

func newTestHandler(repo *fakeRepo) *Handler {
	svc := NewService(repo, nil, 31250)
	return NewHandler(svc, Limits{
		DailyAdLimit:      300,
		AdIncome:          20,
		ReferralBonus:     31250,
		MinWithdrawPoints: 50000,
	})
}

func TestCreateHandlerReturns201ForNewAccount(t *testing.T) {
	h := newTestHandler(newFakeRepo())

	body := strings.NewReader(`{"user_id": 7, "display_name": "alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	w := httptest.NewRecorder()

	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success response")
	}
}

func TestCreateHandlerReturns200ForExistingAccount(t *testing.T) {
	repo := newFakeRepo()
	repo.created[7] = true
	h := newTestHandler(repo)

	body := strings.NewReader(`{"user_id": 7}`)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	w := httptest.NewRecorder()

	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateHandlerRejectsMissingUserID(t *testing.T) {
	h := newTestHandler(newFakeRepo())

	body := strings.NewReader(`{"display_name": "nobody"}`)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	w := httptest.NewRecorder()

	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetSnapshotHandlerIncludesLimits(t *testing.T) {
	repo := newFakeRepo()
	repo.snapshots[9] = &Snapshot{UserID: 9, Balance: 140, DailyAdsSeen: 7, TotalReferrals: 2}
	h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/9", nil)
	w := httptest.NewRecorder()

	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data SnapshotResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.Balance != 140 || resp.Data.DailyAdsSeen != 7 {
		t.Fatalf("unexpected snapshot payload: %+v", resp.Data)
	}
	if resp.Data.DailyAdLimit != 300 || resp.Data.MinWithdrawPoints != 50000 {
		t.Fatalf("expected configured limits in payload, got %+v", resp.Data)
	}
}

func TestGetSnapshotHandlerRejectsBadID(t *testing.T) {
	h := newTestHandler(newFakeRepo())

	req := httptest.NewRequest(http.MethodGet, "/abc", nil)
	w := httptest.NewRecorder()

	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
