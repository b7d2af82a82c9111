package withdrawal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/earnquick/earnquick-api/internal/domain/account"
)

func serveWithdrawal(t *testing.T, repo Repository, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(NewService(repo, nil, nil, Config{MinWithdrawPoints: 50000}))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)
	return w
}

func TestSubmitHandlerReturnsRequestID(t *testing.T) {
	w := serveWithdrawal(t, &fakeWithdrawRepo{}, http.MethodPost, "/",
		`{"user_id": 1, "amount": 50000, "method": "bkash", "destination": "01700000000"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data SubmitResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.RequestID == 0 {
		t.Fatal("expected a request id in the response")
	}
}

func TestSubmitHandlerRejectsUnknownMethod(t *testing.T) {
	w := serveWithdrawal(t, &fakeWithdrawRepo{}, http.MethodPost, "/",
		`{"user_id": 1, "amount": 50000, "method": "paypal", "destination": "someone@example.com"}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmitHandlerBelowMinimum(t *testing.T) {
	w := serveWithdrawal(t, &fakeWithdrawRepo{}, http.MethodPost, "/",
		`{"user_id": 1, "amount": 100, "method": "bkash", "destination": "01700000000"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Error.Code != "BELOW_MINIMUM" {
		t.Fatalf("expected BELOW_MINIMUM, got %q", resp.Error.Code)
	}
}

func TestSubmitHandlerInsufficientBalance(t *testing.T) {
	repo := &fakeWithdrawRepo{submitErr: account.ErrInsufficientBalance}
	w := serveWithdrawal(t, repo, http.MethodPost, "/",
		`{"user_id": 1, "amount": 50000, "method": "bkash", "destination": "01700000000"}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListHandlerRequiresUserID(t *testing.T) {
	w := serveWithdrawal(t, &fakeWithdrawRepo{}, http.MethodGet, "/", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListHandlerReturnsHistory(t *testing.T) {
	repo := &fakeWithdrawRepo{requests: []Request{
		{ID: 2, UserID: 1, Amount: 50000, Method: "bkash", Destination: "01700000000", Status: StatusPending},
		{ID: 1, UserID: 1, Amount: 60000, Method: "nagad", Destination: "01811111111", Status: StatusPaid},
	}}
	w := serveWithdrawal(t, repo, http.MethodGet, "/?user_id=1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []RequestView `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp.Data))
	}
	if resp.Data[0].Status != StatusPending || resp.Data[1].Status != StatusPaid {
		t.Fatalf("unexpected statuses: %+v", resp.Data)
	}
}
