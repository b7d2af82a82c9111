package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/earnquick/earnquick-api/internal/pkg/database"
	"github.com/earnquick/earnquick-api/internal/pkg/response"
	"github.com/earnquick/earnquick-api/internal/pkg/validator"
)

// Limits carries the configured reward constants the dashboard displays.
type Limits struct {
	DailyAdLimit      int
	AdIncome          int64
	ReferralBonus     int64
	MinWithdrawPoints int64
}

type Handler struct {
	svc    *Service
	limits Limits
}

func NewHandler(svc *Service, limits Limits) *Handler {
	return &Handler{svc: svc, limits: limits}
}

// Create handles POST /. Registration is idempotent.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	created, err := h.svc.Create(r.Context(), req.UserID, req.DisplayName, req.ReferredBy)
	if err != nil {
		if errors.Is(err, database.ErrUnavailable) {
			response.StorageUnavailable(w)
			return
		}
		response.InternalError(w)
		return
	}

	payload := map[string]interface{}{"user_id": req.UserID, "created": created}
	if created {
		response.Created(w, payload)
		return
	}
	response.OK(w, payload)
}

// GetSnapshot handles GET /{id}. Unknown ids get a zeroed snapshot.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(w, "invalid user id")
		return
	}

	snap, err := h.svc.GetSnapshot(r.Context(), userID)
	if err != nil {
		if errors.Is(err, database.ErrUnavailable) {
			response.StorageUnavailable(w)
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, SnapshotResponse{
		UserID:            snap.UserID,
		Balance:           snap.Balance,
		DailyAdsSeen:      snap.DailyAdsSeen,
		TotalReferrals:    snap.TotalReferrals,
		DailyAdLimit:      h.limits.DailyAdLimit,
		AdIncome:          h.limits.AdIncome,
		ReferralBonus:     h.limits.ReferralBonus,
		MinWithdrawPoints: h.limits.MinWithdrawPoints,
	})
}

// Routes returns the account routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{id}", h.GetSnapshot)
	return r
}
