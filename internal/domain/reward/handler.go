package reward

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/earnquick/earnquick-api/internal/domain/account"
	"github.com/earnquick/earnquick-api/internal/pkg/database"
	"github.com/earnquick/earnquick-api/internal/pkg/response"
	"github.com/earnquick/earnquick-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// IssueToken handles POST /token
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req IssueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	issued, err := h.svc.IssueToken(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, database.ErrUnavailable) {
			response.StorageUnavailable(w)
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, IssueTokenResponse{
		Token:          issued.Token,
		TimeoutSeconds: issued.TimeoutSeconds,
	})
}

// CompleteAd handles POST /complete
func (h *Handler) CompleteAd(w http.ResponseWriter, r *http.Request) {
	var req CompleteAdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	count, err := h.svc.CompleteAd(r.Context(), req.UserID, req.AdToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			response.Conflict(w, "INVALID_TOKEN", "invalid or already used token")
		case errors.Is(err, ErrTokenExpired):
			response.Conflict(w, "TOKEN_EXPIRED", "token expired")
		case errors.Is(err, account.ErrQuotaExceeded):
			response.QuotaExceeded(w, "daily ad limit reached")
		case errors.Is(err, account.ErrUnknownAccount):
			response.NotFound(w, "account not found")
		case errors.Is(err, database.ErrUnavailable):
			response.StorageUnavailable(w)
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, CompleteAdResponse{DailyAdsSeen: count})
}

// Routes returns the ad reward routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/token", h.IssueToken)
	r.Post("/complete", h.CompleteAd)
	return r
}
