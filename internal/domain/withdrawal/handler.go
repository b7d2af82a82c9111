package withdrawal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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

// Submit handles POST /
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	id, err := h.svc.Submit(r.Context(), req.UserID, req.Amount, req.Method, req.Destination)
	if err != nil {
		switch {
		case errors.Is(err, ErrBelowMinimum):
			response.Error(w, http.StatusBadRequest, "BELOW_MINIMUM", "amount below minimum withdrawal")
		case errors.Is(err, account.ErrInsufficientBalance):
			response.Conflict(w, "INSUFFICIENT_BALANCE", "insufficient balance")
		case errors.Is(err, account.ErrUnknownAccount):
			response.NotFound(w, "account not found")
		case errors.Is(err, database.ErrUnavailable):
			response.StorageUnavailable(w)
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, SubmitResponse{RequestID: id})
}

// List handles GET /?user_id=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(w, "invalid user id")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	requests, err := h.svc.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		if errors.Is(err, database.ErrUnavailable) {
			response.StorageUnavailable(w)
			return
		}
		response.InternalError(w)
		return
	}

	views := make([]RequestView, 0, len(requests))
	for _, req := range requests {
		views = append(views, RequestView{
			ID:          req.ID,
			Amount:      req.Amount,
			Method:      req.Method,
			Destination: req.Destination,
			Status:      req.Status,
			RequestedAt: req.RequestedAt,
		})
	}

	response.OK(w, views)
}

// Routes returns the withdrawal routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Submit)
	r.Get("/", h.List)
	return r
}
