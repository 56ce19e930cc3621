package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"canchas/internal/db"
	"canchas/internal/entities"
	apperrors "canchas/internal/errors"
	"canchas/internal/repository"
)

type ReservationService interface {
	DefaultPolicy() entities.BatchPolicy
	CreateBatch(ctx context.Context, items []entities.ReservationRequest, policy entities.BatchPolicy) (entities.BatchResult, error)
	CheckAvailability(ctx context.Context, q entities.AvailabilityQuery) (bool, error)
	ListSchedule(ctx context.Context, q entities.ScheduleQuery) ([]db.ScheduleEntry, error)
	ListActiveCourts(ctx context.Context) ([]db.Court, error)
}

type ReservationHandler struct {
	Service ReservationService
}

func NewReservationHandler(svc ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

// CreateBatch handles POST /api/reservations/batch. The policy comes from
// ?policy=strict|partial or the service default.
func (h *ReservationHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	policy := h.Service.DefaultPolicy()
	if p := r.URL.Query().Get("policy"); p != "" {
		parsed, err := entities.ParseBatchPolicy(p)
		if err != nil {
			writeError(w, apperrors.BadRequest(msgInvalidFormat))
			return
		}
		policy = parsed
	}

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reservations == nil {
		writeError(w, apperrors.BadRequest(msgInvalidFormat))
		return
	}

	res, err := h.Service.CreateBatch(r.Context(), req.Items(), policy)

	if policy == entities.FailFast {
		if err != nil {
			writeError(w, batchFailure(err))
			return
		}
		writeJSON(w, http.StatusCreated, res.Inserted)
		return
	}

	if err != nil {
		writeJSON(w, http.StatusInternalServerError, FailureResponse{Success: false, Error: repository.ErrorMessage(err)})
		return
	}
	if len(res.Errors) == 0 {
		writeJSON(w, http.StatusCreated, BatchResponse{Success: true, Inserted: res.Inserted, Message: msgAllCreated})
		return
	}
	writeJSON(w, http.StatusMultiStatus, BatchResponse{
		Success:  true,
		Inserted: res.Inserted,
		Errors:   res.Errors,
		Message:  msgSomeNotCreated,
	})
}

func batchFailure(err error) *apperrors.HTTPError {
	if errors.Is(err, repository.ErrScheduleConflict) {
		return apperrors.Conflict(msgConflict)
	}
	return apperrors.Internal(repository.ErrorMessage(err))
}

// CheckAvailability handles GET /api/reservations/availability?date=&court_id=&start=&end=
func (h *ReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	courtID, err := strconv.ParseInt(params.Get("court_id"), 10, 64)
	if err != nil {
		writeError(w, apperrors.BadRequest(msgInvalidFormat))
		return
	}

	available, err := h.Service.CheckAvailability(r.Context(), entities.AvailabilityQuery{
		Date:    params.Get("date"),
		CourtID: courtID,
		Start:   params.Get("start"),
		End:     params.Get("end"),
	})
	if err != nil {
		writeError(w, apperrors.Internal(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, entities.AvailabilityResponse{Available: available})
}

// ListSchedule handles GET /api/reservations?start_date=&end_date=
func (h *ReservationHandler) ListSchedule(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListSchedule(r.Context(), entities.ScheduleQuery{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	})
	if err != nil {
		writeError(w, apperrors.Internal(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ListCourts handles GET /courts.
func (h *ReservationHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.Service.ListActiveCourts(r.Context())
	if err != nil {
		writeError(w, apperrors.Internal(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, courts)
}
