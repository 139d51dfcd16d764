package reservations

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"banquet/db"
	"banquet/events"
	"banquet/models"
	"banquet/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	svc  *Service
	emit *events.Emitter
}

func NewHandler(svc *Service, emit *events.Emitter) *Handler {
	return &Handler{svc: svc, emit: emit}
}

// Reserve is POST /reserve.
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	rec, err := h.svc.Reserve(r.Context(), req)
	if err != nil {
		writeReserveError(w, err)
		return
	}

	h.emit.Emit(r.Context(), events.Event{Type: "reserve", TableID: rec.TableID})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
}

// ListForTable is GET /tables/:id/reservations.
func (h *Handler) ListForTable(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recs, err := h.svc.ListForTable(r.Context(), ps.ByName("id"))
	if err != nil {
		writeReserveError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": recs})
}

func writeReserveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrBadTableID):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid table id")
	case errors.Is(err, ErrBadSeatIndex):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid seat index")
	case errors.Is(err, ErrTableNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Table not found")
	case errors.Is(err, ErrSeatTaken):
		utils.RespondWithError(w, http.StatusConflict, "Seat already reserved")
	case errors.Is(err, ErrReservationNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Reservation not found")
	case errors.Is(err, db.ErrUnavailable):
		utils.RespondWithError(w, http.StatusInternalServerError, "Database not configured")
	default:
		log.Printf("reservations: store error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
	}
}
