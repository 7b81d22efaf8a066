package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acasalaka/apapmedika-gateway/internal/middleware"
	"github.com/acasalaka/apapmedika-gateway/internal/models"
	"github.com/acasalaka/apapmedika-gateway/internal/store"
)

// ReservationHandler exposes the reservation and room stores of the
// caller's session.
type ReservationHandler struct {
	sessions *store.Registry
}

func NewReservationHandler(sessions *store.Registry) *ReservationHandler {
	return &ReservationHandler{sessions: sessions}
}

func (h *ReservationHandler) session(r *http.Request) (*store.Session, string) {
	token, _ := middleware.Token(r.Context())
	return h.sessions.Session(token), token
}

// List returns the reservations the session's role may see.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	items, err := sess.Reservations.List(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items, "")
}

// Detail returns one reservation.
func (h *ReservationHandler) Detail(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	item, err := sess.Reservations.Detail(r.Context(), token, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item, "")
}

// Create books a new reservation.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	var req models.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	item, err := sess.Reservations.Create(r.Context(), token, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item, "Sukses menambahkan reservation")
}

// Update changes a reservation's dates or room.
func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	var req models.UpdateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	if err := sess.Reservations.Update(r.Context(), token, chi.URLParam(r, "id"), req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil, "Sukses mengubah reservation")
}

// Delete removes a reservation.
func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	if err := sess.Reservations.Delete(r.Context(), token, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil, "Sukses menghapus reservation")
}

// ListRooms returns all rooms.
func (h *ReservationHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	items, err := sess.Rooms.List(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items, "")
}

// RoomDetail returns one room with its occupying reservations.
func (h *ReservationHandler) RoomDetail(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	item, err := sess.Rooms.Detail(r.Context(), token, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item, "")
}
