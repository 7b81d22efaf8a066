package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acasalaka/apapmedika-gateway/internal/middleware"
	"github.com/acasalaka/apapmedika-gateway/internal/models"
	"github.com/acasalaka/apapmedika-gateway/internal/store"
)

// AppointmentHandler exposes the appointment store of the caller's session.
type AppointmentHandler struct {
	sessions *store.Registry
}

func NewAppointmentHandler(sessions *store.Registry) *AppointmentHandler {
	return &AppointmentHandler{sessions: sessions}
}

func (h *AppointmentHandler) session(r *http.Request) (*store.Session, string) {
	token, _ := middleware.Token(r.Context())
	return h.sessions.Session(token), token
}

// List returns the appointments the session's role may see.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	items, err := sess.Appointments.List(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items, "")
}

// Detail returns one appointment.
func (h *AppointmentHandler) Detail(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	item, err := sess.Appointments.Detail(r.Context(), token, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item, "")
}

// Create books a new appointment.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	var req models.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	item, err := sess.Appointments.Create(r.Context(), token, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item, "Sukses menambahkan appointment")
}

// UpdateStatus requests a status transition.
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	var req models.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	if err := sess.Appointments.UpdateStatus(r.Context(), token, req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil, "Sukses mengubah status appointment")
}

// UpdateTreatments requests a diagnosis/treatment change.
func (h *AppointmentHandler) UpdateTreatments(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	var req models.UpdateAppointmentTreatmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	if err := sess.Appointments.UpdateTreatments(r.Context(), token, req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil, "Sukses mengubah treatment appointment")
}

// Delete removes an appointment.
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	if err := sess.Appointments.Delete(r.Context(), token, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil, "Sukses menghapus appointment")
}
