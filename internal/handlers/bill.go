package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acasalaka/apapmedika-gateway/internal/middleware"
	"github.com/acasalaka/apapmedika-gateway/internal/models"
	"github.com/acasalaka/apapmedika-gateway/internal/store"
)

// BillHandler exposes the bill and policy stores of the caller's session.
type BillHandler struct {
	sessions *store.Registry
}

func NewBillHandler(sessions *store.Registry) *BillHandler {
	return &BillHandler{sessions: sessions}
}

func (h *BillHandler) session(r *http.Request) (*store.Session, string) {
	token, _ := middleware.Token(r.Context())
	return h.sessions.Session(token), token
}

// List returns all bills.
func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	items, err := sess.Bills.List(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items, "")
}

// Detail returns one bill.
func (h *BillHandler) Detail(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	item, err := sess.Bills.Detail(r.Context(), token, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item, "")
}

// Pay settles a bill, optionally through a policy.
func (h *BillHandler) Pay(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	var req models.PayBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	if err := sess.Bills.Pay(r.Context(), token, chi.URLParam(r, "id"), req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil, "Sukses membayar bill")
}

// ListPolicies returns all policies.
func (h *BillHandler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	items, err := sess.Policies.List(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items, "")
}

// PolicyDetail returns one policy.
func (h *BillHandler) PolicyDetail(w http.ResponseWriter, r *http.Request) {
	sess, token := h.session(r)

	item, err := sess.Policies.Detail(r.Context(), token, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item, "")
}
