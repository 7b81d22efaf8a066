package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/acasalaka/apapmedika-gateway/internal/apiclient"
	"github.com/acasalaka/apapmedika-gateway/internal/models"
	"github.com/acasalaka/apapmedika-gateway/internal/session"
)

// AppointmentStore caches the appointments visible to one session.
type AppointmentStore struct {
	state[models.Appointment]
	client   *apiclient.Client
	baseURL  string
	resolver *session.Resolver
	notify   Notifier
}

// NewAppointmentStore creates an appointment store against the appointment
// backend.
func NewAppointmentStore(client *apiclient.Client, baseURL string, resolver *session.Resolver, notify Notifier) *AppointmentStore {
	return &AppointmentStore{
		client:   client,
		baseURL:  baseURL,
		resolver: resolver,
		notify:   notify,
	}
}

// List replaces the cached collection with the appointments the session's
// role is allowed to see: doctors and patients get their own scoped listing,
// admins and nurses the full one. An unresolved identity aborts the call.
func (s *AppointmentStore) List(ctx context.Context, token string) ([]models.Appointment, error) {
	s.begin()
	defer s.settle()

	ident, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		s.fail(fmt.Sprintf("Gagal mengambil appointment. %v", err))
		return nil, err
	}

	var listURL string
	switch ident.Role {
	case models.RoleDoctor:
		listURL = s.baseURL + "/api/appointment/by-doctor?idDoctor=" + url.QueryEscape(ident.UserID)
	case models.RolePatient:
		listURL = s.baseURL + "/api/appointment/by-patient?idPatient=" + url.QueryEscape(ident.UserID)
	default:
		listURL = s.baseURL + "/api/appointment/viewall"
	}

	items, err := apiclient.Do[[]models.Appointment](ctx, s.client, http.MethodGet, listURL, nil, token)
	if err != nil {
		s.fail(fmt.Sprintf("Gagal mengambil appointment. %v", err))
		return nil, err
	}

	s.replaceAll(items)
	return items, nil
}

// Detail fetches a single appointment. The result is returned to the caller,
// not merged into the cached collection.
func (s *AppointmentStore) Detail(ctx context.Context, token, id string) (models.Appointment, error) {
	s.begin()
	defer s.settle()

	detailURL := s.baseURL + "/api/appointment?id=" + url.QueryEscape(id)
	item, err := apiclient.Do[models.Appointment](ctx, s.client, http.MethodGet, detailURL, nil, token)
	if err != nil {
		s.fail(fmt.Sprintf("Gagal mengambil appointment. %v", err))
		return models.Appointment{}, err
	}

	return item, nil
}

// Create requests a new appointment and appends the backend's returned
// entity to the cached collection.
func (s *AppointmentStore) Create(ctx context.Context, token string, req models.CreateAppointmentRequest) (models.Appointment, error) {
	s.begin()
	defer s.settle()

	item, err := apiclient.Do[models.Appointment](ctx, s.client, http.MethodPost, s.baseURL+"/api/appointment/add", req, token)
	if err != nil {
		msg := fmt.Sprintf("Gagal menambah appointment %v", err)
		s.fail(msg)
		s.notify.Error(msg)
		return models.Appointment{}, err
	}

	s.push(item)
	s.notify.Success("Sukses menambahkan appointment")
	return item, nil
}

// UpdateStatus requests a status transition and, on success, mutates only
// the fields carried by the request on the cached row. A row that is not
// cached is skipped silently.
func (s *AppointmentStore) UpdateStatus(ctx context.Context, token string, req models.UpdateAppointmentStatusRequest) error {
	s.begin()
	defer s.settle()

	_, err := apiclient.Do[models.Appointment](ctx, s.client, http.MethodPut, s.baseURL+"/api/appointment/update-status", req, token)
	if err != nil {
		msg := fmt.Sprintf("Gagal mengubah status appointment %v", err)
		s.fail(msg)
		s.notify.Error(msg)
		return err
	}

	s.mutate(
		func(a models.Appointment) bool { return a.ID == req.ID },
		func(a *models.Appointment) {
			a.Status = req.Status
			a.UpdatedBy = req.UpdatedBy
		},
	)

	s.notify.Success("Sukses mengubah status appointment")
	return nil
}

// UpdateTreatments requests a diagnosis/treatment change. The request
// carries treatment IDs while the cached row carries resolved names, so the
// in-place mutation takes diagnosis and treatments from the backend's
// response entity and touches nothing else.
func (s *AppointmentStore) UpdateTreatments(ctx context.Context, token string, req models.UpdateAppointmentTreatmentsRequest) error {
	s.begin()
	defer s.settle()

	updated, err := apiclient.Do[models.Appointment](ctx, s.client, http.MethodPut, s.baseURL+"/api/appointment/update-treatments", req, token)
	if err != nil {
		msg := fmt.Sprintf("Gagal mengubah treatment appointment %v", err)
		s.fail(msg)
		s.notify.Error(msg)
		return err
	}

	s.mutate(
		func(a models.Appointment) bool { return a.ID == req.ID },
		func(a *models.Appointment) {
			a.Diagnosis = updated.Diagnosis
			a.Treatments = updated.Treatments
			a.UpdatedBy = req.UpdatedBy
		},
	)

	s.notify.Success("Sukses mengubah treatment appointment")
	return nil
}

// Delete removes an appointment and drops exactly the matching cached row.
func (s *AppointmentStore) Delete(ctx context.Context, token, id string) error {
	s.begin()
	defer s.settle()

	deleteURL := s.baseURL + "/api/appointment/" + url.PathEscape(id) + "/delete"
	_, err := apiclient.Do[models.Appointment](ctx, s.client, http.MethodDelete, deleteURL, nil, token)
	if err != nil {
		msg := fmt.Sprintf("Gagal menghapus appointment %v", err)
		s.fail(msg)
		s.notify.Error(msg)
		return err
	}

	s.drop(func(a models.Appointment) bool { return a.ID == id })
	s.notify.Success("Sukses menghapus appointment")
	return nil
}
