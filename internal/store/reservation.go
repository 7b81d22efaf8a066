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

// ReservationStore caches the reservations visible to one session.
type ReservationStore struct {
	state[models.Reservation]
	client   *apiclient.Client
	baseURL  string
	resolver *session.Resolver
	notify   Notifier
}

// NewReservationStore creates a reservation store against the reservation
// backend.
func NewReservationStore(client *apiclient.Client, baseURL string, resolver *session.Resolver, notify Notifier) *ReservationStore {
	return &ReservationStore{
		client:   client,
		baseURL:  baseURL,
		resolver: resolver,
		notify:   notify,
	}
}

// List replaces the cached collection with the reservations the session's
// role may see: patients and nurses get their scoped listing, everyone else
// the full one.
func (s *ReservationStore) List(ctx context.Context, token string) ([]models.Reservation, error) {
	s.begin()
	defer s.settle()

	ident, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		s.fail(fmt.Sprintf("Gagal mengambil reservation. %v", err))
		return nil, err
	}

	var listURL string
	switch ident.Role {
	case models.RolePatient:
		listURL = s.baseURL + "/api/reservations/patient/" + url.PathEscape(ident.UserID)
	case models.RoleNurse:
		listURL = s.baseURL + "/api/reservations/nurse/" + url.PathEscape(ident.UserID)
	default:
		listURL = s.baseURL + "/api/reservations"
	}

	items, err := apiclient.Do[[]models.Reservation](ctx, s.client, http.MethodGet, listURL, nil, token)
	if err != nil {
		s.fail(fmt.Sprintf("Gagal mengambil reservation. %v", err))
		return nil, err
	}

	s.replaceAll(items)
	return items, nil
}

// Detail fetches a single reservation without merging it into the collection.
func (s *ReservationStore) Detail(ctx context.Context, token, id string) (models.Reservation, error) {
	s.begin()
	defer s.settle()

	detailURL := s.baseURL + "/api/reservations/" + url.PathEscape(id)
	item, err := apiclient.Do[models.Reservation](ctx, s.client, http.MethodGet, detailURL, nil, token)
	if err != nil {
		s.fail(fmt.Sprintf("Gagal mengambil detail reservation. %v", err))
		return models.Reservation{}, err
	}

	return item, nil
}

// Create requests a new reservation and appends the returned entity.
func (s *ReservationStore) Create(ctx context.Context, token string, req models.CreateReservationRequest) (models.Reservation, error) {
	s.begin()
	defer s.settle()

	item, err := apiclient.Do[models.Reservation](ctx, s.client, http.MethodPost, s.baseURL+"/api/reservations/add", req, token)
	if err != nil {
		msg := fmt.Sprintf("Gagal menambah reservation %v", err)
		s.fail(msg)
		s.notify.Error(msg)
		return models.Reservation{}, err
	}

	s.push(item)
	s.notify.Success("Sukses menambahkan reservation")
	return item, nil
}

// Update requests a date/room change and mutates only the request's fields
// on the cached row. A row that is not cached is skipped silently.
func (s *ReservationStore) Update(ctx context.Context, token, id string, req models.UpdateReservationRequest) error {
	s.begin()
	defer s.settle()

	updateURL := s.baseURL + "/api/reservations/" + url.PathEscape(id) + "/update"
	_, err := apiclient.Do[models.Reservation](ctx, s.client, http.MethodPut, updateURL, req, token)
	if err != nil {
		msg := fmt.Sprintf("Gagal mengubah reservation. %v", err)
		s.fail(msg)
		s.notify.Error(msg)
		return err
	}

	s.mutate(
		func(r models.Reservation) bool { return r.ID == id },
		func(r *models.Reservation) {
			r.DateIn = req.DateIn
			r.DateOut = req.DateOut
			r.RoomID = req.RoomID
		},
	)

	s.notify.Success("Sukses mengubah reservation")
	return nil
}

// Delete removes a reservation and drops exactly the matching cached row.
func (s *ReservationStore) Delete(ctx context.Context, token, id string) error {
	s.begin()
	defer s.settle()

	deleteURL := s.baseURL + "/api/reservations/" + url.PathEscape(id) + "/delete"
	_, err := apiclient.Do[models.Reservation](ctx, s.client, http.MethodDelete, deleteURL, nil, token)
	if err != nil {
		msg := fmt.Sprintf("Gagal menghapus reservation. %v", err)
		s.fail(msg)
		s.notify.Error(msg)
		return err
	}

	s.drop(func(r models.Reservation) bool { return r.ID == id })
	s.notify.Success("Sukses menghapus reservation")
	return nil
}
