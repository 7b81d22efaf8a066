package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/acasalaka/apapmedika-gateway/internal/apiclient"
	"github.com/acasalaka/apapmedika-gateway/internal/models"
)

// BillStore caches the bills visible to one session.
type BillStore struct {
	state[models.Bill]
	client  *apiclient.Client
	baseURL string
	notify  Notifier
}

// NewBillStore creates a bill store against the billing backend.
func NewBillStore(client *apiclient.Client, baseURL string, notify Notifier) *BillStore {
	return &BillStore{
		client:  client,
		baseURL: baseURL,
		notify:  notify,
	}
}

// List replaces the cached collection with all bills.
func (s *BillStore) List(ctx context.Context, token string) ([]models.Bill, error) {
	s.begin()
	defer s.settle()

	items, err := apiclient.Do[[]models.Bill](ctx, s.client, http.MethodGet, s.baseURL+"/api/bill/viewall", nil, token)
	if err != nil {
		s.fail(fmt.Sprintf("Gagal mengambil bill. %v", err))
		return nil, err
	}

	s.replaceAll(items)
	return items, nil
}

// Detail fetches a single bill without merging it into the collection.
func (s *BillStore) Detail(ctx context.Context, token, id string) (models.Bill, error) {
	s.begin()
	defer s.settle()

	detailURL := s.baseURL + "/api/bill/detail/" + url.PathEscape(id)
	item, err := apiclient.Do[models.Bill](ctx, s.client, http.MethodGet, detailURL, nil, token)
	if err != nil {
		s.fail(fmt.Sprintf("Gagal mengambil bill. %v", err))
		return models.Bill{}, err
	}

	return item, nil
}

// Pay requests payment of a bill. On success only the fields carried by the
// request are mutated on the cached row; subtotal stays whatever the last
// list or detail fetch reported, it is never recomputed locally.
func (s *BillStore) Pay(ctx context.Context, token, id string, req models.PayBillRequest) error {
	s.begin()
	defer s.settle()

	payURL := s.baseURL + "/api/bill/" + url.PathEscape(id) + "/update"
	_, err := apiclient.Do[models.Bill](ctx, s.client, http.MethodPut, payURL, req, token)
	if err != nil {
		msg := fmt.Sprintf("Gagal membayar bill %v", err)
		s.fail(msg)
		s.notify.Error(msg)
		return err
	}

	s.mutate(
		func(b models.Bill) bool { return b.ID == id },
		func(b *models.Bill) {
			b.Status = req.Status
			b.PolicyID = req.PolicyID
			b.ReservationID = req.ReservationID
		},
	)

	s.notify.Success("Sukses membayar bill")
	return nil
}
