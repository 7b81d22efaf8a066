package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/acasalaka/apapmedika-gateway/internal/apiclient"
	"github.com/acasalaka/apapmedika-gateway/internal/models"
)

// RoomStore caches the rooms of the reservation backend. Rooms are
// read-only from the gateway's point of view.
type RoomStore struct {
	state[models.Room]
	client  *apiclient.Client
	baseURL string
}

// NewRoomStore creates a room store against the reservation backend.
func NewRoomStore(client *apiclient.Client, baseURL string) *RoomStore {
	return &RoomStore{
		client:  client,
		baseURL: baseURL,
	}
}

// List replaces the cached collection with all rooms.
func (s *RoomStore) List(ctx context.Context, token string) ([]models.Room, error) {
	s.begin()
	defer s.settle()

	items, err := apiclient.Do[[]models.Room](ctx, s.client, http.MethodGet, s.baseURL+"/api/rooms", nil, token)
	if err != nil {
		s.fail(fmt.Sprintf("Gagal mengambil room. %v", err))
		return nil, err
	}

	s.replaceAll(items)
	return items, nil
}

// Detail fetches a single room with its occupying reservations.
func (s *RoomStore) Detail(ctx context.Context, token, id string) (models.Room, error) {
	s.begin()
	defer s.settle()

	detailURL := s.baseURL + "/api/rooms/" + url.PathEscape(id)
	item, err := apiclient.Do[models.Room](ctx, s.client, http.MethodGet, detailURL, nil, token)
	if err != nil {
		s.fail(fmt.Sprintf("Gagal mengambil detail room. %v", err))
		return models.Room{}, err
	}

	return item, nil
}
