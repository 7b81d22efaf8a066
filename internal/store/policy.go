package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/acasalaka/apapmedika-gateway/internal/apiclient"
	"github.com/acasalaka/apapmedika-gateway/internal/models"
)

// PolicyStore caches the insurance policies visible to one session.
// Coverage totals are maintained by the policy backend.
type PolicyStore struct {
	state[models.Policy]
	client  *apiclient.Client
	baseURL string
}

// NewPolicyStore creates a policy store against the policy backend.
func NewPolicyStore(client *apiclient.Client, baseURL string) *PolicyStore {
	return &PolicyStore{
		client:  client,
		baseURL: baseURL,
	}
}

// List replaces the cached collection with all policies.
func (s *PolicyStore) List(ctx context.Context, token string) ([]models.Policy, error) {
	s.begin()
	defer s.settle()

	items, err := apiclient.Do[[]models.Policy](ctx, s.client, http.MethodGet, s.baseURL+"/api/policy/viewall", nil, token)
	if err != nil {
		s.fail(fmt.Sprintf("Gagal mengambil policy. %v", err))
		return nil, err
	}

	s.replaceAll(items)
	return items, nil
}

// Detail fetches a single policy without merging it into the collection.
func (s *PolicyStore) Detail(ctx context.Context, token, id string) (models.Policy, error) {
	s.begin()
	defer s.settle()

	detailURL := s.baseURL + "/api/policy/detail/" + url.PathEscape(id)
	item, err := apiclient.Do[models.Policy](ctx, s.client, http.MethodGet, detailURL, nil, token)
	if err != nil {
		s.fail(fmt.Sprintf("Gagal mengambil detail policy. %v", err))
		return models.Policy{}, err
	}

	return item, nil
}
