package store_test

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acasalaka/apapmedika-gateway/internal/apiclient"
	"github.com/acasalaka/apapmedika-gateway/internal/models"
	"github.com/acasalaka/apapmedika-gateway/internal/session"
	"github.com/acasalaka/apapmedika-gateway/internal/store"
)

// signedToken builds a bearer token with the given subject. The signature is
// irrelevant: the resolver never verifies it.
func signedToken(t *testing.T, subject string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func writeEnvelope(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"data": data, "message": message})
}

// serveUserDetail registers a user directory answering every subject with
// the given id and role.
func serveUserDetail(mux *http.ServeMux, id string, role models.Role) {
	mux.HandleFunc("/api/user/detail/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, models.UserDetail{ID: id, Role: string(role)}, "")
	})
}

func resolverFor(baseURL string) *session.Resolver {
	return session.NewResolver(apiclient.New(0), baseURL, nil, time.Minute)
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

func TestRegistryReusesSessionPerToken(t *testing.T) {
	reg := store.NewRegistry(store.Deps{
		Client:   apiclient.New(0),
		Resolver: resolverFor("http://localhost:0"),
		Notifier: &recordingNotifier{},
	}, time.Hour)
	defer reg.Close()

	tokenA := signedToken(t, "a@apapmedika.id")
	tokenB := signedToken(t, "b@apapmedika.id")

	first := reg.Session(tokenA)
	second := reg.Session(tokenA)
	other := reg.Session(tokenB)

	assert.Same(t, first, second, "same token must map to the same session")
	assert.NotSame(t, first, other, "different tokens must not share stores")
	assert.Equal(t, 2, reg.Len())
}

func TestRegistrySessionHasAllStores(t *testing.T) {
	reg := store.NewRegistry(store.Deps{
		Client:   apiclient.New(0),
		Resolver: resolverFor("http://localhost:0"),
		Notifier: &recordingNotifier{},
	}, time.Hour)
	defer reg.Close()

	sess := reg.Session(signedToken(t, "a@apapmedika.id"))

	require.NotNil(t, sess.Appointments)
	require.NotNil(t, sess.Bills)
	require.NotNil(t, sess.Reservations)
	require.NotNil(t, sess.Rooms)
	require.NotNil(t, sess.Policies)
}
