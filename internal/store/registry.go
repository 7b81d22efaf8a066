package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/acasalaka/apapmedika-gateway/internal/apiclient"
	"github.com/acasalaka/apapmedika-gateway/internal/session"
)

// Endpoints holds the base URLs of the clinic backends the stores call.
type Endpoints struct {
	Appointment string
	Reservation string
	Billing     string
}

// Session groups the per-entity stores of one authenticated session. Stores
// are never shared between sessions, so one user's cached collections cannot
// leak into another's.
type Session struct {
	ID           uuid.UUID
	Appointments *AppointmentStore
	Bills        *BillStore
	Reservations *ReservationStore
	Rooms        *RoomStore
	Policies     *PolicyStore
}

// Deps carries everything a Session needs to build its stores.
type Deps struct {
	Client    *apiclient.Client
	Resolver  *session.Resolver
	Notifier  Notifier
	Endpoints Endpoints
}

// NewSession builds a full set of stores for one bearer token.
func NewSession(deps Deps) *Session {
	return &Session{
		ID:           uuid.New(),
		Appointments: NewAppointmentStore(deps.Client, deps.Endpoints.Appointment, deps.Resolver, deps.Notifier),
		Bills:        NewBillStore(deps.Client, deps.Endpoints.Billing, deps.Notifier),
		Reservations: NewReservationStore(deps.Client, deps.Endpoints.Reservation, deps.Resolver, deps.Notifier),
		Rooms:        NewRoomStore(deps.Client, deps.Endpoints.Reservation),
		Policies:     NewPolicyStore(deps.Client, deps.Endpoints.Billing),
	}
}

type registryEntry struct {
	session  *Session
	lastSeen time.Time
}

// Registry hands out per-token sessions, creating each on first use and
// evicting it after the idle TTL. The bearer token is the session key; an
// expired or replaced token simply produces a fresh session with empty
// collections.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*registryEntry
	deps     Deps
	idleTTL  time.Duration
	done     chan struct{}
}

// NewRegistry creates a registry and starts its eviction goroutine.
func NewRegistry(deps Deps, idleTTL time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]*registryEntry),
		deps:     deps,
		idleTTL:  idleTTL,
		done:     make(chan struct{}),
	}

	go r.evict()

	return r
}

// Session returns the session for a token, creating it on first use. The
// write lock also covers the lastSeen touch, so eviction cannot race a
// lookup.
func (r *Registry) Session(token string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.sessions[token]; ok {
		entry.lastSeen = time.Now()
		return entry.session
	}

	sess := NewSession(r.deps)
	r.sessions[token] = &registryEntry{
		session:  sess,
		lastSeen: time.Now(),
	}

	log.Debug().Str("session_id", sess.ID.String()).Msg("Session created")
	return sess
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) evict() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			now := time.Now()
			for token, entry := range r.sessions {
				if now.Sub(entry.lastSeen) > r.idleTTL {
					log.Debug().Str("session_id", entry.session.ID.String()).Msg("Session evicted")
					delete(r.sessions, token)
				}
			}
			r.mu.Unlock()
		case <-r.done:
			return
		}
	}
}

// Close stops the eviction goroutine.
func (r *Registry) Close() error {
	close(r.done)
	return nil
}
