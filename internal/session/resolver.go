// Package session resolves the identity behind a bearer token: the token's
// subject claim is read without signature verification (verification is the
// backends' responsibility) and looked up against the user directory to
// obtain a user ID and role. The role only selects which list endpoint a
// store calls; it is a UX convenience, never a security boundary.
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/acasalaka/apapmedika-gateway/internal/apiclient"
	"github.com/acasalaka/apapmedika-gateway/internal/cache"
	"github.com/acasalaka/apapmedika-gateway/internal/models"
)

// TokenError reports a malformed token or an unresolved identity lookup.
type TokenError struct {
	Reason string
	Err    error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return "token error: " + e.Reason + ": " + e.Err.Error()
	}
	return "token error: " + e.Reason
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// Resolver performs the token-to-identity resolution shared by every store.
type Resolver struct {
	client  *apiclient.Client
	baseURL string
	cache   cache.Cache
	ttl     time.Duration
}

// NewResolver creates a resolver against the user-directory backend. A nil
// cache disables identity caching.
func NewResolver(client *apiclient.Client, baseURL string, c cache.Cache, ttl time.Duration) *Resolver {
	return &Resolver{
		client:  client,
		baseURL: baseURL,
		cache:   c,
		ttl:     ttl,
	}
}

// Resolve decodes the token's subject and looks it up against the user
// directory. The resolved identity is cached by subject so repeated store
// operations within a session do a single directory call.
func (r *Resolver) Resolve(ctx context.Context, token string) (models.Identity, error) {
	sub, err := Subject(token)
	if err != nil {
		return models.Identity{}, err
	}

	if r.cache != nil {
		if raw, err := r.cache.Get(ctx, cache.IdentityKey(sub)); err == nil {
			var ident models.Identity
			if json.Unmarshal(raw, &ident) == nil {
				return ident, nil
			}
			// The entry no longer decodes; drop it rather than retry it
			// on every resolve.
			_ = r.cache.Delete(ctx, cache.IdentityKey(sub))
		}
	}

	lookupURL := r.baseURL + "/api/user/detail/" + url.PathEscape(sub)
	detail, err := apiclient.Do[models.UserDetail](ctx, r.client, http.MethodGet, lookupURL, nil, token)
	if err != nil {
		if r.cache != nil {
			// A subject the directory rejects must not keep serving a
			// previously cached identity.
			_ = r.cache.Delete(ctx, cache.IdentityKey(sub))
		}
		return models.Identity{}, &TokenError{Reason: "failed to fetch user data", Err: err}
	}

	role, err := models.ParseRole(detail.Role)
	if err != nil {
		return models.Identity{}, &TokenError{Reason: "unresolved role", Err: err}
	}

	ident := models.Identity{UserID: detail.ID, Role: role}

	if r.cache != nil {
		if raw, err := json.Marshal(ident); err == nil {
			// Best effort; a failed cache write only costs an extra lookup.
			_ = r.cache.Set(ctx, cache.IdentityKey(sub), raw, r.ttl)
		}
	}

	return ident, nil
}

// Subject extracts the subject claim from a bearer token without verifying
// its signature.
func Subject(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", &TokenError{Reason: "malformed token", Err: err}
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", &TokenError{Reason: "token has no subject claim", Err: err}
	}

	return sub, nil
}
