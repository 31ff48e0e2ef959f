// Package auth selects the authentication service in use from
// configuration and proxies calls to it.
//
// Services are registered by identifier in a Registry. A Proxy resolves
// the configured identifier once: an unknown identifier logs a warning
// and falls back on the standard service, while a registered service
// that fails to construct is an initialization failure.
package auth

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
)

// ErrBadCredentials is returned when a user name and password do not
// match.
var ErrBadCredentials = errors.New("bad credentials")

// Principal is an authenticated identity.
type Principal interface {
	Name() string
}

// User is the result of a successful authentication check.
type User struct {
	Principal  Principal
	RememberMe bool
}

// Name returns the name of the user's principal.
func (u *User) Name() string {
	if u == nil || u.Principal == nil {
		return ""
	}
	return u.Principal.Name()
}

// Service authenticates requests and credentials.
//
// CheckAuth and CheckAuthPassword return a nil User without error when
// no credentials are presented.
type Service interface {
	CheckAuth(ctx context.Context, r *http.Request) (*User, error)
	CheckAuthPassword(ctx context.Context, username, password string, rememberMe bool) (*User, error)
	ShowLogin(ctx context.Context, w http.ResponseWriter, r *http.Request) error
	Authenticate(ctx context.Context, username, password string) (Principal, error)
}

// Constructor creates a Service.
type Constructor func() (Service, error)

// Registry maps service identifiers to constructors. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ctors: map[string]Constructor{}}
}

// Register binds id to c, replacing any previous binding.
func (r *Registry) Register(id string, c Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[id] = c
}

// Lookup returns the constructor registered for id.
func (r *Registry) Lookup(id string) (Constructor, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.ctors[id]
	return c, ok
}

// IDs returns the registered identifiers, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]string, 0, len(r.ctors))
	for id := range r.ctors {
		res = append(res, id)
	}
	sort.Strings(res)
	return res
}
