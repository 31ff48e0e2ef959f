package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/signadot/wikistream/debug"
)

// DefaultRealm is the basic auth realm announced by ShowLogin.
const DefaultRealm = "wikistream"

// RememberMeHeader, when set to a true value on a request, asks
// CheckAuth to remember the user.
const RememberMeHeader = "X-Remember-Me"

type principal string

func (p principal) Name() string { return string(p) }

// Standard authenticates HTTP basic credentials against bcrypt hashes.
type Standard struct {
	mu     sync.RWMutex
	hashes map[string][]byte
	cost   int
	realm  string
}

// NewStandard returns a Standard service without users. A cost <= 0
// uses bcrypt.DefaultCost.
func NewStandard(cost int) *Standard {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Standard{hashes: map[string][]byte{}, cost: cost, realm: DefaultRealm}
}

// WithRealm sets the realm announced by ShowLogin.
func (s *Standard) WithRealm(realm string) *Standard {
	s.realm = realm
	return s
}

// AddUser hashes password and stores it for username.
func (s *Standard) AddUser(username, password string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("could not hash password for %q: %w", username, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[username] = h
	return nil
}

// SetHash stores an existing bcrypt hash for username.
func (s *Standard) SetHash(username, hash string) error {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("invalid hash for %q: %w", username, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[username] = []byte(hash)
	return nil
}

func (s *Standard) CheckAuth(ctx context.Context, r *http.Request) (*User, error) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, nil
	}
	remember, _ := strconv.ParseBool(r.Header.Get(RememberMeHeader))
	return s.CheckAuthPassword(ctx, username, password, remember)
}

func (s *Standard) CheckAuthPassword(ctx context.Context, username, password string, rememberMe bool) (*User, error) {
	if username == "" {
		return nil, nil
	}
	p, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return &User{Principal: p, RememberMe: rememberMe}, nil
}

// ShowLogin asks the client for basic credentials.
func (s *Standard) ShowLogin(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.Header().Set("WWW-Authenticate", "Basic realm="+strconv.Quote(s.realm))
	w.WriteHeader(http.StatusUnauthorized)
	return nil
}

func (s *Standard) Authenticate(ctx context.Context, username, password string) (Principal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	h, ok := s.hashes[username]
	s.mu.RUnlock()
	if !ok {
		if debug.Auth() {
			debug.Logf("auth: unknown user %q\n", username)
		}
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(h, []byte(password)); err != nil {
		if debug.Auth() {
			debug.Logf("auth: password mismatch for %q\n", username)
		}
		return nil, ErrBadCredentials
	}
	return principal(username), nil
}
