package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/signadot/wikistream"
	"github.com/signadot/wikistream/debug"
)

// Config selects the authentication service.
type Config struct {
	// Service is the identifier of the service to use; empty means the
	// standard one.
	Service string `yaml:"service"`
}

// Proxy forwards every call to the service selected at construction.
type Proxy struct {
	id  string
	svc Service
}

// NewProxy resolves cfg.Service against reg. A nil logger uses
// slog.Default().
func NewProxy(cfg Config, reg *Registry, standard Service, logger *slog.Logger) (*Proxy, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if standard == nil {
		return nil, wikistream.InitializationFailure("failed to create authentication service", fmt.Errorf("no standard service"))
	}
	id := cfg.Service
	if id == "" {
		return &Proxy{svc: standard}, nil
	}
	ctor, ok := reg.Lookup(id)
	if !ok {
		logger.Warn("No authentication service could be found for identifier, falling back on the standard one",
			"id", id)
		return &Proxy{svc: standard}, nil
	}
	svc, err := ctor()
	if err != nil {
		return nil, wikistream.InitializationFailure(fmt.Sprintf("failed to create authentication service %q", id), err)
	}
	if debug.Auth() {
		debug.Logf("auth: using service %q\n", id)
	}
	return &Proxy{id: id, svc: svc}, nil
}

// ID returns the identifier of the resolved service, or "" for the
// standard service.
func (p *Proxy) ID() string {
	return p.id
}

// Service returns the resolved service.
func (p *Proxy) Service() Service {
	return p.svc
}

func (p *Proxy) CheckAuth(ctx context.Context, r *http.Request) (*User, error) {
	return p.svc.CheckAuth(ctx, r)
}

func (p *Proxy) CheckAuthPassword(ctx context.Context, username, password string, rememberMe bool) (*User, error) {
	return p.svc.CheckAuthPassword(ctx, username, password, rememberMe)
}

func (p *Proxy) ShowLogin(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return p.svc.ShowLogin(ctx, w, r)
}

func (p *Proxy) Authenticate(ctx context.Context, username, password string) (Principal, error) {
	return p.svc.Authenticate(ctx, username, password)
}
