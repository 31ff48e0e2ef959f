package auth

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/crypto/bcrypt"

	"github.com/signadot/wikistream"
)

func newStandard(t *testing.T) *Standard {
	t.Helper()
	s := NewStandard(bcrypt.MinCost)
	if err := s.AddUser("Admin", "admin"); err != nil {
		t.Fatal(err)
	}
	return s
}

type named struct {
	Standard
	id string
}

func TestProxyResolve(t *testing.T) {
	std := newStandard(t)
	ldap := &named{id: "ldap"}
	reg := NewRegistry()
	reg.Register("ldap", func() (Service, error) { return ldap, nil })
	reg.Register("broken", func() (Service, error) { return nil, errors.New("no ldap server") })

	tests := []struct {
		name    string
		id      string
		want    Service
		wantID  string
		wantErr error
		warn    bool
	}{
		{name: "empty", id: "", want: std},
		{name: "registered", id: "ldap", want: ldap, wantID: "ldap"},
		{name: "unknown", id: "oidc", want: std, warn: true},
		{name: "constructor failure", id: "broken", wantErr: wikistream.ErrInitialization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			p, err := NewProxy(Config{Service: tt.id}, reg, std, logger)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Service() != tt.want {
				t.Errorf("resolved wrong service")
			}
			if p.ID() != tt.wantID {
				t.Errorf("expected id %q, got %q", tt.wantID, p.ID())
			}
			logged := buf.String()
			if tt.warn {
				if !strings.Contains(logged, "level=WARN") || !strings.Contains(logged, "id="+tt.id) {
					t.Errorf("expected warning naming %q, got %q", tt.id, logged)
				}
			} else if logged != "" {
				t.Errorf("unexpected log output %q", logged)
			}
		})
	}
}

func TestProxyNoStandard(t *testing.T) {
	_, err := NewProxy(Config{}, NewRegistry(), nil, nil)
	if !errors.Is(err, wikistream.ErrInitialization) {
		t.Errorf("expected initialization failure, got %v", err)
	}
}

func TestProxyForwards(t *testing.T) {
	ctx := context.Background()
	p, err := NewProxy(Config{}, nil, newStandard(t), nil)
	if err != nil {
		t.Fatal(err)
	}

	pr, err := p.Authenticate(ctx, "Admin", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pr.Name() != "Admin" {
		t.Errorf("expected Admin, got %q", pr.Name())
	}
	if _, err := p.Authenticate(ctx, "Admin", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("expected bad credentials, got %v", err)
	}
	if _, err := p.Authenticate(ctx, "Nobody", "admin"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("expected bad credentials, got %v", err)
	}

	u, err := p.CheckAuthPassword(ctx, "Admin", "admin", true)
	if err != nil {
		t.Fatal(err)
	}
	if u.Name() != "Admin" || !u.RememberMe {
		t.Errorf("unexpected user %+v", u)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	u, err = p.CheckAuth(ctx, r)
	if err != nil || u != nil {
		t.Errorf("expected guest, got %v, %v", u, err)
	}
	r.SetBasicAuth("Admin", "admin")
	u, err = p.CheckAuth(ctx, r)
	if err != nil {
		t.Fatal(err)
	}
	if u.Name() != "Admin" || u.RememberMe {
		t.Errorf("unexpected user %+v", u)
	}

	rec := httptest.NewRecorder()
	if err := p.ShowLogin(ctx, rec, r); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != `Basic realm="wikistream"` {
		t.Errorf("unexpected challenge %q", got)
	}
}

func TestStandardSetHash(t *testing.T) {
	s := NewStandard(0)
	if err := s.SetHash("u", "not a hash"); err == nil {
		t.Error("expected error for invalid hash")
	}
	h, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetHash("u", string(h)); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := s.Authenticate(ctx, "u", "pw"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	cancel()
	if _, err := s.Authenticate(ctx, "u", "pw"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRegistryIDs(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []string{"oidc", "ldap", "cas"} {
		reg.Register(id, func() (Service, error) { return NewStandard(0), nil })
	}
	if diff := cmp.Diff([]string{"cas", "ldap", "oidc"}, reg.IDs()); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
}
