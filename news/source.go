// Package news provides news sources created by factories registered
// under a hint.
package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/signadot/wikistream"
)

// Item is one news entry.
type Item struct {
	Title       string
	Link        string
	Description string
	Author      string
	Categories  []string
	Published   time.Time
}

// Source provides news items.
type Source interface {
	Items(ctx context.Context) ([]Item, error)
}

// Factory creates a Source.
type Factory interface {
	Create() Source
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func() Source

func (f FactoryFunc) Create() Source { return f() }

// Fetcher retrieves the document at url. The caller closes the result.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPFetcher fetches over HTTP with Client, or http.DefaultClient when
// nil.
type HTTPFetcher struct {
	Client *http.Client
}

func (h HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c := h.Client
	if c == nil {
		c = http.DefaultClient
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return resp.Body, nil
}

// Registry maps hints to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// DefaultRegistry returns a Registry holding the built in factories,
// fetching with f.
func DefaultRegistry(f Fetcher) *Registry {
	r := NewRegistry()
	r.Register(XWikiOrgBlogHint, &XWikiOrgBlogFactory{Fetcher: f})
	return r
}

// Register binds hint to f, replacing any previous binding.
func (r *Registry) Register(hint string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[hint] = f
}

// Lookup returns the factory registered for hint.
func (r *Registry) Lookup(hint string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[hint]
	return f, ok
}

// Create returns a new Source from the factory registered for hint.
func (r *Registry) Create(hint string) (Source, error) {
	f, ok := r.Lookup(hint)
	if !ok {
		return nil, wikistream.InitializationFailure("failed to create news source", fmt.Errorf("no factory for hint %q", hint))
	}
	return f.Create(), nil
}

// Hints returns the registered hints, sorted.
func (r *Registry) Hints() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]string, 0, len(r.factories))
	for h := range r.factories {
		res = append(res, h)
	}
	sort.Strings(res)
	return res
}
