package news

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/wikistream"
)

const feed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>XWiki Blog</title>
    <item>
      <title> XWiki 15.1 Released </title>
      <link>https://www.xwiki.org/xwiki/bin/view/Blog/XWiki151</link>
      <description>&lt;p&gt;New release&lt;/p&gt;</description>
      <dc:creator>XWiki.VincentMassol</dc:creator>
      <category>Releases</category>
      <category>News</category>
      <pubDate>Mon, 20 Feb 2023 10:00:00 +0100</pubDate>
    </item>
    <item>
      <title>Undated</title>
      <author>team@xwiki.org</author>
      <pubDate>sometime</pubDate>
    </item>
  </channel>
</rss>`

type fetcher struct {
	body string
	err  error
	urls []string
}

func (f *fetcher) Fetch(_ context.Context, url string) (io.ReadCloser, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func TestXWikiOrgBlog(t *testing.T) {
	f := &fetcher{body: feed}
	reg := DefaultRegistry(f)
	src, err := reg.Create(XWikiOrgBlogHint)
	if err != nil {
		t.Fatal(err)
	}
	items, err := src.Items(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{XWikiOrgBlogURL}, f.urls); diff != "" {
		t.Errorf("fetched urls (-want +got):\n%s", diff)
	}
	want := []Item{
		{
			Title:       "XWiki 15.1 Released",
			Link:        "https://www.xwiki.org/xwiki/bin/view/Blog/XWiki151",
			Description: "<p>New release</p>",
			Author:      "XWiki.VincentMassol",
			Categories:  []string{"Releases", "News"},
			Published:   time.Date(2023, 2, 20, 9, 0, 0, 0, time.UTC),
		},
		{
			Title:  "Undated",
			Author: "team@xwiki.org",
		},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
}

func TestXWikiOrgBlogURL(t *testing.T) {
	src := (&XWikiOrgBlogFactory{}).Create().(*RSSSource)
	if src.URL != "https://www.xwiki.org/xwiki/bin/view/Blog/BlogRss?xpage=plain" {
		t.Errorf("unexpected url %q", src.URL)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Create("missing"); !errors.Is(err, wikistream.ErrInitialization) {
		t.Errorf("expected initialization failure, got %v", err)
	}
	reg.Register("static", FactoryFunc(func() Source { return &RSSSource{URL: "x"} }))
	reg.Register(XWikiOrgBlogHint, &XWikiOrgBlogFactory{})
	if diff := cmp.Diff([]string{"static", XWikiOrgBlogHint}, reg.Hints()); diff != "" {
		t.Errorf("hints (-want +got):\n%s", diff)
	}
}

func TestItemsErrors(t *testing.T) {
	boom := errors.New("offline")
	src := &RSSSource{URL: "u", Fetcher: &fetcher{err: boom}}
	_, err := src.Items(context.Background())
	if !errors.Is(err, wikistream.ErrRead) || !errors.Is(err, boom) {
		t.Errorf("expected read failure wrapping cause, got %v", err)
	}
	src = &RSSSource{URL: "u", Fetcher: &fetcher{body: "<rss><channel>"}}
	if _, err := src.Items(context.Background()); !errors.Is(err, wikistream.ErrRead) {
		t.Errorf("expected read failure, got %v", err)
	}
	src = &RSSSource{URL: "u", Fetcher: &fetcher{body: "<feed/>"}}
	if _, err := src.Items(context.Background()); !errors.Is(err, wikistream.ErrRead) {
		t.Errorf("expected read failure for non rss root, got %v", err)
	}
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		io.WriteString(w, feed)
	}))
	defer srv.Close()

	src := &RSSSource{URL: srv.URL + "/feed", Fetcher: HTTPFetcher{Client: srv.Client()}}
	items, err := src.Items(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
	src.URL = srv.URL + "/missing"
	if _, err := src.Items(context.Background()); !errors.Is(err, wikistream.ErrRead) {
		t.Errorf("expected read failure, got %v", err)
	}
}
