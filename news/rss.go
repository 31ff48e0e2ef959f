package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/signadot/wikistream"
)

const (
	// XWikiOrgBlogHint is the hint of the xwiki.org blog factory.
	XWikiOrgBlogHint = "xwikiorgblog"
	// XWikiOrgBlogURL is the RSS feed of the xwiki.org blog.
	XWikiOrgBlogURL = "https://www.xwiki.org/xwiki/bin/view/Blog/BlogRss?xpage=plain"
)

// XWikiOrgBlogFactory creates RSS sources for the xwiki.org blog.
type XWikiOrgBlogFactory struct {
	Fetcher Fetcher
}

func (f *XWikiOrgBlogFactory) Create() Source {
	return &RSSSource{URL: XWikiOrgBlogURL, Fetcher: f.Fetcher}
}

// RSSSource reads the items of an RSS 2.0 feed. A nil Fetcher uses
// HTTPFetcher.
type RSSSource struct {
	URL     string
	Fetcher Fetcher
}

func (s *RSSSource) Items(ctx context.Context) ([]Item, error) {
	f := s.Fetcher
	if f == nil {
		f = HTTPFetcher{}
	}
	rc, err := f.Fetch(ctx, s.URL)
	if err != nil {
		return nil, wikistream.ReadFailure(fmt.Sprintf("failed to fetch %s", s.URL), err)
	}
	defer rc.Close()
	return ParseRSS(rc)
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Author      string   `xml:"author"`
	Creator     string   `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate"`
	Date        string   `xml:"http://purl.org/dc/elements/1.1/ date"`
}

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC3339,
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseRSS reads the items of an RSS 2.0 document. Items keep feed
// order; dates that cannot be parsed are left zero.
func ParseRSS(r io.Reader) ([]Item, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(label)
		if err != nil {
			return nil, err
		}
		return enc.NewDecoder().Reader(input), nil
	}
	doc := &rssDoc{}
	if err := dec.Decode(doc); err != nil {
		return nil, wikistream.ReadFailure("failed to read RSS", err)
	}
	res := make([]Item, 0, len(doc.Channel.Items))
	for i := range doc.Channel.Items {
		ri := &doc.Channel.Items[i]
		it := Item{
			Title:       strings.TrimSpace(ri.Title),
			Link:        strings.TrimSpace(ri.Link),
			Description: strings.TrimSpace(ri.Description),
			Author:      strings.TrimSpace(ri.Author),
			Categories:  ri.Categories,
		}
		if it.Author == "" {
			it.Author = strings.TrimSpace(ri.Creator)
		}
		date := ri.PubDate
		if date == "" {
			date = ri.Date
		}
		it.Published = parseDate(date)
		res = append(res, it)
	}
	return res, nil
}
