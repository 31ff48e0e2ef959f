package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/scott-cotton/cli"

	"github.com/signadot/wikistream/news"
)

func newsMain(cfg *NewsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.News.Parse(cc, args)
	if err != nil {
		return err
	}
	hint := news.XWikiOrgBlogHint
	switch len(args) {
	case 0:
	case 1:
		hint = args[0]
	default:
		return fmt.Errorf("%w: news takes at most one hint, got %v", cli.ErrUsage, args)
	}
	fc, err := cfg.fileConfig()
	if err != nil {
		return err
	}
	timeout, err := fc.News.timeout()
	if err != nil {
		return fmt.Errorf("%w: invalid news timeout: %w", cli.ErrUsage, err)
	}
	reg := news.DefaultRegistry(news.HTTPFetcher{Client: &http.Client{Timeout: timeout}})
	return listNews(cfg.context(), cc.Out, reg, hint, cfg.Limit)
}

func listNews(ctx context.Context, w io.Writer, reg *news.Registry, hint string, limit int) error {
	src, err := reg.Create(hint)
	if err != nil {
		return fmt.Errorf("%w: %w (known: %v)", cli.ErrUsage, err, reg.Hints())
	}
	items, err := src.Items(ctx)
	if err != nil {
		return err
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	for _, it := range items {
		date := "-"
		if !it.Published.IsZero() {
			date = it.Published.Format("2006-01-02")
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", date, it.Title, it.Link); err != nil {
			return err
		}
	}
	return nil
}
