package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/wikistream/filter"
)

func events(cfg *EventsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Events.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachInput(cc, args, func(name string, r io.Reader) error {
		if err := listEvents(cfg.context(), cc.Out, r, cfg.Indent); err != nil {
			return fmt.Errorf("error listing %s: %w", name, err)
		}
		return nil
	})
}

func listEvents(ctx context.Context, w io.Writer, r io.Reader, indent bool) error {
	return readValidated(ctx, r, &printer{w: w, indent: indent})
}

// printer writes one line per event.
type printer struct {
	w      io.Writer
	indent bool
	depth  int
}

func (p *printer) print(ev filter.Event) error {
	if ev.Type == filter.EventEnd {
		p.depth--
	}
	pre := ""
	if p.indent {
		pre = strings.Repeat("  ", p.depth)
	}
	if ev.Type == filter.EventBegin {
		p.depth++
	}
	_, err := fmt.Fprintf(p.w, "%s%s\n", pre, ev)
	return err
}

func (p *printer) BeginWikiDocument(name string, params *filter.Parameters) error {
	return p.print(filter.Event{Type: filter.EventBegin, Kind: filter.KindWikiDocument, Name: name, Params: params})
}

func (p *printer) EndWikiDocument(name string, params *filter.Parameters) error {
	return p.print(filter.Event{Type: filter.EventEnd, Kind: filter.KindWikiDocument, Name: name, Params: params})
}

func (p *printer) BeginWikiObject(name string, params *filter.Parameters) error {
	return p.print(filter.Event{Type: filter.EventBegin, Kind: filter.KindWikiObject, Name: name, Params: params})
}

func (p *printer) EndWikiObject(name string, params *filter.Parameters) error {
	return p.print(filter.Event{Type: filter.EventEnd, Kind: filter.KindWikiObject, Name: name, Params: params})
}

func (p *printer) OnWikiObjectProperty(name string, value any, params *filter.Parameters) error {
	return p.print(filter.Event{Type: filter.EventOn, Kind: filter.KindWikiObjectProperty, Name: name, Params: params, Value: value})
}
