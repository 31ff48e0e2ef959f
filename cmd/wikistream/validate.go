package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/signadot/wikistream/filter"
)

type statusColors struct {
	ok, fail *color.Color
}

func newStatusColors(on bool) *statusColors {
	res := &statusColors{
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
	}
	if on {
		res.ok.EnableColor()
		res.fail.EnableColor()
	} else {
		res.ok.DisableColor()
		res.fail.DisableColor()
	}
	return res
}

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	sc := newStatusColors(cfg.colors(cc.Out))
	failed := 0
	err = eachInput(cc, args, func(name string, r io.Reader) error {
		ok, err := validateOne(cfg.context(), cc.Out, sc, cfg.Quiet, name, r)
		if !ok {
			failed++
		}
		return err
	})
	if err != nil {
		return err
	}
	if failed != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// validateOne reports on w whether the stream r is valid. The error is
// only set when the report cannot be written.
func validateOne(ctx context.Context, w io.Writer, sc *statusColors, quiet bool, name string, r io.Reader) (bool, error) {
	n := &counter{Filter: filter.Discard}
	err := readValidated(ctx, r, n)
	if err != nil {
		_, werr := fmt.Fprintf(w, "%s %s: %v\n", sc.fail.Sprint("FAIL"), name, err)
		return false, werr
	}
	if quiet {
		return true, nil
	}
	_, werr := fmt.Fprintf(w, "%s %s (%d events)\n", sc.ok.Sprint("ok"), name, n.n)
	return true, werr
}

// counter counts the events passing through it.
type counter struct {
	filter.Filter
	n int
}

func (c *counter) BeginWikiDocument(name string, params *filter.Parameters) error {
	c.n++
	return c.Filter.BeginWikiDocument(name, params)
}

func (c *counter) EndWikiDocument(name string, params *filter.Parameters) error {
	c.n++
	return c.Filter.EndWikiDocument(name, params)
}

func (c *counter) BeginWikiObject(name string, params *filter.Parameters) error {
	c.n++
	return c.Filter.BeginWikiObject(name, params)
}

func (c *counter) EndWikiObject(name string, params *filter.Parameters) error {
	c.n++
	return c.Filter.EndWikiObject(name, params)
}

func (c *counter) OnWikiObjectProperty(name string, value any, params *filter.Parameters) error {
	c.n++
	return c.Filter.OnWikiObjectProperty(name, value, params)
}
