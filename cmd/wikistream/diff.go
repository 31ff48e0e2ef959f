package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	listings := make([]string, 2)
	for i, arg := range args {
		err := withInput(cc, arg, func(name string, r io.Reader) error {
			l, err := listing(cfg.context(), r)
			if err != nil {
				return fmt.Errorf("error reading %s: %w", name, err)
			}
			listings[i] = l
			return nil
		})
		if err != nil {
			return err
		}
	}
	differs, err := diffListings(cc.Out, listings[0], listings[1], cfg.colors(cc.Out))
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func listing(ctx context.Context, r io.Reader) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := listEvents(ctx, buf, r, true); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// diffListings writes a line diff of a and b to w, prefixing removed
// lines with '-' and added lines with '+'. Unchanged lines are not
// written.
func diffListings(w io.Writer, a, b string, colors bool) (bool, error) {
	if a == b {
		return false, nil
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	if colors {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}
	for _, d := range diffs {
		var (
			prefix string
			c      *color.Color
		)
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, c = "-", del
		case diffpatch.DiffInsert:
			prefix, c = "+", ins
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if _, err := io.WriteString(w, c.Sprint(prefix+strings.TrimSuffix(line, "\n"))+"\n"); err != nil {
				return true, err
			}
		}
	}
	return true, nil
}
