package main

import (
	"context"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/wikistream/filter"
	"github.com/signadot/wikistream/xmlin"
	"github.com/signadot/wikistream/xmlout"
	"github.com/signadot/wikistream/yamlout"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	sink, out, err := cfg.start(cc.Out)
	if err != nil {
		return err
	}
	n := 0
	err = eachInput(cc, args, func(name string, r io.Reader) error {
		if err := readValidated(cfg.context(), r, sink); err != nil {
			return fmt.Errorf("error converting %s: %w", name, err)
		}
		n++
		return nil
	})
	if cerr := out.finish(err == nil); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	theLog.Info("converted", "inputs", n, "format", cfg.format())
	return nil
}

func (cfg *ConvertConfig) format() string {
	if cfg.Format == "" {
		return "xml"
	}
	return cfg.Format
}

// start compiles the filters and then opens the output, so that an
// invalid -where never creates the output file.
func (cfg *ConvertConfig) start(w io.Writer) (filter.Filter, output, error) {
	fwd := &forward{}
	sink, err := cfg.pipeline(fwd)
	if err != nil {
		return nil, nil, err
	}
	out, err := cfg.output(w)
	if err != nil {
		return nil, nil, err
	}
	fwd.Filter = out
	return sink, out, nil
}

// forward passes events to a filter bound after construction.
type forward struct {
	filter.Filter
}

// pipeline puts the -where and -guid filters in front of f.
func (cfg *ConvertConfig) pipeline(f filter.Filter) (filter.Filter, error) {
	if cfg.GUID {
		f = filter.AssignGUIDs(f)
	}
	if cfg.Where != "" {
		sel, err := filter.NewSelect(f, cfg.Where)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid -where: %w", cli.ErrUsage, err)
		}
		f = sel
	}
	return f, nil
}

// readValidated reads one stream into f through a Validator.
func readValidated(ctx context.Context, r io.Reader, f filter.Filter) error {
	v := filter.NewValidator(f)
	if err := xmlin.Read(ctx, r, v); err != nil {
		return err
	}
	return v.Close()
}

// output is the filter end of a conversion.
type output interface {
	filter.Filter
	// finish completes the output; ok is false when the conversion
	// failed and only resources should be released.
	finish(ok bool) error
}

func (cfg *ConvertConfig) output(w io.Writer) (output, error) {
	switch cfg.format() {
	case "xml":
		props, err := cfg.properties(w)
		if err != nil {
			return nil, err
		}
		xw, err := xmlout.NewWriterProperties(props)
		if err != nil {
			return nil, err
		}
		fw := xmlout.NewFilterWriter(xw)
		if err := fw.Begin(); err != nil {
			xw.Close()
			return nil, err
		}
		return &xmlOutput{FilterWriter: fw}, nil
	case "yaml":
		return &yamlOutput{Writer: yamlout.NewWriter(w)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q, expected xml or yaml", cli.ErrUsage, cfg.Format)
	}
}

type xmlOutput struct {
	*xmlout.FilterWriter
}

func (x *xmlOutput) finish(ok bool) error {
	w := x.Writer()
	if !ok {
		w.Close()
		return nil
	}
	if err := x.End(); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

type yamlOutput struct {
	*yamlout.Writer
}

func (y *yamlOutput) finish(bool) error {
	return nil
}
