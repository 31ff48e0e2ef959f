package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "wikistream").
		WithSynopsis("wikistream [opts] command [opts]").
		WithDescription("wikistream is a tool for working with XML wiki streams.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return wsMain(cfg, cc, args)
		}).
		WithSubs(
			ConvertCommand(cfg),
			ValidateCommand(cfg),
			EventsCommand(cfg),
			DiffCommand(cfg),
			NewsCommand(cfg),
			AuthCommand(cfg))
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithAliases("c", "conv").
		WithSynopsis("convert [-f xml|yaml] [-where expr] [-guid] [files]").
		WithDescription(convertDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
}

const convertDescription = `convert reads XML wiki streams and writes them as a single stream.

Each input is validated while it is read. With -where, only wiki objects
for which the expression is true are kept, together with everything nested
in them. The expression sees the object parameters by name and the object
name as 'name', for example

  object_class_reference == "XWiki.TagClass" && object_number > 0

With -guid, objects without an object_guid parameter get a random one.

The xml section of the -c configuration file sets the output encoding,
version and formatting; -enc and -pretty override it.`

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("v", "val").
		WithSynopsis("validate [files]").
		WithDescription("check that XML wiki streams are well formed and properly nested").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
}

func EventsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EventsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Events, "events").
		WithAliases("e", "ev").
		WithSynopsis("events [files]").
		WithDescription("list the filter events of XML wiki streams, one per line").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return events(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff a.xml b.xml").
		WithDescription("diff the events of two XML wiki streams, exiting 1 when they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func NewsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NewsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.News, "news").
		WithSynopsis("news [-n limit] [hint]").
		WithDescription("list the items of a news source, xwikiorgblog by default").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return newsMain(cfg, cc, args)
		})
}

func AuthCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AuthConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Auth, "auth").
		WithSynopsis("auth [-service id] user < password").
		WithDescription("check a password read from stdin against the configured users").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return authMain(cfg, cc, args)
		})
}
