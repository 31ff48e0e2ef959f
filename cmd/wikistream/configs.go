package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/wikistream/auth"
	"github.com/signadot/wikistream/xmlout"
)

// FileConfig is the content of the -c configuration file.
//
//	xml:
//	  encoding: iso-8859-1
//	  format: true
//	auth:
//	  service: htpasswd
//	  htpasswd: /etc/wikistream/htpasswd
//	  realm: Private Wiki
//	  users:
//	    Admin: $2a$10$...
//	news:
//	  timeout: 10s
type FileConfig struct {
	XML  xmlout.Properties `yaml:"xml"`
	Auth AuthFileConfig    `yaml:"auth"`
	News NewsFileConfig    `yaml:"news"`
}

type AuthFileConfig struct {
	auth.Config `yaml:",inline"`

	// Users maps user names to bcrypt hashes.
	Users map[string]string `yaml:"users"`
	// HTPasswd is the file read by the htpasswd service.
	HTPasswd string `yaml:"htpasswd"`
	// Realm replaces the default basic auth realm.
	Realm string `yaml:"realm"`
}

type NewsFileConfig struct {
	Timeout string `yaml:"timeout"`
}

func (n *NewsFileConfig) timeout() (time.Duration, error) {
	if n.Timeout == "" {
		return 30 * time.Second, nil
	}
	return time.ParseDuration(n.Timeout)
}

func loadFileConfig(path string) (*FileConfig, error) {
	res := &FileConfig{}
	if path == "" {
		return res, nil
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(d, res); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return res, nil
}

type MainConfig struct {
	Color  bool   `cli:"name=color desc='color status output'"`
	Config string `cli:"name=c aliases=config desc='yaml configuration file'"`

	Out      string
	CloseOut func() error

	Main *cli.Command

	ctx  context.Context
	file *FileConfig
}

func (cfg *MainConfig) context() context.Context {
	if cfg.ctx == nil {
		return context.Background()
	}
	return cfg.ctx
}

// fileConfig loads the -c file once.
func (cfg *MainConfig) fileConfig() (*FileConfig, error) {
	if cfg.file != nil {
		return cfg.file, nil
	}
	f, err := loadFileConfig(cfg.Config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.file = f
	return f, nil
}

// colors reports whether status output to w is colored: -color forces
// it, otherwise it is on when w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	colorsSet := false
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			colorsSet = opt.Value != nil
			break
		}
	}
	if colorsSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type ConvertConfig struct {
	*MainConfig

	Format   string `cli:"name=f aliases=format desc='output format: xml or yaml'"`
	Where    string `cli:"name=where desc='keep objects for which the expression is true'"`
	GUID     bool   `cli:"name=guid desc='assign missing object guids'"`
	Pretty   bool   `cli:"name=pretty desc='indent xml output'"`
	Encoding string `cli:"name=enc desc='xml output encoding'"`

	Convert *cli.Command
}

// properties merges the configured xml properties with the command
// options.
func (cfg *ConvertConfig) properties(w io.Writer) (*xmlout.Properties, error) {
	fc, err := cfg.fileConfig()
	if err != nil {
		return nil, err
	}
	props := fc.XML
	if cfg.Pretty {
		props.Format = true
	}
	if cfg.Encoding != "" {
		props.Encoding = cfg.Encoding
	}
	if cfg.Out != "" || props.Path == "" {
		props.Target = w
	}
	return &props, nil
}

type ValidateConfig struct {
	*MainConfig

	Quiet bool `cli:"name=q desc='only report failures'"`

	Validate *cli.Command
}

type EventsConfig struct {
	*MainConfig

	Indent bool `cli:"name=i desc='indent events by depth'"`

	Events *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type NewsConfig struct {
	*MainConfig

	Limit int `cli:"name=n desc='max number of items'"`

	News *cli.Command
}

type AuthConfig struct {
	*MainConfig

	Service string `cli:"name=service desc='authentication service identifier'"`

	Auth *cli.Command
}
