package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/wikistream/auth"
)

func authMain(cfg *AuthConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Auth.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: auth requires 1 arg, a user name", cli.ErrUsage)
	}
	fc, err := cfg.fileConfig()
	if err != nil {
		return err
	}
	ac := fc.Auth
	if cfg.Service != "" {
		ac.Service = cfg.Service
	}
	svc, err := authService(ac, authRegistry(ac), theLog)
	if err != nil {
		return err
	}
	password, err := readPassword(cc.In)
	if err != nil {
		return err
	}
	sc := newStatusColors(cfg.colors(cc.Out))
	ok, err := checkUser(cfg.context(), svc, args[0], password)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(cc.Out, "%s %s\n", sc.fail.Sprint("denied"), args[0])
		return cli.ExitCodeErr(1)
	}
	fmt.Fprintf(cc.Out, "%s %s\n", sc.ok.Sprint("ok"), args[0])
	return nil
}

// authRegistry returns the services selectable with auth.service.
func authRegistry(ac AuthFileConfig) *auth.Registry {
	reg := auth.NewRegistry()
	if ac.HTPasswd != "" {
		reg.Register(auth.HTPasswdID, auth.HTPasswd(ac.HTPasswd, ac.Realm))
	}
	return reg
}

// authService builds the standard service from the configured users and
// resolves the configured service against reg.
func authService(ac AuthFileConfig, reg *auth.Registry, logger *slog.Logger) (*auth.Proxy, error) {
	std := auth.NewStandard(0)
	if ac.Realm != "" {
		std.WithRealm(ac.Realm)
	}
	for user, hash := range ac.Users {
		if err := std.SetHash(user, hash); err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	return auth.NewProxy(ac.Config, reg, std, logger)
}

func checkUser(ctx context.Context, svc auth.Service, user, password string) (bool, error) {
	_, err := svc.Authenticate(ctx, user, password)
	if errors.Is(err, auth.ErrBadCredentials) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
