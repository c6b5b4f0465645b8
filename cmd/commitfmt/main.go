// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/commitfmt/internal/cli"
	"go.astrophena.name/commitfmt/internal/config"
	"go.astrophena.name/commitfmt/internal/eol"
	"go.astrophena.name/commitfmt/internal/execx"
	"go.astrophena.name/commitfmt/internal/gitx"
	"go.astrophena.name/commitfmt/internal/hook"
	"go.astrophena.name/commitfmt/internal/logger"
	"go.astrophena.name/commitfmt/internal/pyfmt"
)

const hookShellScript = `#!/bin/sh
echo "==> Running pre-commit check..."
exec commitfmt
`

func main() { cli.Main(new(app)) }

type app struct {
	dir     string
	install bool
	list    bool
	verbose bool

	exec execx.Executor // nil outside of tests
}

func (a *app) Flags(f *flag.FlagSet) {
	f.StringVar(&a.dir, "C", ".", "Run as if started in `dir`.")
	f.BoolVar(&a.install, "install", false, "Install the Git hook and exit.")
	f.BoolVar(&a.list, "list", false, "Print the resolved steps and exit.")
	f.BoolVar(&a.verbose, "verbose", false, "Enable debug logging.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	ctx = logger.Put(ctx, logger.Setup(env.Stderr, a.verbose, env.Getenv, env.IsTerminal()))

	exe := a.exec
	if exe == nil {
		exe = execx.Real{}
	}

	root, err := gitx.FindRoot(ctx, exe, a.dir)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	isCI := env.Getenv("CI") == "true"

	if a.install {
		return installHook(root, true)
	}
	if !isCI {
		if err := installHook(root, false); err != nil {
			logger.Warn(ctx, "installing hook", slog.Any("err", err))
		}
	}

	repo, err := gitx.Open(ctx, exe, root, cfg.Engine)
	if err != nil {
		return err
	}

	steps := buildSteps(exe, repo.Root(), cfg, isCI)

	if a.list {
		for _, s := range steps {
			fmt.Fprintln(env.Stdout, s.Name())
		}
		return nil
	}

	r := &hook.Runner{Repo: repo, Steps: steps}
	return r.Run(ctx)
}

func buildSteps(exe execx.Executor, root string, cfg *config.Config, isCI bool) []hook.Step {
	steps := []hook.Step{
		hook.NewStep("normalize line endings", func(ctx context.Context) error {
			res, err := eol.Normalize(ctx, root, eol.Options{
				Exclude: cfg.Exclude,
				Workers: cfg.Workers,
			})
			if err != nil {
				return err
			}
			logger.Debug(ctx, "normalized line endings",
				slog.Int("converted", len(res.Converted)),
				slog.Int("unchanged", res.Unchanged),
				slog.Int("binary", res.Binary))
			for path, ferr := range res.Errors {
				logger.Warn(ctx, "normalization failed",
					slog.String("path", path),
					slog.Any("err", ferr))
			}
			return nil
		}),
		&pyfmt.Step{Exec: exe, Root: root, Argv: cfg.Formatter},
	}
	for _, check := range cfg.Checks {
		if isCI && check.SkipInCI {
			continue
		}
		if !isCI && check.OnlyInCI {
			continue
		}
		steps = append(steps, &hook.CommandStep{Exec: exe, Dir: root, Argv: check.Run})
	}
	return steps
}

// installHook writes the pre-commit hook script. Without force an already
// installed hook, whatever its contents, is left alone.
func installHook(root string, force bool) error {
	hookPath := filepath.Join(root, ".git", "hooks", "pre-commit")
	if !force {
		_, err := os.Stat(hookPath)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(hookPath, []byte(hookShellScript), 0o755)
}
