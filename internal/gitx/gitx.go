// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package gitx provides the hook's view of the surrounding Git repository:
// root discovery, the working tree cleanliness check and the list of
// changed files.
//
// Two engines implement the same interface. The default one shells out to
// the git binary; the other works in-process through go-git, for hosts
// where no git binary is on PATH.
package gitx

import (
	"context"
	"fmt"
	"strings"

	"go.astrophena.name/commitfmt/internal/execx"
)

// Engine names accepted by [Open].
const (
	EngineGit   = "git"
	EngineGoGit = "gogit"
)

// Repo is a Git repository as seen by the hook.
type Repo interface {
	// Root returns the absolute path of the repository root.
	Root() string

	// Dirty reports whether the working tree differs from the index.
	Dirty(ctx context.Context) (bool, error)

	// ChangedFiles lists files that differ from the index, relative to
	// the root.
	ChangedFiles(ctx context.Context) ([]string, error)
}

// Open discovers the repository containing dir and returns the requested
// engine for it.
func Open(ctx context.Context, exec execx.Executor, dir, engine string) (Repo, error) {
	switch engine {
	case EngineGit:
		root, err := execGitRoot(ctx, exec, dir)
		if err != nil {
			return nil, err
		}
		return &execGit{exec: exec, root: root}, nil
	case EngineGoGit:
		return openGoGit(dir)
	default:
		return nil, fmt.Errorf("unknown repository engine %q", engine)
	}
}

// FindRoot locates the root of the repository containing dir. It asks the
// git binary first and falls back to in-process discovery when the binary
// is unavailable.
func FindRoot(ctx context.Context, exec execx.Executor, dir string) (string, error) {
	root, err := execGitRoot(ctx, exec, dir)
	if err == nil {
		return root, nil
	}
	r, gerr := openGoGit(dir)
	if gerr != nil {
		return "", fmt.Errorf("locating repository root: %w", err)
	}
	return r.Root(), nil
}

func execGitRoot(ctx context.Context, exec execx.Executor, dir string) (string, error) {
	out, err := exec.Output(ctx, dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("git rev-parse --show-toplevel: %w", err)
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", fmt.Errorf("git rev-parse --show-toplevel returned nothing for %q", dir)
	}
	return root, nil
}
