// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package gitx

import (
	"context"
	"strings"

	"go.astrophena.name/commitfmt/internal/execx"
)

// execGit implements [Repo] by shelling out to the git binary.
type execGit struct {
	exec execx.Executor
	root string
}

func (g *execGit) Root() string { return g.root }

// Dirty runs "git diff --quiet" and inspects only its exit status: success
// means a clean tree, any failure means differences exist. This mirrors the
// classic hook, which never told a diff failure apart from a dirty tree.
func (g *execGit) Dirty(ctx context.Context) (bool, error) {
	_, err := g.exec.Output(ctx, g.root, "git", "diff", "--quiet")
	return err != nil, nil
}

func (g *execGit) ChangedFiles(ctx context.Context) ([]string, error) {
	out, err := g.exec.Output(ctx, g.root, "git", "diff", "--name-only")
	if err != nil {
		return nil, err
	}
	var files []string
	for line := range strings.Lines(string(out)) {
		if name := strings.TrimSpace(line); name != "" {
			files = append(files, name)
		}
	}
	return files, nil
}
