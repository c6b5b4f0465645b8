// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package gitx

import (
	"context"
	"fmt"
	"sort"

	git "github.com/go-git/go-git/v5"
)

// goGit implements [Repo] in-process through go-git.
type goGit struct {
	wt   *git.Worktree
	root string
}

func openGoGit(dir string) (*goGit, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %q: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	return &goGit{wt: wt, root: wt.Filesystem.Root()}, nil
}

func (g *goGit) Root() string { return g.root }

func (g *goGit) Dirty(ctx context.Context) (bool, error) {
	files, err := g.ChangedFiles(ctx)
	if err != nil {
		return false, err
	}
	return len(files) > 0, nil
}

// ChangedFiles lists files whose working tree contents differ from the
// index. Untracked files are ignored, matching what "git diff" reports.
func (g *goGit) ChangedFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	status, err := g.wt.Status()
	if err != nil {
		return nil, err
	}
	var files []string
	for path, st := range status {
		if st.Worktree == git.Unmodified || st.Worktree == git.Untracked {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}
