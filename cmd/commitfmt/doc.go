// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Commitfmt is a Git pre-commit hook that keeps the working tree formatted.

On each run it:

 1. Rewrites Windows-style (CRLF) line endings to Unix-style (LF) across the
    repository, skipping the .git directory, binary files and excluded paths.
 2. Runs the Python code formatter (black by default) over the repository
    root.
 3. Runs any extra checks configured for the repository.
 4. Asks Git whether the working tree now differs from the index. If it
    does, the changed files are listed and the commit is blocked so they can
    be reviewed and staged again.

On its first run outside CI it installs itself as .git/hooks/pre-commit, so
later commits are checked automatically.

Configuration is optional and lives in .commitfmt.yaml at the repository
root:

	formatter: [black, .]
	exclude: [vendor, docs]
	engine: git # or gogit, for hosts without a git binary
	workers: 4
	checks:
	  - run: [go, vet, ./...]
	    skip_in_ci: true
	  - run: [go, test, ./...]
	    only_in_ci: true

The CI environment variable set to "true" marks a CI run: the hook is not
installed there and checks are filtered by their skip_in_ci and only_in_ci
settings.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/commitfmt/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
