// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package pyfmt runs the Python code formatter over the repository.
//
// The formatter is an opaque external command, black by default. It rewrites
// sources in place; whether anything changed is judged afterwards by the
// repository cleanliness check, not by this package.
package pyfmt

import (
	"context"
	"fmt"
	"strings"

	"go.astrophena.name/commitfmt/internal/execx"
)

// Step runs the formatter command at the repository root.
type Step struct {
	Exec execx.Executor
	Root string
	Argv []string // command and arguments, e.g. ["black", "."]
}

// Name returns the formatter command line.
func (s *Step) Name() string { return strings.Join(s.Argv, " ") }

// Run executes the formatter, buffering its combined output. A failure
// carries that output so the committer sees what the formatter printed.
func (s *Step) Run(ctx context.Context) error {
	out, err := s.Exec.CombinedOutput(ctx, s.Root, s.Argv[0], s.Argv[1:]...)
	if err != nil {
		return fmt.Errorf("formatter %q failed: %v:\n%s", s.Argv, err, out)
	}
	return nil
}
