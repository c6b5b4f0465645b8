// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package hook runs the pre-commit pipeline and decides whether the commit
// may proceed.
//
// Step failures before the final cleanliness check are logged and otherwise
// ignored: only the net "did the tree change" signal decides the outcome.
// The classic shell hook behaved the same way, so a formatter crash that
// leaves files half-rewritten surfaces as a dirty tree, not as a distinct
// failure.
package hook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.astrophena.name/commitfmt/internal/cli"
	"go.astrophena.name/commitfmt/internal/execx"
	"go.astrophena.name/commitfmt/internal/gitx"
	"go.astrophena.name/commitfmt/internal/logger"

	"github.com/google/uuid"
)

// Step is one stage of the pipeline.
type Step interface {
	// Name identifies the step in progress output and logs.
	Name() string

	// Run executes the step. A non-nil error does not abort the pipeline.
	Run(ctx context.Context) error
}

type funcStep struct {
	name string
	fn   func(context.Context) error
}

func (s funcStep) Name() string { return s.name }

func (s funcStep) Run(ctx context.Context) error { return s.fn(ctx) }

// NewStep adapts a function to a named [Step].
func NewStep(name string, fn func(context.Context) error) Step {
	return funcStep{name: name, fn: fn}
}

// CommandStep runs an arbitrary configured command as a pipeline step.
type CommandStep struct {
	Exec execx.Executor
	Dir  string
	Argv []string
}

// Name returns the command line.
func (s *CommandStep) Name() string { return strings.Join(s.Argv, " ") }

// Run executes the command with buffered output.
func (s *CommandStep) Run(ctx context.Context) error {
	out, err := s.Exec.CombinedOutput(ctx, s.Dir, s.Argv[0], s.Argv[1:]...)
	if err != nil {
		return fmt.Errorf("check %q failed: %v:\n%s", s.Argv, err, out)
	}
	return nil
}

// BlockedError is returned when formatting modified the working tree. Its
// message is the instruction shown to the committing user.
type BlockedError struct {
	// Files lists the changed files, when the repository could report them.
	Files []string
}

func (e *BlockedError) Error() string {
	var sb strings.Builder
	sb.WriteString("Formatting changed files in the working tree.")
	for _, f := range e.Files {
		sb.WriteString("\n\t")
		sb.WriteString(f)
	}
	sb.WriteString("\nReview the changes, stage them and commit again.")
	return sb.String()
}

// Runner executes steps in order and then checks the working tree.
type Runner struct {
	Repo  gitx.Repo
	Steps []Step
}

// Run executes the pipeline. It returns a [*BlockedError] if the working
// tree changed, nil if the commit may proceed.
func (r *Runner) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	runID := slog.String("run_id", uuid.NewString())

	logger.Debug(ctx, "starting pre-commit run",
		slog.String("root", r.Repo.Root()),
		slog.Int("steps", len(r.Steps)),
		runID)

	for i, step := range r.Steps {
		fmt.Fprintln(env.Stdout, progressMessage(i+1, len(r.Steps), step.Name(), env.TerminalWidth()))
		if err := step.Run(ctx); err != nil {
			// Deferred to the cleanliness check below.
			logger.Warn(ctx, "step failed",
				slog.String("step", step.Name()),
				slog.Any("err", err),
				runID)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	dirty, err := r.Repo.Dirty(ctx)
	if err != nil {
		return fmt.Errorf("checking working tree: %w", err)
	}
	if !dirty {
		logger.Debug(ctx, "working tree clean, commit allowed", runID)
		return nil
	}

	files, err := r.Repo.ChangedFiles(ctx)
	if err != nil {
		// The tree is known to be dirty, so block even if the file
		// listing is unavailable.
		logger.Warn(ctx, "listing changed files", slog.Any("err", err), runID)
	}
	return &BlockedError{Files: files}
}

// progressMessage renders the per-step progress line, shortened to fit
// width. The counter prefix is never truncated; width 0 disables
// shortening.
func progressMessage(current, total int, name string, width int) string {
	prefix := fmt.Sprintf("[%d/%d] Running ", current, total)
	msg := prefix + name
	if width <= 0 || len(msg) <= width {
		return msg
	}
	room := width - len(prefix)
	if room <= 0 {
		return prefix
	}
	if room > 3 {
		return prefix + name[:room-3] + "..."
	}
	return prefix + name[:room]
}
