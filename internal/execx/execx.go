// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package execx abstracts external command execution so the hook pipeline
// can be exercised in tests without invoking real binaries.
package execx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds a single external command when the caller's context
// carries no deadline.
const DefaultTimeout = 5 * time.Minute

// Executor runs external commands.
type Executor interface {
	// Output runs name with args in dir and returns its standard output.
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)

	// CombinedOutput runs name with args in dir and returns combined
	// standard output and standard error.
	CombinedOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// Real is an Executor backed by [os/exec].
type Real struct {
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
}

func (r Real) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

// Output implements [Executor].
func (r Real) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

// CombinedOutput implements [Executor].
func (r Real) CombinedOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

func (r Real) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout())
}

// Response is a canned result returned by [Fake].
type Response struct {
	Out []byte
	Err error
}

// Fake is an Executor that returns recorded responses and logs every call.
// Responses are keyed by the command line, the command name and its
// arguments joined with spaces. Commands without a recorded response
// succeed with empty output.
type Fake struct {
	mu        sync.Mutex
	Responses map[string]Response
	calls     []string
}

// Output implements [Executor].
func (f *Fake) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return f.record(name, args)
}

// CombinedOutput implements [Executor].
func (f *Fake) CombinedOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return f.record(name, args)
}

func (f *Fake) record(name string, args []string) ([]byte, error) {
	key := commandLine(name, args)
	f.mu.Lock()
	f.calls = append(f.calls, key)
	resp, ok := f.Responses[key]
	f.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return resp.Out, resp.Err
}

// Calls returns the command lines executed so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return fmt.Sprintf("%s %s", name, strings.Join(args, " "))
}
