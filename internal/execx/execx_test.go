// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package execx

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"go.astrophena.name/commitfmt/internal/testutil"
)

func TestRealOutput(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}

	out, err := Real{}.Output(context.Background(), t.TempDir(), "sh", "-c", "echo hello")
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, strings.TrimSpace(string(out)), "hello")
}

func TestRealCombinedOutput(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}

	out, err := Real{}.CombinedOutput(context.Background(), t.TempDir(), "sh", "-c", "echo out; echo err >&2")
	testutil.AssertEqual(t, err, nil)
	got := string(out)
	if !strings.Contains(got, "out") || !strings.Contains(got, "err") {
		t.Fatalf("CombinedOutput() = %q, want both streams", got)
	}
}

func TestRealExitError(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}

	_, err := Real{}.Output(context.Background(), t.TempDir(), "sh", "-c", "exit 3")
	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		t.Fatalf("want *exec.ExitError, got %v", err)
	}
	testutil.AssertEqual(t, ee.ExitCode(), 3)
}

func TestFake(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	f := &Fake{
		Responses: map[string]Response{
			"git diff --quiet": {Err: wantErr},
			"black .":          {Out: []byte("reformatted a.py")},
		},
	}
	ctx := context.Background()

	out, err := f.CombinedOutput(ctx, "", "black", ".")
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, string(out), "reformatted a.py")

	_, err = f.Output(ctx, "", "git", "diff", "--quiet")
	testutil.AssertEqual(t, err, wantErr)

	// Unrecorded commands succeed with empty output.
	out, err = f.Output(ctx, "", "git", "status")
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, len(out), 0)

	testutil.AssertEqual(t, f.Calls(), []string{
		"black .",
		"git diff --quiet",
		"git status",
	})
}
