// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package hook

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.astrophena.name/commitfmt/internal/cli"
	"go.astrophena.name/commitfmt/internal/execx"
	"go.astrophena.name/commitfmt/internal/testutil"
)

func TestProgressMessage(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		current int
		total   int
		name    string
		width   int
		want    string
	}{
		"no terminal width does not shorten": {
			current: 1,
			total:   1,
			name:    "very-long-command with arguments",
			width:   0,
			want:    "[1/1] Running very-long-command with arguments",
		},
		"small width with ellipsis": {
			current: 2,
			total:   10,
			name:    "go test ./...",
			width:   25,
			want:    "[2/10] Running go test...",
		},
		"very small width keeps prefix only": {
			current: 3,
			total:   10,
			name:    "go test ./...",
			width:   10,
			want:    "[3/10] Running ",
		},
		"very small width trims without ellipsis": {
			current: 2,
			total:   100,
			name:    "go test ./...",
			width:   18,
			want:    "[2/100] Running go",
		},
		"exact fit": {
			current: 1,
			total:   2,
			name:    "black .",
			width:   21,
			want:    "[1/2] Running black .",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := progressMessage(tc.current, tc.total, tc.name, tc.width)
			if got != tc.want {
				t.Fatalf("progressMessage() = %q, want %q", got, tc.want)
			}
			if strings.Contains(got, "\t") {
				t.Fatalf("progressMessage() contains tab: %q", got)
			}
		})
	}
}

type fakeRepo struct {
	root     string
	dirty    bool
	files    []string
	filesErr error
}

func (r *fakeRepo) Root() string { return r.root }

func (r *fakeRepo) Dirty(context.Context) (bool, error) { return r.dirty, nil }

func (r *fakeRepo) ChangedFiles(context.Context) ([]string, error) {
	return r.files, r.filesErr
}

func runPipeline(t *testing.T, r *Runner) (stdout string, err error) {
	t.Helper()

	var out bytes.Buffer
	env := &cli.Env{
		Stdout: &out,
		Stderr: &bytes.Buffer{},
		Getenv: func(string) string { return "" },
	}
	runErr := r.Run(cli.WithEnv(context.Background(), env))
	return out.String(), runErr
}

func TestRunnerCleanTree(t *testing.T) {
	t.Parallel()

	var order []string
	step := func(name string) Step {
		return NewStep(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	r := &Runner{
		Repo:  &fakeRepo{root: "/repo"},
		Steps: []Step{step("normalize line endings"), step("black .")},
	}

	stdout, err := runPipeline(t, r)
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, order, []string{"normalize line endings", "black ."})
	testutil.AssertEqual(t, stdout, "[1/2] Running normalize line endings\n[2/2] Running black .\n")
}

func TestRunnerContinuesPastStepFailures(t *testing.T) {
	t.Parallel()

	var ran []string
	failing := NewStep("broken", func(context.Context) error {
		ran = append(ran, "broken")
		return errors.New("boom")
	})
	following := NewStep("after", func(context.Context) error {
		ran = append(ran, "after")
		return nil
	})

	r := &Runner{
		Repo:  &fakeRepo{root: "/repo"},
		Steps: []Step{failing, following},
	}

	_, err := runPipeline(t, r)
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, ran, []string{"broken", "after"})
}

func TestRunnerBlocksOnDirtyTree(t *testing.T) {
	t.Parallel()

	r := &Runner{
		Repo: &fakeRepo{root: "/repo", dirty: true, files: []string{"a.txt", "b.py"}},
	}

	_, err := runPipeline(t, r)
	var blocked *BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("want *BlockedError, got %v", err)
	}
	testutil.AssertEqual(t, blocked.Files, []string{"a.txt", "b.py"})

	msg := blocked.Error()
	for _, want := range []string{"a.txt", "b.py", "stage them and commit again"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q does not contain %q", msg, want)
		}
	}
}

func TestRunnerBlocksEvenWithoutFileListing(t *testing.T) {
	t.Parallel()

	r := &Runner{
		Repo: &fakeRepo{root: "/repo", dirty: true, filesErr: errors.New("listing failed")},
	}

	_, err := runPipeline(t, r)
	var blocked *BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("want *BlockedError, got %v", err)
	}
	testutil.AssertEqual(t, len(blocked.Files), 0)
}

func TestCommandStep(t *testing.T) {
	t.Parallel()

	fake := &execx.Fake{}
	s := &CommandStep{Exec: fake, Dir: "/repo", Argv: []string{"go", "vet", "./..."}}

	testutil.AssertEqual(t, s.Name(), "go vet ./...")
	testutil.AssertEqual(t, s.Run(context.Background()), nil)
	testutil.AssertEqual(t, fake.Calls(), []string{"go vet ./..."})
}

func TestCommandStepFailureCarriesOutput(t *testing.T) {
	t.Parallel()

	fake := &execx.Fake{
		Responses: map[string]execx.Response{
			"go vet ./...": {Out: []byte("vet: something is off"), Err: errors.New("exit status 1")},
		},
	}
	s := &CommandStep{Exec: fake, Dir: "/repo", Argv: []string{"go", "vet", "./..."}}

	err := s.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "something is off") {
		t.Fatalf("error %v does not carry the command output", err)
	}
}
