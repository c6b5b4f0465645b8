// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package pyfmt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.astrophena.name/commitfmt/internal/execx"
	"go.astrophena.name/commitfmt/internal/testutil"
)

func TestStepName(t *testing.T) {
	t.Parallel()

	s := &Step{Argv: []string{"black", "--quiet", "."}}
	testutil.AssertEqual(t, s.Name(), "black --quiet .")
}

func TestStepRun(t *testing.T) {
	t.Parallel()

	fake := &execx.Fake{}
	s := &Step{Exec: fake, Root: "/repo", Argv: []string{"black", "."}}

	testutil.AssertEqual(t, s.Run(context.Background()), nil)
	testutil.AssertEqual(t, fake.Calls(), []string{"black ."})
}

func TestStepRunFailureCarriesOutput(t *testing.T) {
	t.Parallel()

	fake := &execx.Fake{
		Responses: map[string]execx.Response{
			"black .": {
				Out: []byte("error: cannot format a.py: invalid syntax"),
				Err: errors.New("exit status 123"),
			},
		},
	}
	s := &Step{Exec: fake, Root: "/repo", Argv: []string{"black", "."}}

	err := s.Run(context.Background())
	if err == nil {
		t.Fatal("want an error")
	}
	if !strings.Contains(err.Error(), "invalid syntax") {
		t.Fatalf("error %q does not carry the formatter output", err)
	}
}
