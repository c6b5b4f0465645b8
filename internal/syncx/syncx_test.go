// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package syncx

import (
	"errors"
	"sync"
	"testing"

	"go.astrophena.name/commitfmt/internal/testutil"
)

func TestLazyGet(t *testing.T) {
	t.Parallel()

	var (
		l     Lazy[int]
		calls int
	)
	compute := func() int {
		calls++
		return 42
	}

	testutil.AssertEqual(t, l.Get(compute), 42)
	testutil.AssertEqual(t, l.Get(compute), 42)
	testutil.AssertEqual(t, calls, 1)
}

func TestLazyGetErr(t *testing.T) {
	t.Parallel()

	var (
		l       Lazy[string]
		wantErr = errors.New("compute failed")
		calls   int
	)
	compute := func() (string, error) {
		calls++
		return "", wantErr
	}

	_, err := l.GetErr(compute)
	testutil.AssertEqual(t, err, wantErr)
	_, err = l.GetErr(compute)
	testutil.AssertEqual(t, err, wantErr)
	testutil.AssertEqual(t, calls, 1)
}

func TestLazyConcurrent(t *testing.T) {
	t.Parallel()

	var (
		l  Lazy[int]
		wg sync.WaitGroup
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Get(func() int { return 1 })
		}()
	}
	wg.Wait()
	testutil.AssertEqual(t, l.Get(func() int { return 2 }), 1)
}
