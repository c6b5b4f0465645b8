// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package eol rewrites Windows-style (CRLF) line endings to Unix-style (LF)
// across a directory tree.
//
// Normalization is idempotent: a tree that has already been normalized is
// left untouched. Files that look binary and everything under the Git
// metadata directory are skipped.
package eol

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/go4org/hashtriemap"
	"github.com/natefinch/atomic"
	"golang.org/x/sync/errgroup"
)

const gitDir = ".git"

var (
	crlf = []byte("\r\n")
	lf   = []byte("\n")
)

// Options control a normalization pass.
type Options struct {
	// Exclude lists slash-separated globs, in the syntax of [path.Match],
	// or literal directory prefixes, relative to the root. Matching paths
	// are not touched.
	Exclude []string
	// Workers bounds parallelism. Zero means one worker per CPU.
	Workers int
}

// Result describes what a normalization pass did.
type Result struct {
	// Converted lists rewritten files, relative to the root, sorted.
	Converted []string
	// Unchanged counts visited text files that needed no rewrite.
	Unchanged int
	// Binary counts files skipped by the binary sniff.
	Binary int
	// Errors holds per-file failures. Failures do not abort the pass.
	Errors map[string]error
}

type kind int

const (
	kindConverted kind = iota
	kindUnchanged
	kindBinary
	kindFailed
)

type outcome struct {
	kind kind
	err  error
}

// Normalize walks the tree rooted at root and rewrites CRLF line endings
// to LF in place. Per-file failures are collected in the returned Result;
// only a walk failure or context cancellation aborts the pass.
func Normalize(ctx context.Context, root string, opts Options) (*Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)

	var outcomes hashtriemap.HashTrieMap[string, outcome]

	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if d.Name() == gitDir || (rel != "." && excluded(rel, opts.Exclude)) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || excluded(rel, opts.Exclude) {
			return nil
		}
		g.Go(func() error {
			outcomes.Store(rel, normalizeFile(p))
			return nil
		})
		return nil
	})
	g.Wait()
	if walkErr != nil {
		return nil, walkErr
	}

	res := &Result{Errors: make(map[string]error)}
	outcomes.Range(func(rel string, o outcome) bool {
		switch o.kind {
		case kindConverted:
			res.Converted = append(res.Converted, rel)
		case kindUnchanged:
			res.Unchanged++
		case kindBinary:
			res.Binary++
		case kindFailed:
			res.Errors[rel] = o.err
		}
		return true
	})
	sort.Strings(res.Converted)
	return res, nil
}

func normalizeFile(p string) outcome {
	b, err := os.ReadFile(p)
	if err != nil {
		return outcome{kind: kindFailed, err: err}
	}
	if isBinary(b) {
		return outcome{kind: kindBinary}
	}
	if !bytes.Contains(b, crlf) {
		return outcome{kind: kindUnchanged}
	}
	if err := atomic.WriteFile(p, bytes.NewReader(bytes.ReplaceAll(b, crlf, lf))); err != nil {
		return outcome{kind: kindFailed, err: err}
	}
	return outcome{kind: kindConverted}
}

// isBinary reports whether b looks like binary data, using Git's heuristic
// of a NUL byte in the first 8000 bytes.
func isBinary(b []byte) bool {
	const sniffLen = 8000
	if len(b) > sniffLen {
		b = b[:sniffLen]
	}
	return bytes.IndexByte(b, 0) != -1
}

func excluded(rel string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, err := path.Match(pat, rel); err == nil && ok {
			return true
		}
		if rel == pat || strings.HasPrefix(rel, pat+"/") {
			return true
		}
	}
	return false
}
