// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version reports the name and build version of the running binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"go.astrophena.name/commitfmt/internal/syncx"
)

var cmdName syncx.Lazy[string]

// CmdName returns the base name of the running binary.
func CmdName() string {
	return cmdName.Get(func() string {
		exe, err := os.Executable()
		if err != nil {
			return "commitfmt"
		}
		return strings.TrimSuffix(filepath.Base(exe), ".exe")
	})
}

var version syncx.Lazy[string]

// Version returns a human-readable version string based on the build
// information embedded in the binary.
func Version() string {
	return version.Get(func() string {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return fmt.Sprintf("%s (version unknown)\n", CmdName())
		}

		var (
			revision string
			modified bool
		)
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
		if len(revision) > 8 {
			revision = revision[:8]
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s %s", CmdName(), info.Main.Version)
		if revision != "" {
			fmt.Fprintf(&sb, " (%s", revision)
			if modified {
				sb.WriteString(", modified")
			}
			sb.WriteString(")")
		}
		fmt.Fprintf(&sb, " built with %s\n", info.GoVersion)
		return sb.String()
	})
}
