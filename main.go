// Command cssliner collapses CSS rule blocks onto single lines and shows the
// result in a terminal viewer.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/zjrosen/cssliner/cmd"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(versionString())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionString falls back to the module version recorded by go install
// when no ldflags were given.
func versionString() string {
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}
