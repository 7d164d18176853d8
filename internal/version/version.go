// Package version exposes build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/smazurov/openlogger/internal/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set at link time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info is the build metadata reported by /api/version and --version.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns the bare version, as advertised in the OpenAPI document.
func String() string {
	return Version
}

// Full returns the version followed by the short commit and build date
// when they are known, e.g. "1.2.0 (abc1234, 2024-03-05)".
func Full() string {
	var extra []string
	if GitCommit != "" && GitCommit != "unknown" {
		commit := GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		extra = append(extra, commit)
	}
	if BuildDate != "" && BuildDate != "unknown" {
		extra = append(extra, BuildDate)
	}
	if len(extra) == 0 {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, strings.Join(extra, ", "))
}
