package version

import (
	"fmt"
	"runtime"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// GraphFormat identifies the layout of assembled graph records (edge
// ordering, position flattening, feature encoding). Bump it when any of
// those change so recorded builds can be told apart.
const GraphFormat = "stgraph.v1"

// Info contains version and build information
type Info struct {
	CommitHash  string `json:"commit_hash"`
	BuildTime   string `json:"build_time"`
	Version     string `json:"version"`
	GraphFormat string `json:"graph_format"`
	GoVersion   string `json:"go_version"`
	Platform    string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash:  CommitHash,
		BuildTime:   BuildTime,
		Version:     Version,
		GraphFormat: GraphFormat,
		GoVersion:   runtime.Version(),
		Platform:    fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	if i.Version != "dev" {
		return fmt.Sprintf("isrgraph %s (commit %s, built %s, %s)", i.Version, i.CommitHash, i.BuildTime, i.GraphFormat)
	}
	return fmt.Sprintf("isrgraph dev (commit %s, built %s, %s)", i.CommitHash, i.BuildTime, i.GraphFormat)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
