// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/hxmidi/midimap/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/hxmidi/midimap/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/hxmidi/midimap/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/midimap
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, shortCommit(), Date)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
