package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hxmidi/midimap/pkg/errors"
)

// BasePath derives the output base path. With out empty the base is the
// router file's path without extension; otherwise out with any extension
// stripped. The result is absolute.
func BasePath(routerPath, out string) (string, error) {
	base := out
	if base == "" {
		base = routerPath
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve output path %s", base)
	}
	return abs, nil
}

// ArtifactPath returns "<base>_<kind>.<format>".
func ArtifactPath(base, kind, format string) string {
	return base + "_" + kind + "." + format
}

// Write saves every rendered artifact next to base and sets its Path. A
// failed write is recorded on its artifact and the remaining artifacts are
// still written. The returned error, if any, is the first write failure.
func (r *Result) Write(base string) error {
	var first error
	for _, a := range r.Artifacts {
		if !a.OK() {
			continue
		}
		path := ArtifactPath(base, a.Kind, a.Format)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			a.Err = errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
			r.warnf("%s", errors.UserMessage(a.Err))
			if first == nil {
				first = a.Err
			}
			continue
		}
		a.Path = path
	}
	return first
}

// Written returns the artifacts that reached disk.
func (r *Result) Written() []*Artifact {
	var out []*Artifact
	for _, a := range r.Artifacts {
		if a.Path != "" {
			out = append(out, a)
		}
	}
	return out
}
