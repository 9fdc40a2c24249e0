// Package version reports build information for the command line tools.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set via -ldflags "-X expenses/internal/version.Version=..."
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Info describes the running binary
type Info struct {
	Program   string
	Version   string
	BuildTime string
	GoVersion string
	Revision  string
	Dirty     bool
}

// Get collects build information for program
func Get(program string) Info {
	info := Info{
		Program:   program,
		Version:   Version,
		BuildTime: BuildTime,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// String renders e.g. "analyzer v1.2.0 (commit 1a2b3c4d, go1.24.0)"
func (i Info) String() string {
	var details []string
	if i.Revision != "" {
		rev := i.Revision
		if len(rev) > 8 {
			rev = rev[:8]
		}
		if i.Dirty {
			rev += "-dirty"
		}
		details = append(details, "commit "+rev)
	}
	if i.BuildTime != "unknown" && i.BuildTime != "" {
		details = append(details, "built "+i.BuildTime)
	}
	if i.GoVersion != "" {
		details = append(details, i.GoVersion)
	}

	s := fmt.Sprintf("%s %s", i.Program, i.Version)
	if len(details) > 0 {
		s += " (" + strings.Join(details, ", ") + ")"
	}
	return s
}
