package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set with -ldflags -X. Empty values fall back to the module build info.
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
	GoVersion = ""
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GitBranch string `json:"git_branch,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	IsRelease bool   `json:"is_release"`
	IsDirty   bool   `json:"is_dirty"`
}

// Get returns the build info, preferring linker-set values over the VCS
// stamps the go command embeds.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
}

func resolve(bi *debug.BuildInfo) Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
	}
	if bi != nil {
		if info.GoVersion == "" {
			info.GoVersion = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "":
				info.BuildTime = s.Value
			case s.Key == "vcs.modified":
				info.IsDirty = s.Value == "true"
			}
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}
	info.IsRelease = info.Version != "dev" && !info.IsDirty && !strings.Contains(info.Version, "dirty")
	return info
}

// Short is "version[-commit][-dirty]".
func (i Info) Short() string {
	s := i.Version
	if i.GitCommit != "" {
		s += "-" + i.GitCommit
		if i.IsDirty {
			s += "-dirty"
		}
	}
	return s
}

// String is the --version line: the short version, a non-default branch
// and the build time.
func (i Info) String() string {
	s := i.Short()
	if i.GitBranch != "" && i.GitBranch != "main" && i.GitBranch != "master" {
		s += " " + i.GitBranch
	}
	if i.BuildTime != "" {
		s += " (built " + i.BuildTime + ")"
	}
	return s
}

// Short returns Get().Short().
func Short() string { return Get().Short() }

// Full returns Get().String().
func Full() string { return Get().String() }

// UserAgent returns the User-Agent value outbound HTTP clients send.
func UserAgent(product string) string {
	return fmt.Sprintf("%s/%s (%s)", product, Short(), runtime.Version())
}
