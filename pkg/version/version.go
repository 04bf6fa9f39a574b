package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// These variables are set at build time using ldflags
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildDate = "unknown"
)

// Info holds version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	GitTag    string `json:"gitTag"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform"`
}

// Get returns version information. Builds without ldflags fall back to the module version
// recorded by `go install`.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if info.Version != "dev" {
		return info
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(&info, bi)
	}
	return info
}

func fromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		}
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	return fmt.Sprintf("tig version %s\nGit commit: %s\nGit tag: %s\nBuild date: %s\nGo version: %s\nCompiler: %s\nPlatform: %s",
		i.Version, i.GitCommit, i.GitTag, i.BuildDate, i.GoVersion, i.Compiler, i.Platform)
}
