package version

import "fmt"

// Build-time variables set via ldflags, e.g.
// -ldflags "-X github.com/ecosort/ecosort/internal/version.version=v1.2.0"
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

// Info describes the running build
type Info struct {
	Version   string `json:"version" example:"v1.0.0"`
	BuildDate string `json:"build_date" example:"2025-01-01T12:00:00Z"`
	GitCommit string `json:"git_commit" example:"abc123"`
}

func Get() Info {
	return Info{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (built %s, commit %s)", i.Version, i.BuildDate, i.GitCommit)
}
