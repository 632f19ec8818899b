package buildinfo

import "fmt"

// Set with -ldflags "-X github.com/aalvaropc/s3lens/internal/buildinfo.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("s3lens %s (commit=%s, date=%s)", Version, Commit, Date)
}
