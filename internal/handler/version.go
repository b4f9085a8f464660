package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
	"time"
)

// VersionInfo describes the running binary
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Commit    string `json:"commit,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	StartedAt string `json:"started_at"`
	Uptime    string `json:"uptime"`
}

// Version is set with -ldflags "-X .../handler.Version=v1.2.3"
var Version = ""

var startedAt = time.Now()

// HandleVersion returns version information about the running binary
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commit, modified := vcsRevision()
		respondJSON(w, http.StatusOK, VersionInfo{
			Version:   CurrentVersion(),
			GoVersion: runtime.Version(),
			Commit:    commit,
			Modified:  modified,
			StartedAt: startedAt.UTC().Format(time.RFC3339),
			Uptime:    time.Since(startedAt).Truncate(time.Second).String(),
		})
	}
}

// CurrentVersion prefers the link-time value, then $VERSION, then the module version
func CurrentVersion() string {
	if Version != "" {
		return Version
	}
	if v := os.Getenv(EnvVersion); v != "" {
		return v
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return DefaultVersion
}

func vcsRevision() (string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	var rev string
	var dirty bool
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	return rev, dirty
}
