// Package deps resolves the external binaries Tublisher shells out to.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency Tublisher relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries the pipeline can invoke.
// ffmpegOverride, when set, replaces the PATH search for ffmpeg.
func Requirements(ffmpegOverride string) []Requirement {
	ffmpeg := "ffmpeg"
	if strings.TrimSpace(ffmpegOverride) != "" {
		ffmpeg = ffmpegOverride
	}
	return []Requirement{
		{
			Name:        "yt-dlp",
			Command:     "yt-dlp",
			Description: "video metadata extraction and audio download",
		},
		{
			Name:        "ffmpeg",
			Command:     ffmpeg,
			Description: "audio transcoding for the no-captions fallback",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := resolve(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// ResolveFFmpeg locates the ffmpeg binary. An explicit override is checked
// first; otherwise PATH is searched. The returned path is what yt-dlp should
// be pointed at for transcoding.
func ResolveFFmpeg(override string) (string, error) {
	override = strings.TrimSpace(override)
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("ffmpeg override %q: %w", override, err)
		}
		return override, nil
	}
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	return path, nil
}

func resolve(cmd string) (string, error) {
	if strings.ContainsRune(cmd, os.PathSeparator) {
		if _, err := os.Stat(cmd); err != nil {
			return "", err
		}
		return cmd, nil
	}
	return exec.LookPath(cmd)
}
